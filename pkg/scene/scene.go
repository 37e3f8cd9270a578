// Package scene loads declarative widget trees from YAML or TOML files and
// builds them into a core.Tree.
//
// A scene lists the viewport and a forest of widgets:
//
//	viewport: {width: 320, height: 240}
//	widgets:
//	  - name: toolbar
//	    policy: {x: parent, y: children}
//	    container: {direction: x, edge_padding: 4, gap: 2, align: center}
//	    children:
//	      - name: title
//	        size: {width: 120, height: 24}
//	      - name: spacer
//	        policy: {x: expand}
//
// The same structure is accepted in TOML with [[widgets]] and
// [[widgets.children]] tables.
package scene

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/arbor/pkg/core"
	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
)

// Format is a scene file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported scene file extension %q", filepath.Ext(path))
}

// Scene is a parsed scene file.
type Scene struct {
	Viewport *Size   `yaml:"viewport,omitempty" toml:"viewport,omitempty"`
	Widgets  []*Node `yaml:"widgets" toml:"widgets"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Point is an x/y pair.
type Point struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Policy names the size policy of each axis.
type Policy struct {
	X string `yaml:"x,omitempty" toml:"x,omitempty"`
	Y string `yaml:"y,omitempty" toml:"y,omitempty"`
}

// Anchor names the anchor points and offset.
type Anchor struct {
	Parent string `yaml:"parent,omitempty" toml:"parent,omitempty"`
	Origin string `yaml:"origin,omitempty" toml:"origin,omitempty"`
	Offset Point  `yaml:"offset,omitempty" toml:"offset,omitempty"`
}

// Container configures row/column layout.
type Container struct {
	Direction   string  `yaml:"direction" toml:"direction"`
	EdgePadding float64 `yaml:"edge_padding,omitempty" toml:"edge_padding,omitempty"`
	Gap         float64 `yaml:"gap,omitempty" toml:"gap,omitempty"`
	Align       string  `yaml:"align,omitempty" toml:"align,omitempty"`
}

// Node describes one widget and its children.
type Node struct {
	Name       string     `yaml:"name" toml:"name"`
	Policy     Policy     `yaml:"policy,omitempty" toml:"policy,omitempty"`
	Size       Size       `yaml:"size,omitempty" toml:"size,omitempty"`
	Min        Size       `yaml:"min,omitempty" toml:"min,omitempty"`
	Max        *Size      `yaml:"max,omitempty" toml:"max,omitempty"`
	Anchor     Anchor     `yaml:"anchor,omitempty" toml:"anchor,omitempty"`
	Hidden     bool       `yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	Clip       bool       `yaml:"clip,omitempty" toml:"clip,omitempty"`
	Layer      string     `yaml:"layer,omitempty" toml:"layer,omitempty"`
	LocalLayer int        `yaml:"local_layer,omitempty" toml:"local_layer,omitempty"`
	Container  *Container `yaml:"container,omitempty" toml:"container,omitempty"`
	Children   []*Node    `yaml:"children,omitempty" toml:"children,omitempty"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Parse decodes a scene. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to parse scene: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to parse scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scene format %q", format)
	}
	return &s, nil
}

// Marshal encodes the scene in the given format.
func (s *Scene) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatTOML:
		return toml.Marshal(s)
	}
	return nil, fmt.Errorf("unsupported scene format %q", format)
}

// Options returns tree options for the scene's viewport, falling back to
// viewport when the scene does not set one.
func (s *Scene) Options(viewport graphics.Size) core.Options {
	if s.Viewport != nil {
		viewport = graphics.Size{Width: s.Viewport.Width, Height: s.Viewport.Height}
	}
	return core.Options{Viewport: viewport}
}

// Build creates every widget of the scene under the tree's root. Names
// must be unique within the scene. On error the tree may hold the widgets
// created so far.
func (s *Scene) Build(tree *core.Tree) error {
	seen := make(map[string]bool)
	for i, n := range s.Widgets {
		if err := build(tree, tree.Root(), n, fmt.Sprintf("widgets[%d]", i), seen); err != nil {
			return err
		}
	}
	return nil
}

func build(tree *core.Tree, parent core.WidgetID, n *Node, path string, seen map[string]bool) error {
	if n.Name == "" {
		return &errors.ConfigError{Op: "scene", Field: path + ".name", Reason: "widget name is required"}
	}
	if seen[n.Name] {
		return &errors.ConfigError{Op: "scene", Field: path + ".name", Reason: fmt.Sprintf("duplicate widget name %q", n.Name)}
	}
	seen[n.Name] = true

	spec, err := n.spec(path)
	if err != nil {
		return err
	}
	id, err := tree.Create(parent, spec)
	if err != nil {
		return err
	}
	for i, c := range n.Children {
		if err := build(tree, id, c, fmt.Sprintf("%s.children[%d]", path, i), seen); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) spec(path string) (core.WidgetSpec, error) {
	invalid := func(field string, err error) error {
		return &errors.ConfigError{Op: "scene", Field: path + "." + field, Reason: err.Error()}
	}
	spec := core.WidgetSpec{
		Name:         n.Name,
		Size:         graphics.Size{Width: n.Size.Width, Height: n.Size.Height},
		MinSize:      graphics.Size{Width: n.Min.Width, Height: n.Min.Height},
		Hidden:       n.Hidden,
		ClipChildren: n.Clip,
		LocalLayer:   n.LocalLayer,
	}
	var err error
	if spec.PolicyX, err = core.ParsePolicy(n.Policy.X); err != nil {
		return spec, invalid("policy.x", err)
	}
	if spec.PolicyY, err = core.ParsePolicy(n.Policy.Y); err != nil {
		return spec, invalid("policy.y", err)
	}
	if n.Max != nil {
		spec.MaxSize = &graphics.Size{Width: n.Max.Width, Height: n.Max.Height}
	}
	if spec.Anchor.Parent, err = core.ParseAnchorPoint(n.Anchor.Parent); err != nil {
		return spec, invalid("anchor.parent", err)
	}
	if spec.Anchor.Origin, err = core.ParseAnchorPoint(n.Anchor.Origin); err != nil {
		return spec, invalid("anchor.origin", err)
	}
	spec.Anchor.Offset = graphics.Offset{X: n.Anchor.Offset.X, Y: n.Anchor.Offset.Y}
	if spec.Layer, err = core.ParseGlobalLayer(n.Layer); err != nil {
		return spec, invalid("layer", err)
	}
	if c := n.Container; c != nil {
		lc := &layout.Container{EdgePadding: c.EdgePadding, Gap: c.Gap}
		switch strings.ToLower(c.Direction) {
		case "x", "row", "horizontal":
			lc.Direction = layout.AxisX
		case "y", "column", "vertical":
			lc.Direction = layout.AxisY
		default:
			return spec, invalid("container.direction", fmt.Errorf("unknown direction %q", c.Direction))
		}
		if lc.Align, err = layout.ParseAlignment(c.Align); err != nil {
			return spec, invalid("container.align", err)
		}
		spec.Container = lc
	}
	return spec, nil
}
