package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/arbor/pkg/core"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the laid out tree and its render passes.
type Snapshot struct {
	Tree   *LayoutNode    `json:"tree"`
	Passes []PassSnapshot `json:"passes,omitempty"`
}

// LayoutNode is one widget in a snapshot.
type LayoutNode struct {
	Name     string        `json:"name"`
	Size     [2]float64    `json:"size"`
	Offset   [2]float64    `json:"offset"`
	Region   [4]float64    `json:"region"`
	Hidden   bool          `json:"hidden,omitempty"`
	Children []*LayoutNode `json:"children,omitempty"`
}

// PassSnapshot lists the widgets of one render pass by name.
type PassSnapshot struct {
	Layer   string   `json:"layer"`
	Local   int      `json:"local"`
	Widgets []string `json:"widgets"`
}

// CaptureSnapshot records the current geometry of every widget.
func (t *TreeTester) CaptureSnapshot() *Snapshot {
	return CaptureSnapshot(t.tree)
}

// CaptureSnapshot records the current geometry of every widget of tree.
func CaptureSnapshot(tree *core.Tree) *Snapshot {
	snap := &Snapshot{Tree: captureNode(tree, tree.Root())}
	for _, p := range tree.RenderQueue().Passes() {
		ps := PassSnapshot{Layer: p.Global.String(), Local: p.Local}
		for _, id := range p.Widgets {
			ps.Widgets = append(ps.Widgets, tree.Name(id))
		}
		snap.Passes = append(snap.Passes, ps)
	}
	return snap
}

func captureNode(tree *core.Tree, id core.WidgetID) *LayoutNode {
	size := tree.Size(id)
	pos := tree.Position(id)
	r := tree.UnclippedRegion(id)
	node := &LayoutNode{
		Name:   tree.Name(id),
		Size:   [2]float64{round2(size.Width), round2(size.Height)},
		Offset: [2]float64{round2(pos.X), round2(pos.Y)},
		Region: [4]float64{round2(r.Left), round2(r.Top), round2(r.Right), round2(r.Bottom)},
		Hidden: !tree.Visible(id),
	}
	for _, c := range tree.Children(id) {
		node.Children = append(node.Children, captureNode(tree, c))
	}
	return node
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When ARBOR_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("ARBOR_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: ARBOR_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: ARBOR_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a readable diff from other to this snapshot, or an empty
// string when they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	return cmp.Diff(other, s)
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

// JSON encodes the snapshot the way snapshot files store it.
func (s *Snapshot) JSON() ([]byte, error) {
	return marshalSnapshot(s)
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
