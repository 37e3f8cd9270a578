package cmd

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shoenig/test/must"

	arbortest "github.com/go-drift/arbor/pkg/testing"
)

const toolbarScene = `viewport: {width: 320, height: 240}
widgets:
  - name: toolbar
    policy: {x: parent, y: children}
    container: {direction: x, edge_padding: 4, gap: 2, align: center}
    children:
      - name: title
        size: {width: 120, height: 24}
      - name: spacer
        policy: {x: expand}
      - name: button
        size: {width: 40, height: 16}
  - name: tip
    size: {width: 50, height: 20}
    layer: overlay
    anchor: {parent: bottom-right, origin: bottom-right, offset: {x: -4, y: -4}}
`

// cyclicScene sizes a container from its child while the child sizes
// itself from the container.
const cyclicScene = `widgets:
  - name: row
    policy: {x: children}
    container: {direction: x}
    children:
      - name: cell
        policy: {x: parent}
`

type harness struct {
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{dir: t.TempDir()}
}

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	must.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	return Execute(append([]string{"--dir", h.dir}, args...), &h.stdout, &h.stderr)
}

func TestHelpListsCommands(t *testing.T) {
	var out bytes.Buffer
	must.NoError(t, Execute([]string{"--help"}, &out, &out))
	for _, name := range []string{"schedule", "layout", "cycles", "render", "version"} {
		must.StrContains(t, out.String(), name)
	}
}

func TestNoArgumentsPrintsHelp(t *testing.T) {
	var out bytes.Buffer
	must.NoError(t, Execute(nil, &out, &out))
	must.StrContains(t, out.String(), "Usage:")
}

func TestCommandHelp(t *testing.T) {
	var out bytes.Buffer
	must.NoError(t, Execute([]string{"render", "--help"}, &out, &out))
	must.StrContains(t, out.String(), "arbor render [flags] <scene>")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	must.NoError(t, h.run("version"))
	must.StrContains(t, h.stdout.String(), Version)

	var out bytes.Buffer
	must.NoError(t, Execute([]string{"-v"}, &out, &out))
	must.StrContains(t, out.String(), "arbor version "+Version)
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	err := h.run("paint")
	must.ErrorContains(t, err, "unknown command: paint")
	must.StrContains(t, h.stderr.String(), `unknown command "paint"`)
}

func TestGlobalFlagValidation(t *testing.T) {
	h := newHarness(t)
	must.ErrorContains(t, Execute([]string{"--dir"}, &h.stdout, &h.stderr), "--dir requires a value")

	scene := h.write(t, "toolbar.yaml", toolbarScene)
	must.ErrorContains(t, h.run("--log-level", "loud", "layout", scene), "unknown log level")
}

func TestSchedulePrintsLayers(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "toolbar.yaml", toolbarScene)

	must.NoError(t, h.run("schedule", scene))
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	must.Greater(t, 1, len(lines))
	must.StrHasPrefix(t, "  0: ", lines[0])
	must.StrContains(t, lines[0], "root.Normal")
	must.StrContains(t, h.stdout.String(), "toolbar.ChildrenX")
}

func TestScheduleFiltersByKind(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "toolbar.yaml", toolbarScene)

	must.NoError(t, h.run("schedule", "--kind", "ChildrenX", scene))
	out := h.stdout.String()
	must.StrContains(t, out, "toolbar.ChildrenX")
	must.StrNotContains(t, out, "root.Normal")
	must.StrNotContains(t, out, "SizeY")
}

func TestScheduleRejectsUnknownKind(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "toolbar.yaml", toolbarScene)

	must.ErrorContains(t, h.run("schedule", "--kind", "Bogus", scene), `unknown entry kind "Bogus"`)
	must.ErrorContains(t, h.run("schedule", scene, "--kind"), "--kind requires an entry kind")
}

func TestScheduleRequiresOneScene(t *testing.T) {
	h := newHarness(t)
	must.ErrorContains(t, h.run("schedule"), "exactly one scene file")
}

func TestScheduleFailsOnCycle(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "cyclic.yaml", cyclicScene)

	err := h.run("schedule", scene)
	must.ErrorContains(t, err, "arbor cycles")
}

func TestCycles(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "toolbar.yaml", toolbarScene)
	must.NoError(t, h.run("cycles", scene))
	must.Eq(t, "no cycles\n", h.stdout.String())

	cyclic := h.write(t, "cyclic.yaml", cyclicScene)
	err := h.run("cycles", cyclic)
	must.True(t, stderrors.Is(err, errCyclesFound))
	must.StrContains(t, h.stdout.String(), "cycle 1: ")
	must.StrContains(t, h.stdout.String(), "cell.SizeX")
}

func TestLayoutText(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "toolbar.yaml", toolbarScene)

	must.NoError(t, h.run("layout", scene))
	out := h.stdout.String()
	must.StrContains(t, out, "root size=320x240 pos=(0,0)")
	must.StrContains(t, out, "  toolbar size=320x32 pos=(0,0)")
	must.StrContains(t, out, "    button size=40x16 pos=(276,8)")
	must.StrContains(t, out, "  tip size=50x20 pos=(266,216)")
}

func TestLayoutJSONMatchesSnapshot(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "toolbar.yaml", toolbarScene)

	must.NoError(t, h.run("layout", "--json", scene))
	var snap arbortest.Snapshot
	must.NoError(t, json.Unmarshal(h.stdout.Bytes(), &snap))
	must.Eq(t, "root", snap.Tree.Name)
	must.Len(t, 2, snap.Tree.Children)
	must.Eq(t, [2]float64{320, 32}, snap.Tree.Children[0].Size)
	must.Eq(t, "overlay", snap.Passes[len(snap.Passes)-1].Layer)
}

func TestLayoutReportsCycles(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "cyclic.yaml", cyclicScene)

	err := h.run("layout", scene)
	must.Error(t, err)
	must.StrContains(t, h.stderr.String(), "engine error")
}

func TestRenderWritesPNG(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "toolbar.yaml", toolbarScene)
	out := filepath.Join(h.dir, "toolbar.png")

	must.NoError(t, h.run("render", "-o", out, "--scale", "2", "--clipped", scene))
	must.StrContains(t, h.stdout.String(), "Wrote "+out)

	f, err := os.Open(out)
	must.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	must.NoError(t, err)
	must.Eq(t, 640, cfg.Width)
	must.Eq(t, 480, cfg.Height)
}

func TestRenderUsesConfiguredScale(t *testing.T) {
	h := newHarness(t)
	h.write(t, "arbor.yaml", "render:\n  scale: 0.5\n  labels: false\n")
	scene := h.write(t, "toolbar.yaml", toolbarScene)
	out := filepath.Join(h.dir, "half.png")

	must.NoError(t, h.run("render", "--output", out, scene))
	f, err := os.Open(out)
	must.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	must.NoError(t, err)
	must.Eq(t, 160, cfg.Width)
	must.Eq(t, 120, cfg.Height)
}

func TestRenderRejectsBadScale(t *testing.T) {
	h := newHarness(t)
	scene := h.write(t, "toolbar.yaml", toolbarScene)
	must.ErrorContains(t, h.run("render", "--scale", "-1", scene), "invalid scale")
}

func TestConfiguredViewportFillsSceneWithoutOne(t *testing.T) {
	h := newHarness(t)
	h.write(t, "arbor.yaml", "viewport: {width: 100, height: 50}\n")
	scene := h.write(t, "bare.yaml", "widgets:\n  - name: box\n    size: {width: 10, height: 10}\n")

	must.NoError(t, h.run("layout", scene))
	must.StrContains(t, h.stdout.String(), "root size=100x50")
}
