package testing

import (
	"fmt"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/go-drift/arbor/pkg/core"
	"github.com/go-drift/arbor/pkg/graphics"
)

const (
	// DefaultTestWidth is the default viewport width.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default viewport height.
	DefaultTestHeight = 600
)

// TreeTester drives a core.Tree frame by frame for tests.
type TreeTester struct {
	tb   testing.TB
	tree *core.Tree
}

// NewTreeTester creates a tester with a default-sized viewport. Failures in
// the Must helpers panic because there is no test to report them to.
func NewTreeTester() *TreeTester {
	return newTreeTester(nil)
}

// NewTreeTesterWithT creates a tester whose Must helpers fail tb. Trace
// logs are routed to the test log.
func NewTreeTesterWithT(tb testing.TB) *TreeTester {
	tb.Helper()
	return newTreeTester(tb)
}

func newTreeTester(tb testing.TB) *TreeTester {
	opts := core.Options{
		Viewport: graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
	}
	if tb != nil {
		opts.Logger = hclog.New(&hclog.LoggerOptions{
			Name:   tb.Name(),
			Level:  hclog.Trace,
			Output: logWriter{tb},
		})
	}
	return &TreeTester{tb: tb, tree: core.NewTree(opts)}
}

// logWriter forwards log lines to testing.TB.Log.
type logWriter struct {
	tb testing.TB
}

func (w logWriter) Write(p []byte) (int, error) {
	w.tb.Log(string(p))
	return len(p), nil
}

// Tree returns the tree under test.
func (t *TreeTester) Tree() *core.Tree {
	return t.tree
}

// SetSize changes the viewport.
func (t *TreeTester) SetSize(size graphics.Size) {
	t.tree.SetViewport(size)
}

// Pump runs one frame.
func (t *TreeTester) Pump() error {
	return t.tree.Frame()
}

// MustPump runs one frame and fails the test on error.
func (t *TreeTester) MustPump() {
	if err := t.Pump(); err != nil {
		t.fatalf("Pump: %v", err)
	}
}

// MustCreate adds a widget under the widget named parent, or under the
// root when parent is empty.
func (t *TreeTester) MustCreate(parent string, spec core.WidgetSpec) core.WidgetID {
	var pid core.WidgetID
	if parent != "" {
		pid = t.Find(ByName(parent)).First()
	}
	id, err := t.tree.Create(pid, spec)
	if err != nil {
		t.fatalf("Create %q: %v", spec.Name, err)
	}
	return id
}

// Find evaluates a finder against the current tree.
func (t *TreeTester) Find(finder Finder) FinderResult {
	return FinderResult{
		tree:    t.tree,
		widgets: finder.Evaluate(t.tree),
		finder:  finder,
	}
}

func (t *TreeTester) fatalf(format string, args ...any) {
	if t.tb == nil {
		panic(fmt.Sprintf(format, args...))
	}
	t.tb.Helper()
	t.tb.Fatalf(format, args...)
}
