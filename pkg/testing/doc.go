// Package testing provides helpers for testing arbor trees and graphs.
//
// # Graphs
//
// Graph builds small labeled dependency graphs for exercising package
// toposort without a widget tree:
//
//	g := arbortest.NewGraph()
//	a, b := g.Node("A"), g.Node("B")
//	b.AddParent(a)
//	layers, err := toposort.Layers(g.Nodes(), g.Parents, nil)
//	// arbortest.Labels(layers) == [][]string{{"A"}, {"B"}}
//
// # Trees
//
// TreeTester wraps a core.Tree with a test-sized viewport and finders that
// locate widgets by name:
//
//	func TestRow(t *testing.T) {
//	    tester := arbortest.NewTreeTesterWithT(t)
//	    tester.MustCreate("", core.WidgetSpec{Name: "row", ...})
//	    tester.MustPump()
//
//	    size := tester.Find(arbortest.ByName("row")).Size()
//	}
//
// # Snapshot Testing
//
// Capture and compare layout snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/row.snapshot.json")
//
// Update snapshots with:
//
//	ARBOR_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import arbortest "github.com/go-drift/arbor/pkg/testing"
package testing
