package testing

import (
	"testing"

	"github.com/go-drift/arbor/pkg/core"
)

func TestByName(t *testing.T) {
	tester := pumpPanel(t)

	result := tester.Find(ByName("label"))
	if result.Count() != 1 {
		t.Fatalf("expected 1 match, got %d", result.Count())
	}
	if tester.Tree().Name(result.First()) != "label" {
		t.Error("matched the wrong widget")
	}
	if tester.Find(ByName("missing")).Exists() {
		t.Error("expected no match for missing name")
	}
}

func TestByNamePrefix(t *testing.T) {
	tester := pumpPanel(t)

	result := tester.Find(ByNamePrefix("f"))
	if result.Count() != 1 {
		t.Errorf("expected 1 match, got %d", result.Count())
	}
}

func TestFinderResult_First_PanicsOnEmpty(t *testing.T) {
	tester := pumpPanel(t)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected First() to panic on empty result")
		}
	}()
	tester.Find(ByName("missing")).First()
}

func TestFinderResult_At_PanicsOutOfRange(t *testing.T) {
	tester := pumpPanel(t)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected At() to panic out of range")
		}
	}()
	tester.Find(ByName("label")).At(1)
}

func TestByPredicate(t *testing.T) {
	tester := pumpPanel(t)

	result := tester.Find(ByPredicate(func(tree *core.Tree, id core.WidgetID) bool {
		return tree.Policy(id, 0) == core.PolicyExpand
	}))
	if result.Count() != 1 || tester.Tree().Name(result.First()) != "fill" {
		t.Errorf("expected predicate to find fill, got %d matches", result.Count())
	}
}

func TestDescendant(t *testing.T) {
	tester := pumpPanel(t)

	result := tester.Find(Descendant(ByName("panel"), ByPredicate(func(*core.Tree, core.WidgetID) bool { return true })))
	if result.Count() != 2 {
		t.Errorf("expected 2 descendants of panel, got %d", result.Count())
	}
	if tester.Find(Descendant(ByName("label"), ByName("fill"))).Exists() {
		t.Error("fill is not below label")
	}
}
