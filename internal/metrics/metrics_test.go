// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"math"
	"reflect"
	"testing"

	"github.com/pdiddy/pubwatch/pkg/types"
)

func graphAuthors() []types.Author {
	return []types.Author{
		{FirstName: "Jane", LastName: "Smith", RemoteIDs: []string{"A1"}, Categories: []string{"optics"}},
		{FirstName: "John", LastName: "Doe", RemoteIDs: []string{"A2"}, Categories: []string{"optics"}},
		{FirstName: "Ada", LastName: "Jones", RemoteIDs: []string{"A3"}, Categories: []string{"chemistry"}},
	}
}

func pubWith(names ...string) types.Publication {
	var p types.Publication
	for _, n := range names {
		p.Authors = append(p.Authors, types.AuthorTerm{Name: n})
	}
	return p
}

func TestCounts(t *testing.T) {
	authors := graphAuthors()
	pubs := []types.Publication{
		pubWith("Smith J.", "Doe J.", "Unobserved Z."),
		pubWith("Smith J."),
		pubWith("Nobody Q."),
	}

	got := Counts(authors, pubs)
	want := map[string]int{"Smith J.": 2, "Doe J.": 1, "Jones A.": 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Counts() = %v, want %v", got, want)
	}
}

func TestCountsAuthorOncePerPublication(t *testing.T) {
	authors := graphAuthors()
	// Duplicate author term in one publication still counts once.
	pubs := []types.Publication{pubWith("Smith J.", "Smith J.")}

	got := Counts(authors, pubs)
	if got["Smith J."] != 1 {
		t.Errorf("Counts()[Smith J.] = %d, want 1", got["Smith J."])
	}
}

func TestCooperationCounts(t *testing.T) {
	authors := graphAuthors()
	pubs := []types.Publication{
		pubWith("Smith J.", "Doe J."),
		pubWith("Smith J.", "Doe J.", "Jones A."),
		pubWith("Smith J."), // solo, no pairs
	}

	got := CooperationCounts(authors, pubs)
	want := map[string]int{
		"Doe J.;Smith J.":  2,
		"Doe J.;Jones A.":  1,
		"Jones A.;Smith J.": 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CooperationCounts() = %v, want %v", got, want)
	}
}

func TestPairKeyOrderInsensitive(t *testing.T) {
	if PairKey("Smith J.", "Doe J.") != PairKey("Doe J.", "Smith J.") {
		t.Error("PairKey() is order sensitive")
	}
	if got := PairKey("Smith J.", "Doe J."); got != "Doe J.;Smith J." {
		t.Errorf("PairKey() = %q, want lexicographic order", got)
	}
}

func TestExampleScenario(t *testing.T) {
	authors := []types.Author{
		{FirstName: "Jane", LastName: "Smith", RemoteIDs: []string{"A1"}},
		{FirstName: "John", LastName: "Doe", RemoteIDs: []string{"A2"}},
	}
	pubs := []types.Publication{pubWith("Smith J.", "Doe J.")}

	counts := Counts(authors, pubs)
	if counts["Smith J."] != 1 || counts["Doe J."] != 1 {
		t.Errorf("Counts() = %v", counts)
	}

	coop := CooperationCounts(authors, pubs)
	if !reflect.DeepEqual(coop, map[string]int{"Doe J.;Smith J.": 1}) {
		t.Errorf("CooperationCounts() = %v", coop)
	}
}

func TestRadius(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 5},  // ceil(4*ln 3)  = ceil(4.394)
		{1, 6},  // ceil(4*ln 4)  = ceil(5.545)
		{7, 10}, // ceil(4*ln 10) = ceil(9.210)
	}
	for _, tt := range tests {
		if got := radius(tt.count); got != tt.want {
			t.Errorf("radius(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestBuildGraphNodes(t *testing.T) {
	authors := graphAuthors()
	counts := map[string]int{"Smith J.": 2, "Doe J.": 1, "Jones A.": 0}
	colors := map[string]string{"optics": "#112233", "chemistry": "#445566"}

	g := BuildGraph(authors, counts, map[string]int{}, colors)

	if len(g.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(g.Nodes))
	}
	// Dense indices in author enumeration order.
	if g.Nodes[0].Name != "Smith J." || g.Nodes[1].Name != "Doe J." || g.Nodes[2].Name != "Jones A." {
		t.Errorf("node order = %v", g.Nodes)
	}
	if g.Nodes[0].Color != "#112233" || g.Nodes[2].Color != "#445566" {
		t.Errorf("node colors = %q, %q", g.Nodes[0].Color, g.Nodes[2].Color)
	}
	if g.Nodes[0].Radius != radius(2) {
		t.Errorf("Radius = %d", g.Nodes[0].Radius)
	}
}

func TestBuildGraphWeightBound(t *testing.T) {
	authors := graphAuthors()
	coop := map[string]int{
		"Doe J.;Smith J.":  7,
		"Doe J.;Jones A.":  1,
		"Jones A.;Smith J.": 3,
	}

	g := BuildGraph(authors, Counts(authors, nil), coop, nil)

	for _, l := range g.Links {
		if l.Weight <= 0 || l.Weight > 0.25 {
			t.Errorf("weight %v out of (0, 0.25]", l.Weight)
		}
	}
	// The max pair gets exactly 1/4.
	var maxWeight float64
	for _, l := range g.Links {
		if l.Weight > maxWeight {
			maxWeight = l.Weight
		}
	}
	if maxWeight != 0.25 {
		t.Errorf("max weight = %v, want 0.25", maxWeight)
	}
}

func TestBuildGraphAmbientLinks(t *testing.T) {
	authors := graphAuthors()

	// No measured cooperation at all: Smith and Doe share "optics" and get
	// an ambient link; Jones is in another category and stays isolated.
	g := BuildGraph(authors, Counts(authors, nil), map[string]int{}, nil)

	if len(g.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1 ambient link", len(g.Links))
	}
	l := g.Links[0]
	if l.Source != 0 || l.Target != 1 {
		t.Errorf("ambient link %d-%d, want 0-1", l.Source, l.Target)
	}
	if math.Abs(l.Weight-0.03) > 1e-9 {
		t.Errorf("ambient weight = %v, want 0.03", l.Weight)
	}
}

func TestBuildGraphMeasuredBeatsAmbient(t *testing.T) {
	authors := graphAuthors()
	coop := map[string]int{"Doe J.;Smith J.": 4}

	g := BuildGraph(authors, Counts(authors, nil), coop, nil)

	if len(g.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1", len(g.Links))
	}
	if g.Links[0].Weight != 0.25 {
		t.Errorf("weight = %v, want measured 0.25, not ambient", g.Links[0].Weight)
	}
}

func TestCategoryColorsStableWithinRun(t *testing.T) {
	colors := CategoryColors(graphAuthors())
	if len(colors) != 2 {
		t.Fatalf("len(colors) = %d, want 2", len(colors))
	}
	// Both optics authors must resolve to the same color value.
	if colors["optics"] == "" || colors["chemistry"] == "" {
		t.Errorf("colors = %v", colors)
	}
	for _, c := range colors {
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("color %q is not #rrggbb", c)
		}
	}
}
