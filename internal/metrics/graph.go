// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pdiddy/pubwatch/pkg/types"
)

// ambientWeight is the near-zero link weight added between same-category
// authors with no measured collaborations, to keep them visually clustered.
const ambientWeight = 0.03

// defaultColor is used for authors with no colored category.
const defaultColor = "#7f7f7f"

// Node is one author in the collaboration graph.
type Node struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`

	// Radius grows logarithmically with the publication count.
	Radius int `json:"radius"`

	Color string `json:"color"`
}

// Link is one weighted edge between two node indices.
type Link struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph is the node/link structure consumed by the front-end renderer.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// CategoryColors assigns one random color to every category appearing on
// the given authors. Assignment happens once per run: stable within a
// graph build, different across runs.
func CategoryColors(authors []types.Author) map[string]string {
	colors := make(map[string]string)
	for _, a := range authors {
		for _, c := range a.Categories {
			if _, ok := colors[c]; !ok {
				colors[c] = randomColor()
			}
		}
	}
	return colors
}

func randomColor() string {
	// Mid-range channels so labels stay readable on white.
	r := 0x40 + rand.Intn(0xa0)
	g := 0x40 + rand.Intn(0xa0)
	b := 0x40 + rand.Intn(0xa0)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// BuildGraph converts the count maps into the renderable node/link form.
// Node indices are dense 0..N-1 in the order authors are given. A pair
// with a positive cooperation count gets weight count/(max*4), bounding
// all measured weights to (0, 0.25]; a same-category pair with no measured
// cooperation gets an ambient link instead.
func BuildGraph(authors []types.Author, counts, coop map[string]int, colors map[string]string) *Graph {
	g := &Graph{}

	for _, a := range authors {
		category := ""
		if len(a.Categories) > 0 {
			category = a.Categories[0]
		}
		color := defaultColor
		if c, ok := colors[category]; ok {
			color = c
		}
		g.Nodes = append(g.Nodes, Node{
			Name:     a.CanonicalName(),
			Category: category,
			Radius:   radius(counts[a.CanonicalName()]),
			Color:    color,
		})
	}

	maxCount := 0
	for _, c := range coop {
		if c > maxCount {
			maxCount = c
		}
	}

	for i := 0; i < len(authors); i++ {
		for j := i + 1; j < len(authors); j++ {
			key := PairKey(authors[i].CanonicalName(), authors[j].CanonicalName())
			count := coop[key]
			switch {
			case count > 0:
				g.Links = append(g.Links, Link{
					Source: i,
					Target: j,
					Weight: float64(count) / (float64(maxCount) * 4),
				})
			case shareCategory(authors[i], authors[j]):
				g.Links = append(g.Links, Link{
					Source: i,
					Target: j,
					Weight: ambientWeight,
				})
			}
		}
	}
	return g
}

// radius maps a publication count to a node radius: ceil(4 * ln(count+3)).
func radius(count int) int {
	return int(math.Ceil(4 * math.Log(float64(count)+3)))
}

// shareCategory reports whether two authors have a category in common.
func shareCategory(a, b types.Author) bool {
	set := make(map[string]bool, len(a.Categories))
	for _, c := range a.Categories {
		set[c] = true
	}
	for _, c := range b.Categories {
		if set[c] {
			return true
		}
	}
	return false
}
