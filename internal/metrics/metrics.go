// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics derives collaboration analytics from the imported
// corpus: per-author publication counts, pairwise co-authorship counts,
// and a node/link graph for visualization.
package metrics

import (
	"sort"
	"strings"

	"github.com/pdiddy/pubwatch/pkg/types"
)

// PairDelimiter joins the two names of a cooperation-count key.
const PairDelimiter = ";"

// PairKey builds the unordered-pair key for two author names: the names
// sorted lexicographically and joined, so (A,B) and (B,A) collide.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + PairDelimiter + b
}

// Counts returns per-author publication counts. An author is counted once
// per publication whose author terms contain the author's canonical name
// ("Lastname F."). Every observed author appears in the result, zero
// counts included.
func Counts(authors []types.Author, pubs []types.Publication) map[string]int {
	counts := make(map[string]int, len(authors))
	for _, a := range authors {
		counts[a.CanonicalName()] = 0
	}

	for _, p := range pubs {
		for _, name := range recognizedNames(counts, p) {
			counts[name]++
		}
	}
	return counts
}

// CooperationCounts returns co-authorship counts per unordered author
// pair. Each publication with n ≥ 2 recognized observed authors increments
// all n*(n-1)/2 pair counters.
func CooperationCounts(authors []types.Author, pubs []types.Publication) map[string]int {
	observed := make(map[string]int, len(authors))
	for _, a := range authors {
		observed[a.CanonicalName()] = 0
	}

	coop := make(map[string]int)
	for _, p := range pubs {
		names := recognizedNames(observed, p)
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				coop[PairKey(names[i], names[j])]++
			}
		}
	}
	return coop
}

// recognizedNames returns the observed canonical names appearing among a
// publication's author terms, deduplicated and sorted.
func recognizedNames(observed map[string]int, p types.Publication) []string {
	seen := make(map[string]bool)
	for _, term := range p.Authors {
		name := strings.TrimSpace(term.Name)
		if _, ok := observed[name]; ok {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
