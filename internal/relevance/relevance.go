// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance decides whether a fetched record belongs in the catalog.
//
// The filter is a two-tier keyword gate over the case-folded title and
// abstract. Tier 1 accepts on any strong-indicator phrase regardless of
// other signals; tier 2 requires an interpretability concept and a
// neural/ML context to co-occur. The tiering trades recall for precision:
// "interpretable" alone in an unrelated statistics paper is not enough.
package relevance

import "strings"

// Terms holds the keyword sets the filter matches against. The sets are
// configuration data; the decision policy lives in Filter.
type Terms struct {
	// Strong phrases accept a record on their own (tier 1).
	Strong []string

	// Concept terms mark interpretability vocabulary (tier 2, first leg).
	Concept []string

	// Context terms mark neural/ML vocabulary (tier 2, second leg).
	Context []string
}

// DefaultTerms returns the mechanistic-interpretability term sets.
func DefaultTerms() Terms {
	return Terms{
		Strong: []string{
			"mechanistic interpretability",
			"sparse autoencoder",
			"transformer circuits",
			"activation patching",
			"superposition",
			"polysemant",
			"monosemant",
		},
		Concept: []string{
			"interpretab",
			"explain",
			"understand",
			"circuit",
			"mechanis",
			"probing",
			"feature",
		},
		Context: []string{
			"neural",
			"transformer",
			"language model",
			"llm",
			"gpt",
			"bert",
			"attention",
		},
	}
}

// Filter is the relevance gate. The zero value rejects everything; build
// one with NewFilter.
type Filter struct {
	terms Terms
}

// NewFilter returns a Filter over the given term sets.
func NewFilter(terms Terms) *Filter {
	return &Filter{terms: terms}
}

// Relevant reports whether a record with the given title and abstract
// belongs in the catalog.
func (f *Filter) Relevant(title, abstract string) bool {
	content := strings.ToLower(title) + " " + strings.ToLower(abstract)

	if containsAny(content, f.terms.Strong) {
		return true
	}
	return containsAny(content, f.terms.Concept) && containsAny(content, f.terms.Context)
}

func containsAny(content string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(content, t) {
			return true
		}
	}
	return false
}
