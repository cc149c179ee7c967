// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import "testing"

func TestRelevantStrongIndicatorShortCircuits(t *testing.T) {
	f := NewFilter(DefaultTerms())

	// No ML-context vocabulary at all; the strong phrase alone decides.
	if !f.Relevant("A Study of Sparse Autoencoder Dictionaries", "We study dictionaries.") {
		t.Error("strong indicator should accept without ML context")
	}
	if !f.Relevant("Mechanistic Interpretability in Practice", "") {
		t.Error("strong indicator in title alone should accept")
	}
}

func TestRelevantTierTwoRequiresBothLegs(t *testing.T) {
	f := NewFilter(DefaultTerms())

	tests := []struct {
		name     string
		title    string
		abstract string
		want     bool
	}{
		{
			"concept and context",
			"Understanding Attention Heads",
			"We analyze circuits in transformer language models.",
			true,
		},
		{
			"concept without context",
			"Interpretable Regression Trees",
			"A statistics paper about interpretable models of crop yield.",
			false,
		},
		{
			"context without concept",
			"Scaling Laws for Training",
			"We train a large transformer on text.",
			false,
		},
		{
			"neither",
			"A Survey of Databases",
			"We survey query planners.",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Relevant(tt.title, tt.abstract); got != tt.want {
				t.Errorf("Relevant(%q, %q) = %v, want %v", tt.title, tt.abstract, got, tt.want)
			}
		})
	}
}

func TestRelevantNarrowTermsNeedContext(t *testing.T) {
	f := NewFilter(DefaultTerms())

	// "probing" and "feature" are concept vocabulary, not strong
	// indicators, and the bare "sae" acronym is not a term at all ("SAE"
	// is also an automotive standards body); the spelled-out phrase or an
	// ML-context co-occurrence is required.
	if f.Relevant("SAE Steering Vectors", "") {
		t.Error("bare acronym without ML context should be rejected")
	}
	if !f.Relevant("SAE Features in Transformers", "") {
		t.Error("concept term with ML context should be accepted")
	}
	if f.Relevant("Probing Soil Composition", "Field measurements of nitrogen.") {
		t.Error("probing without ML context should be rejected")
	}
}

func TestRelevantCaseFolds(t *testing.T) {
	f := NewFilter(DefaultTerms())
	if !f.Relevant("SUPERPOSITION AND FEATURES", "") {
		t.Error("matching should be case-insensitive")
	}
}

func TestZeroFilterRejects(t *testing.T) {
	f := NewFilter(Terms{})
	if f.Relevant("Mechanistic Interpretability", "transformer circuits everywhere") {
		t.Error("empty term sets should reject everything")
	}
}
