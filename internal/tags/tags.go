// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tags derives topical labels from a record's text content.
package tags

import "strings"

// MaxTags caps the number of labels emitted per record.
const MaxTags = 6

// Rule maps one label to the keywords that trigger it.
type Rule struct {
	Label    string
	Keywords []string
}

// DefaultRules returns the tag table in emission order. The table is read
// top to bottom; a record's tag order reflects table order, not where the
// keyword appeared in the text.
func DefaultRules() []Rule {
	return []Rule{
		{Label: "SAE", Keywords: []string{"sparse autoencoder", " sae ", " sae."}},
		{Label: "circuits", Keywords: []string{"circuit"}},
		{Label: "superposition", Keywords: []string{"superposition"}},
		{Label: "features", Keywords: []string{"feature"}},
		{Label: "probing", Keywords: []string{"probing", "linear probe"}},
		{Label: "safety", Keywords: []string{"safety", "alignment"}},
		{Label: "attention", Keywords: []string{"attention head"}},
		{Label: "survey", Keywords: []string{"survey", "review"}},
	}
}

// Generator derives tags from title and abstract text. Pure and
// deterministic: identical input always yields identical, order-stable
// output, which the test fixtures rely on.
type Generator struct {
	rules []Rule
}

// NewGenerator returns a Generator over the given rule table.
func NewGenerator(rules []Rule) *Generator {
	return &Generator{rules: rules}
}

// Tags returns the labels whose keywords occur in the case-folded
// title+abstract text. Each label is emitted at most once, output is
// capped at MaxTags. The result is never nil so the field serializes
// as a JSON array even when no rule matches.
func (g *Generator) Tags(title, abstract string) []string {
	content := strings.ToLower(title) + " " + strings.ToLower(abstract)

	out := []string{}
	seen := make(map[string]bool)
	for _, rule := range g.rules {
		if len(out) >= MaxTags {
			break
		}
		if seen[rule.Label] {
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(content, kw) {
				out = append(out, rule.Label)
				seen[rule.Label] = true
				break
			}
		}
	}
	return out
}
