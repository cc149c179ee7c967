// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog maintains the deduplicated, date-ordered paper catalog
// and its JSON persistence.
package catalog

import (
	"sort"
	"strings"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// titlePrefixLen is the fixed normalized-title prefix length used for
// near-duplicate detection. Two genuinely distinct papers sharing a long
// common prefix collide; that false-positive risk is accepted.
const titlePrefixLen = 100

// Merge folds a batch of incoming papers into the existing catalog papers.
// A candidate is skipped when its id, non-empty url, or normalized-title
// prefix is already present, either in the existing papers or in a record
// accepted earlier in the same batch. The returned slice is sorted by date
// descending with a stable sort, so records sharing a date keep their
// relative insertion order. added is the number of accepted candidates.
func Merge(existing, incoming []types.Paper) (papers []types.Paper, added int) {
	ids := make(map[string]bool, len(existing))
	urls := make(map[string]bool, len(existing))
	titles := make(map[string]bool, len(existing))
	for _, p := range existing {
		ids[p.ID] = true
		if p.URL != "" {
			urls[p.URL] = true
		}
		titles[TitleKey(p.Title)] = true
	}

	merged := make([]types.Paper, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	for _, p := range incoming {
		titleKey := TitleKey(p.Title)
		if ids[p.ID] || (p.URL != "" && urls[p.URL]) || titles[titleKey] {
			continue
		}
		merged = append(merged, p)
		added++
		ids[p.ID] = true
		if p.URL != "" {
			urls[p.URL] = true
		}
		titles[titleKey] = true
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})
	return merged, added
}

// TitleKey returns the normalized-title dedup key: case-folded, trimmed,
// truncated to a fixed prefix length.
func TitleKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	if len(key) > titlePrefixLen {
		key = key[:titlePrefixLen]
	}
	return key
}
