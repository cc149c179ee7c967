// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/paper-hub/pkg/types"
)

func paper(id, title, date, url string) types.Paper {
	return types.Paper{ID: id, Title: title, Date: date, URL: url, Source: "arXiv"}
}

func TestMergeEmptyBatchIsIdentity(t *testing.T) {
	existing := []types.Paper{
		paper("a1", "Paper One", "2024-02-01", "http://x/1"),
		paper("a2", "Paper Two", "2024-01-01", "http://x/2"),
	}

	merged, added := Merge(existing, nil)
	if added != 0 {
		t.Errorf("added = %d, want 0", added)
	}
	if !reflect.DeepEqual(merged, existing) {
		t.Errorf("merge with empty batch changed the catalog:\n got %v\nwant %v", merged, existing)
	}
}

func TestMergeSkipsKnownIDs(t *testing.T) {
	existing := []types.Paper{
		paper("a1", "Paper One", "2024-02-01", "http://x/1"),
	}
	incoming := []types.Paper{
		paper("a1", "Paper One Retitled", "2024-03-01", "http://x/other"),
	}

	merged, added := Merge(existing, incoming)
	if added != 0 {
		t.Errorf("added = %d, want 0", added)
	}
	if !reflect.DeepEqual(merged, existing) {
		t.Errorf("catalog changed despite all-duplicate batch: %v", merged)
	}
}

func TestMergeSkipsKnownURLs(t *testing.T) {
	existing := []types.Paper{
		paper("a1", "Paper One", "2024-02-01", "http://x/1"),
	}
	incoming := []types.Paper{
		paper("b9", "A Different Title Entirely", "2024-03-01", "http://x/1"),
	}

	merged, added := Merge(existing, incoming)
	if added != 0 || len(merged) != 1 {
		t.Errorf("url duplicate accepted: added=%d len=%d", added, len(merged))
	}
}

func TestMergeEmptyURLIsNoSignal(t *testing.T) {
	existing := []types.Paper{
		paper("a1", "Paper One", "2024-02-01", ""),
	}
	incoming := []types.Paper{
		paper("b1", "Paper Completely Unrelated", "2024-03-01", ""),
		paper("b1", "Another Title Again", "2024-03-01", ""),
	}

	merged, added := Merge(existing, incoming)
	if added != 1 {
		t.Errorf("added = %d, want 1 (empty urls must not collide, ids must)", added)
	}
	if len(merged) != 2 {
		t.Errorf("len(merged) = %d, want 2", len(merged))
	}
}

func TestMergeTitlePrefixDedup(t *testing.T) {
	existing := []types.Paper{
		paper("a1", "Sparse Autoencoders Find Interpretable Features", "2024-02-01", "http://x/1"),
	}
	incoming := []types.Paper{
		// Different id and url, same title modulo case and whitespace.
		paper("s2-abc", "  sparse autoencoders find interpretable features ", "2024-02-02", "http://y/abc"),
	}

	merged, added := Merge(existing, incoming)
	if added != 0 {
		t.Errorf("added = %d, want 0", added)
	}
	if len(merged) != 1 || merged[0].ID != "a1" {
		t.Errorf("first record should be retained, got %v", merged)
	}
}

func TestMergeDedupsWithinBatch(t *testing.T) {
	incoming := []types.Paper{
		paper("a1", "Paper One", "2024-02-01", "http://x/1"),
		paper("a1", "Paper One", "2024-02-01", "http://x/1"),
		paper("a2", "Paper Two", "2024-01-01", "http://x/2"),
	}

	merged, added := Merge(nil, incoming)
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	if len(merged) != 2 {
		t.Errorf("len(merged) = %d, want 2", len(merged))
	}
}

func TestMergeSortsByDateDescending(t *testing.T) {
	existing := []types.Paper{
		paper("a1", "Oldest", "2023-01-01", "http://x/1"),
	}
	incoming := []types.Paper{
		paper("b1", "Newest", "2024-06-01", "http://x/3"),
		paper("b2", "Middle", "2024-01-01", "http://x/4"),
	}

	merged, _ := Merge(existing, incoming)
	for i := 1; i < len(merged); i++ {
		if merged[i].Date > merged[i-1].Date {
			t.Errorf("not sorted descending at %d: %s > %s", i, merged[i].Date, merged[i-1].Date)
		}
	}
	if merged[0].ID != "b1" || merged[2].ID != "a1" {
		t.Errorf("unexpected order: %v", merged)
	}
}

func TestMergeStableForEqualDates(t *testing.T) {
	existing := []types.Paper{
		paper("a1", "First Same Day", "2024-02-01", "http://x/1"),
		paper("a2", "Second Same Day", "2024-02-01", "http://x/2"),
	}
	incoming := []types.Paper{
		paper("b1", "Third Same Day", "2024-02-01", "http://x/3"),
	}

	merged, added := Merge(existing, incoming)
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	got := []string{merged[0].ID, merged[1].ID, merged[2].ID}
	want := []string{"a1", "a2", "b1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("equal-date order = %v, want %v", got, want)
	}
}

func TestTitleKeyTruncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	if got := TitleKey(long); len(got) != 100 {
		t.Errorf("len(TitleKey) = %d, want 100", len(got))
	}
	if TitleKey("  Mixed Case  ") != "mixed case" {
		t.Errorf("TitleKey should case-fold and trim, got %q", TitleKey("  Mixed Case  "))
	}
}
