// Package view holds the pure display logic over a snapshot of the
// entry collection: filtering, the excluded-tag rule and the display
// sort order. Nothing here mutates its input or touches disk.
package view

import (
	"cmp"
	"iter"
	"slices"

	"libtrack/internal/entities"
)

// All is the wildcard filter value matching every tag or type.
const All = "All"

// Filter is the display filter state.
//
// Entries whose tag is in ExcludedTags are hidden from the default
// view. The exclusion is bypassed when the user filters by type, or
// when the selected tag is itself an excluded one: asking for a tag
// explicitly always shows it.
type Filter struct {
	Tag          string
	AmountType   string
	ExcludedTags []string
}

// NewFilter returns the default filter state: everything visible
// except the excluded tags.
func NewFilter(excludedTags []string) Filter {
	return Filter{Tag: All, AmountType: All, ExcludedTags: excludedTags}
}

func (f Filter) exclusionBypassed() bool {
	if f.AmountType != All {
		return true
	}
	return f.Tag != All && slices.Contains(f.ExcludedTags, f.Tag)
}

func (f Filter) matches(e entities.Entry) bool {
	if f.Tag != All && e.TagTask != f.Tag {
		return false
	}
	if f.AmountType != All && e.AmountType != f.AmountType {
		return false
	}
	if f.exclusionBypassed() {
		return true
	}
	return !slices.Contains(f.ExcludedTags, e.TagTask)
}

// Visible returns the entries to display, in display order: highest
// completion percentage first, ties broken by name. The sequence is
// restartable and the input slice is left untouched.
func Visible(collection []entities.Entry, f Filter) iter.Seq[entities.Entry] {
	filtered := make([]entities.Entry, 0, len(collection))
	for _, e := range collection {
		if f.matches(e) {
			filtered = append(filtered, e)
		}
	}

	slices.SortStableFunc(filtered, func(a, b entities.Entry) int {
		if c := cmp.Compare(b.CompletionPercentage(), a.CompletionPercentage()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	return func(yield func(entities.Entry) bool) {
		for _, e := range filtered {
			if !yield(e) {
				return
			}
		}
	}
}

// Tags returns the distinct tags across the collection, sorted, with
// the All wildcard first.
func Tags(collection []entities.Entry) []string {
	return distinct(collection, func(e entities.Entry) string { return e.TagTask })
}

// Types returns the distinct types across the collection, sorted,
// with the All wildcard first.
func Types(collection []entities.Entry) []string {
	return distinct(collection, func(e entities.Entry) string { return e.AmountType })
}

func distinct(collection []entities.Entry, key func(entities.Entry) string) []string {
	seen := make(map[string]bool, len(collection))
	values := []string{All}
	for _, e := range collection {
		if k := key(e); !seen[k] {
			seen[k] = true
			values = append(values, k)
		}
	}
	slices.Sort(values[1:])
	return values
}
