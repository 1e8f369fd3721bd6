package hermes

import "sort"

// Changes describes how the set of PDF paths differs between two scans.
type Changes struct {
	Added   []string
	Deleted []string
}

// IsChanged reports whether any path was added or deleted.
func (c Changes) IsChanged() bool {
	return len(c.Added) > 0 || len(c.Deleted) > 0
}

// TrackChanges compares the previously indexed paths with the current ones.
// Both result slices are sorted.
func TrackChanges(prev, current []string) Changes {
	prevSet := make(map[string]struct{}, len(prev))
	for _, p := range prev {
		prevSet[p] = struct{}{}
	}
	currSet := make(map[string]struct{}, len(current))
	for _, p := range current {
		currSet[p] = struct{}{}
	}

	var changes Changes
	for p := range currSet {
		if _, ok := prevSet[p]; !ok {
			changes.Added = append(changes.Added, p)
		}
	}
	for p := range prevSet {
		if _, ok := currSet[p]; !ok {
			changes.Deleted = append(changes.Deleted, p)
		}
	}
	sort.Strings(changes.Added)
	sort.Strings(changes.Deleted)

	return changes
}
