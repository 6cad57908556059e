package navigation

import (
	"sort"
	"time"
)

// Order returns the task run names of the set, earliest finished or started first.
// Missing completion time sorts as the latest possible time, missing start time as the
// earliest, and equal timestamps are ordered by name.
func Order(set Set) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return less(names[i], set[names[i]], names[j], set[names[j]])
	})
	return names
}

// DefaultActive returns the last of the ordered names, the run most likely to be of interest
func DefaultActive(ordered []string) (string, bool) {
	if len(ordered) == 0 {
		return "", false
	}
	return ordered[len(ordered)-1], true
}

// names are the set keys, the Name of a record may be unset
func less(name string, record Record, compareWithName string, compareWith Record) bool {
	if c := compareCompletion(record.CompletionTime, compareWith.CompletionTime); c != 0 {
		return c < 0
	}
	if c := compareStart(record.StartTime, compareWith.StartTime); c != 0 {
		return c < 0
	}
	return name < compareWithName
}

// nil is after any time
func compareCompletion(t, compareWith *time.Time) int {
	switch {
	case t == nil && compareWith == nil:
		return 0
	case t == nil:
		return 1
	case compareWith == nil:
		return -1
	}
	return t.Compare(*compareWith)
}

// nil is before any time
func compareStart(t, compareWith *time.Time) int {
	switch {
	case t == nil && compareWith == nil:
		return 0
	case t == nil:
		return -1
	case compareWith == nil:
		return 1
	}
	return t.Compare(*compareWith)
}
