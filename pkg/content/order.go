package content

import (
	"fmt"
	"slices"
	"time"
)

// sortKey is the (order, date) pair projects are ranked by. Missing values
// coalesce to order 0 and 1970-01-01.
type sortKey struct {
	order float64
	date  time.Time
}

func keyOf(p Project) sortKey {
	return sortKey{order: p.OrderValue(), date: p.Date.OrEpoch()}
}

// before reports whether k is listed ahead of o: lower order first, then
// newer date first.
func (k sortKey) before(o sortKey) bool {
	if k.order != o.order {
		return k.order < o.order
	}
	return k.date.After(o.date)
}

// Less reports whether a is listed before b on the home grid.
func Less(a, b Project) bool {
	return keyOf(a).before(keyOf(b))
}

// Sort orders projects by order ascending, then date descending. Projects
// with equal keys keep their relative order.
func Sort(projects []Project) {
	slices.SortStableFunc(projects, func(a, b Project) int {
		ka, kb := keyOf(a), keyOf(b)
		switch {
		case ka.before(kb):
			return -1
		case kb.before(ka):
			return 1
		}
		return 0
	})
}

// Sorted returns a sorted copy of projects.
func Sorted(projects []Project) []Project {
	out := slices.Clone(projects)
	Sort(out)
	return out
}

// Neighbours returns the projects adjacent to slug in listing order.
//
// next is the nearest project listed before slug (lower order, or equal
// order and newer date). prev is the nearest project listed after it.
// Comparisons are strict, so projects sharing slug's exact key are never
// neighbours. Both are nil when slug is not found.
func Neighbours(projects []Project, slug string) (prev, next *Project) {
	i := slices.IndexFunc(projects, func(p Project) bool { return p.Slug == slug })
	if i < 0 {
		return nil, nil
	}
	cur := keyOf(projects[i])

	for j := range projects {
		p := &projects[j]
		if p.Slug == slug || p.Slug == "" {
			continue
		}
		k := keyOf(*p)
		switch {
		case k.before(cur):
			// Nearest newer: the latest-listed of those ahead.
			if next == nil || keyOf(*next).before(k) {
				next = p
			}
		case cur.before(k):
			if prev == nil || k.before(keyOf(*prev)) {
				prev = p
			}
		}
	}
	return prev, next
}

// Counter returns the 1-based position of slug in listing order and the
// total count, both zero-padded to two digits. A missing slug counts as
// the first project.
func Counter(projects []Project, slug string) (current, total string) {
	sorted := Sorted(projects)
	i := max(0, slices.IndexFunc(sorted, func(p Project) bool { return p.Slug == slug }))
	return fmt.Sprintf("%02d", i+1), fmt.Sprintf("%02d", len(sorted))
}
