package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(v float64) *float64 { return &v }

// fixture returns projects in arbitrary order. Sorted, they read
// a, e, b, d, c: a and e share the same key.
func fixture() []Project {
	return []Project{
		{Slug: "b", Date: NewDate(2023, 1, 1)},
		{Slug: "c", Order: order(1), Date: NewDate(2025, 1, 1)},
		{Slug: "a", Date: NewDate(2024, 5, 1)},
		{Slug: "d"},
		{Slug: "e", Order: order(0), Date: NewDate(2024, 5, 1)},
	}
}

func slugs(ps []Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Slug
	}
	return out
}

func TestSort(t *testing.T) {
	ps := fixture()
	Sort(ps)
	assert.Equal(t, []string{"a", "e", "b", "d", "c"}, slugs(ps))
}

func TestSortedLeavesInputAlone(t *testing.T) {
	ps := fixture()
	sorted := Sorted(ps)
	assert.Equal(t, []string{"b", "c", "a", "d", "e"}, slugs(ps))
	assert.Equal(t, []string{"a", "e", "b", "d", "c"}, slugs(sorted))
}

func TestLess(t *testing.T) {
	newer := Project{Date: NewDate(2024, 1, 1)}
	older := Project{Date: NewDate(2020, 1, 1)}
	pinned := Project{Order: order(-1)}

	assert.True(t, Less(newer, older))
	assert.False(t, Less(older, newer))
	assert.True(t, Less(pinned, newer), "lower order wins over date")
	assert.False(t, Less(newer, newer), "equal keys are not less")
}

func TestNeighbours(t *testing.T) {
	tests := []struct {
		slug     string
		prev     string
		next     string
		notFound bool
	}{
		{slug: "b", prev: "d", next: "a"},
		{slug: "a", prev: "b"},
		{slug: "e", prev: "b"},
		{slug: "d", prev: "c", next: "b"},
		{slug: "c", next: "d"},
		{slug: "missing", notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			prev, next := Neighbours(fixture(), tt.slug)
			if tt.notFound {
				assert.Nil(t, prev)
				assert.Nil(t, next)
				return
			}
			if tt.prev == "" {
				assert.Nil(t, prev)
			} else {
				require.NotNil(t, prev)
				assert.Equal(t, tt.prev, prev.Slug)
			}
			if tt.next == "" {
				assert.Nil(t, next)
			} else {
				require.NotNil(t, next)
				assert.Equal(t, tt.next, next.Slug)
			}
		})
	}
}

func TestNeighboursEqualKeysAreSkipped(t *testing.T) {
	ps := []Project{
		{Slug: "x", Date: NewDate(2024, 1, 1)},
		{Slug: "y", Date: NewDate(2024, 1, 1)},
	}
	prev, next := Neighbours(ps, "x")
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestCounter(t *testing.T) {
	tests := []struct {
		name     string
		projects []Project
		slug     string
		current  string
		total    string
	}{
		{"middle", fixture(), "b", "03", "05"},
		{"first", fixture(), "a", "01", "05"},
		{"last", fixture(), "c", "05", "05"},
		{"missing slug clamps to first", fixture(), "zzz", "01", "05"},
		{"empty", nil, "a", "01", "00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, total := Counter(tt.projects, tt.slug)
			assert.Equal(t, tt.current, current)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestCounterWide(t *testing.T) {
	ps := make([]Project, 120)
	for i := range ps {
		ps[i] = Project{Slug: "p", Order: order(float64(i))}
	}
	ps[119].Slug = "last"
	current, total := Counter(ps, "last")
	assert.Equal(t, "120", current)
	assert.Equal(t, "120", total)
}
