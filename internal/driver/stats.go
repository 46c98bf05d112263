package driver

import (
	"sort"

	"github.com/google/uuid"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
)

// KindCount is the number of live objects of one kind.
type KindCount struct {
	Kind  schema.Kind
	Count int
}

// Stats describes the content of an arena.
type Stats struct {
	Live        int
	Dead        int
	Collections int
	Strings     int
	Roots       int
	Session     uuid.UUID
	Origin      uuid.UUID
	Kinds       []KindCount
}

// CollectStats counts a's objects by kind, most frequent first.
func CollectStats(a *model.Arena) Stats {
	s := Stats{
		Collections: a.NumCollections(),
		Strings:     a.Strings().Len(),
		Roots:       len(a.Roots()),
		Session:     a.Session(),
		Origin:      a.Origin(),
	}
	counts := make(map[schema.Kind]int)
	for _, info := range a.AllObjects() {
		if !info.Alive {
			s.Dead++
			continue
		}
		s.Live++
		counts[info.Kind]++
	}
	s.Kinds = make([]KindCount, 0, len(counts))
	for k, n := range counts {
		s.Kinds = append(s.Kinds, KindCount{Kind: k, Count: n})
	}
	sort.Slice(s.Kinds, func(i, j int) bool {
		if s.Kinds[i].Count != s.Kinds[j].Count {
			return s.Kinds[i].Count > s.Kinds[j].Count
		}
		return s.Kinds[i].Kind < s.Kinds[j].Kind
	})
	return s
}
