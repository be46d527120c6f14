// Package interactions queries remote protein interaction databases for the
// partners of a single protein.
package interactions

import (
	"context"
	"sort"
)

// Source is implemented by each interaction database. Partners returns the
// distinct partner accessions of accession, never accession itself.
type Source interface {
	Name() string
	Partners(ctx context.Context, accession string) ([]string, error)
}

// partnerSet collects accessions, dropping the queried protein.
type partnerSet struct {
	self string
	ids  map[string]struct{}
}

func newPartnerSet(self string) *partnerSet {
	return &partnerSet{self: self, ids: make(map[string]struct{})}
}

func (s *partnerSet) add(id string) {
	if id == "" || id == s.self {
		return
	}
	s.ids[id] = struct{}{}
}

func (s *partnerSet) sorted() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
