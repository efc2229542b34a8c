package store

import (
	"strings"

	"github.com/rogersnm/roster/internal/model"
)

// Search returns active employees whose name contains query as a literal,
// case-sensitive substring.
func (s *Store) Search(query string) []model.Employee {
	out := make([]model.Employee, 0)
	for _, r := range s.records {
		if r.Active && strings.Contains(r.Name, query) {
			out = append(out, r)
		}
	}
	return out
}
