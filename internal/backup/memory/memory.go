package memory

import (
	"context"
	"fmt"
	"sync"

	"lifelog/internal/backup"
	"lifelog/internal/core"
)

// Store keeps appended rows in memory, grouped by domain. It stands in for
// the Sheets backend in development and tests.
type Store struct {
	mu   sync.Mutex
	rows map[core.Domain][]backup.Row
}

var _ backup.Appender = (*Store)(nil)

func New() *Store {
	return &Store{rows: make(map[core.Domain][]backup.Row)}
}

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, domain core.Domain, row backup.Row) (string, error) {
	if len(row) == 0 {
		return "", fmt.Errorf("empty row for domain %s", domain)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[domain] = append(s.rows[domain], row)
	return fmt.Sprintf("mem:%s:%d", domain, len(s.rows[domain])), nil
}

// Rows returns a copy of the rows appended for a domain.
func (s *Store) Rows(domain core.Domain) []backup.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]backup.Row, len(s.rows[domain]))
	copy(out, s.rows[domain])
	return out
}
