package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// ApprovalStore is the volatile in-process implementation: initialized empty,
// lost on restart. The mysql store is the durable alternative.
type ApprovalStore struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewApprovalStore() *ApprovalStore {
	return &ApprovalStore{ids: make(map[string]struct{})}
}

func (s *ApprovalStore) SetApproval(_ context.Context, reviewID string, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if approved {
		s.ids[reviewID] = struct{}{}
	} else {
		delete(s.ids, reviewID)
	}
	return nil
}

func (s *ApprovalStore) ListApproved(_ context.Context, listingFilter string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		if listingFilter != "" && !strings.Contains(id, listingFilter) {
			continue
		}
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *ApprovalStore) Snapshot(_ context.Context) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.ids))
	for id := range s.ids {
		out[id] = true
	}
	return out, nil
}
