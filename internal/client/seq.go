package client

import (
	"sync"
)

// fetchSeq hands out monotonically increasing tickets per resource key. A
// response is only applied if its ticket is still the newest one for its
// key; older in-flight fetches resolve as stale.
type fetchSeq struct {
	mu sync.Mutex
	m  map[string]uint64
}

func newFetchSeq() *fetchSeq {
	return &fetchSeq{m: make(map[string]uint64)}
}

func (s *fetchSeq) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key]++
	return s.m[key]
}

func (s *fetchSeq) isCurrent(key string, ticket uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key] == ticket
}
