package execution

import (
	"fmt"
	"strconv"
	"strings"

	"ttp/internal/domain"
)

// Scheduler distributes cases across shards
type Scheduler interface {
	Schedule(cases []domain.TestCase, shardCount int) [][]domain.TestCase
}

// RoundRobinScheduler distributes cases evenly across shards
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes cases evenly across shards using round-robin.
// Each shard keeps the relative order of its cases.
func (s *RoundRobinScheduler) Schedule(cases []domain.TestCase, shardCount int) [][]domain.TestCase {
	if shardCount <= 0 {
		shardCount = 1
	}

	distribution := make([][]domain.TestCase, shardCount)
	for i := range distribution {
		distribution[i] = make([]domain.TestCase, 0)
	}

	for i, tc := range cases {
		shard := i % shardCount
		distribution[shard] = append(distribution[shard], tc)
	}

	return distribution
}

// Shard returns the index-th of total shards, counting from 1
func (s *RoundRobinScheduler) Shard(cases []domain.TestCase, index, total int) ([]domain.TestCase, error) {
	if total <= 0 || index < 1 || index > total {
		return nil, fmt.Errorf("invalid shard %d/%d", index, total)
	}
	return s.Schedule(cases, total)[index-1], nil
}

// ParseShard parses a shard flag of the form "i/n"
func ParseShard(s string) (index, total int, err error) {
	left, right, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("invalid shard %q: want i/n", s)
	}
	if index, err = strconv.Atoi(strings.TrimSpace(left)); err != nil {
		return 0, 0, fmt.Errorf("invalid shard %q: %w", s, err)
	}
	if total, err = strconv.Atoi(strings.TrimSpace(right)); err != nil {
		return 0, 0, fmt.Errorf("invalid shard %q: %w", s, err)
	}
	if total <= 0 || index < 1 || index > total {
		return 0, 0, fmt.Errorf("invalid shard %q: index must be within 1..%d", s, total)
	}
	return index, total, nil
}
