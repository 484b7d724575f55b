package domain

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

const DefaultWindowSize = 30

// RandSource picks tie-break indexes. *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

type selectorOptions struct {
	windowSize int
	rand       RandSource
}

type SelectorOption func(*selectorOptions)

func WithWindowSize(size int) SelectorOption {
	return func(o *selectorOptions) {
		o.windowSize = size
	}
}

func WithRand(source RandSource) SelectorOption {
	return func(o *selectorOptions) {
		o.rand = source
	}
}

// Selector picks the next item to evaluate out of an owned candidate pool.
//
// Eligible items are those not owned by the current user, not in the seen
// set and not interacted with locally. A query scans at most windowSize
// eligible entries from the cursor and returns one of the entries sharing
// the lowest evaluation count, chosen at random.
//
// A Selector is meant for a single session and is not safe for concurrent use.
type Selector struct {
	pool       []Item
	seen       map[ItemID]struct{}
	seenOrder  []ItemID
	user       UserID
	windowSize int
	cursor     int
	rand       RandSource
}

func NewSelector(pool []Item, seen []ItemID, user UserID, opts ...SelectorOption) (*Selector, error) {
	options := selectorOptions{windowSize: DefaultWindowSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.windowSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, options.windowSize)
	}
	if options.rand == nil {
		options.rand = globalRand{}
	}

	owned := make([]Item, 0, len(pool))
	keys := make(map[ItemID]struct{}, len(pool))
	for _, item := range pool {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		key := ItemKey(item)
		if _, dup := keys[key]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidRecord, key)
		}
		keys[key] = struct{}{}
		owned = append(owned, item)
	}

	s := &Selector{
		pool:       owned,
		seen:       make(map[ItemID]struct{}, len(seen)),
		seenOrder:  make([]ItemID, 0, len(seen)),
		user:       user,
		windowSize: options.windowSize,
		rand:       options.rand,
	}
	for _, id := range seen {
		s.remember(id)
	}
	s.sortPool()

	return s, nil
}

// Peek returns the next item without moving the cursor.
func (s *Selector) Peek() (Item, bool) {
	idx, ok := s.pick()
	if !ok {
		return Item{}, false
	}

	return s.pool[idx], true
}

// Next returns the next item and consumes it: the chosen entry is rotated
// into the cursor slot and the cursor moves past it.
func (s *Selector) Next() (Item, bool) {
	idx, ok := s.pick()
	if !ok {
		return Item{}, false
	}

	s.pool[s.cursor], s.pool[idx] = s.pool[idx], s.pool[s.cursor]
	item := s.pool[s.cursor]
	s.cursor++

	return item, true
}

func (s *Selector) MarkInteracted(item Item) {
	key := ItemKey(item)
	if key == "" {
		return
	}

	for i := range s.pool {
		if ItemKey(s.pool[i]) == key {
			s.pool[i].InteractedLocally = true
			break
		}
	}
	s.remember(key)
}

// Skip is recorded exactly like any other interaction.
func (s *Selector) Skip(item Item) {
	s.MarkInteracted(item)
}

// AddItems merges a refill batch into the pool. Known and already seen keys
// are dropped, the oldest entries are evicted down to the window size and the
// pool is re-sorted.
func (s *Selector) AddItems(items []Item) {
	present := make(map[ItemID]struct{}, len(s.pool)+len(items))
	for _, item := range s.pool {
		present[ItemKey(item)] = struct{}{}
	}

	for _, item := range items {
		if item.Validate() != nil {
			continue
		}
		key := ItemKey(item)
		if _, ok := present[key]; ok {
			continue
		}
		if s.hasSeen(key) {
			continue
		}
		present[key] = struct{}{}
		s.pool = append(s.pool, item)
	}

	if excess := len(s.pool) - s.windowSize; excess > 0 {
		s.pool = append(make([]Item, 0, s.windowSize), s.pool[excess:]...)
		if s.cursor >= len(s.pool) {
			s.cursor = len(s.pool) - 1
		}
	}

	s.sortPool()
}

func (s *Selector) PoolSize() int {
	return len(s.pool)
}

func (s *Selector) Cursor() int {
	return s.cursor
}

func (s *Selector) WindowSize() int {
	return s.windowSize
}

func (s *Selector) Seen() []ItemID {
	seen := make([]ItemID, len(s.seenOrder))
	copy(seen, s.seenOrder)
	return seen
}

// Items returns a copy of the pool in its current order.
func (s *Selector) Items() []Item {
	return CloneItems(s.pool)
}

func (s *Selector) pick() (int, bool) {
	var (
		run        []int
		minCount   int
		qualifying int
	)

	for i := s.cursor; i < len(s.pool) && qualifying < s.windowSize; i++ {
		item := s.pool[i]
		if !s.eligible(item) {
			continue
		}
		qualifying++

		if len(run) == 0 {
			minCount = item.EvaluationCount
		} else if item.EvaluationCount != minCount {
			break
		}
		run = append(run, i)
	}

	if len(run) == 0 {
		return 0, false
	}

	return run[s.rand.IntN(len(run))], true
}

func (s *Selector) eligible(item Item) bool {
	if item.OwnedBy(s.user) || item.InteractedLocally {
		return false
	}
	return !s.hasSeen(ItemKey(item))
}

func (s *Selector) hasSeen(id ItemID) bool {
	_, ok := s.seen[id]
	return ok
}

func (s *Selector) remember(id ItemID) {
	if id == "" || s.hasSeen(id) {
		return
	}
	s.seen[id] = struct{}{}
	s.seenOrder = append(s.seenOrder, id)
}

func (s *Selector) sortPool() {
	sort.SliceStable(s.pool, func(i, j int) bool {
		return s.pool[i].EvaluationCount < s.pool[j].EvaluationCount
	})
}
