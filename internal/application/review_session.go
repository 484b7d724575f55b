package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/review-queue/internal/domain"
	"github.com/bnema/review-queue/internal/ports"
	"go.uber.org/zap"
)

type State int

const (
	StateLoading State = iota
	StateDisplaying
	StatePersisting
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateDisplaying:
		return "displaying"
	case StatePersisting:
		return "persisting"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type SessionDeps struct {
	Store  ports.ItemStore
	Loader *PoolLoader
	Clock  ports.Clock
	Logger *zap.Logger
}

type SessionConfig struct {
	User       domain.UserID
	WindowSize int
	Seen       []domain.ItemID
	Rand       domain.RandSource
}

type SessionStats struct {
	Reviewed int
	Reacted  int
	Skipped  int
	Failed   int
}

type event interface {
	name() string
}

type fetchCompleted struct {
	items     []domain.Item
	fromCache bool
	err       error
}

type actionRequested struct {
	evaluation domain.Evaluation
}

type persistCompleted struct {
	item       domain.Item
	evaluation domain.Evaluation
	err        error
}

type refillCompleted struct {
	items []domain.Item
	err   error
}

func (fetchCompleted) name() string   { return "fetch_completed" }
func (actionRequested) name() string  { return "action_requested" }
func (persistCompleted) name() string { return "persist_completed" }
func (refillCompleted) name() string  { return "refill_completed" }

// ReviewSession drives one user through the candidate pool. It shows one
// item at a time and only advances once the store has accepted the
// evaluation for it.
type ReviewSession struct {
	store  ports.ItemStore
	loader *PoolLoader
	clock  ports.Clock
	logger *zap.Logger
	cfg    SessionConfig

	mu         sync.Mutex
	state      State
	selector   *domain.Selector
	current    domain.Item
	hasCurrent bool
	stats      SessionStats
}

func NewReviewSession(deps SessionDeps, cfg SessionConfig) *ReviewSession {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.WindowSize == 0 {
		cfg.WindowSize = domain.DefaultWindowSize
	}

	return &ReviewSession{
		store:  deps.Store,
		loader: deps.Loader,
		clock:  deps.Clock,
		logger: deps.Logger.With(zap.String("user", string(cfg.User))),
		cfg:    cfg,
		state:  StateLoading,
	}
}

// Start loads the candidate pool and shows the first item. It may be called
// again after a failed load.
func (s *ReviewSession) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	switch s.state {
	case StateLoading, StateFailed:
		s.setState(StateLoading, "start")
	default:
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("start session in state %s: %w", state, ErrSessionNotReady)
	}
	s.mu.Unlock()

	items, fromCache, err := s.loader.Load(ctx, s.cfg.User)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transition(fetchCompleted{items: items, fromCache: fromCache, err: err})
}

func (s *ReviewSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ReviewSession) Current() (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCurrent {
		return domain.Item{}, false
	}
	return s.current, true
}

func (s *ReviewSession) Stats() SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *ReviewSession) Review(ctx context.Context, rating int, text string) error {
	return s.submit(ctx, func(item domain.Item) domain.Evaluation {
		return domain.NewReviewEvaluation(item, s.cfg.User, rating, text)
	})
}

func (s *ReviewSession) React(ctx context.Context, reaction domain.Reaction) error {
	return s.submit(ctx, func(item domain.Item) domain.Evaluation {
		return domain.NewReactionEvaluation(item, s.cfg.User, reaction)
	})
}

func (s *ReviewSession) Skip(ctx context.Context) error {
	return s.submit(ctx, func(item domain.Item) domain.Evaluation {
		return domain.NewSkipEvaluation(item, s.cfg.User)
	})
}

// Refill fetches a fresh batch from the store and merges it into the pool.
func (s *ReviewSession) Refill(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.refillAllowed(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	items, err := s.loader.Warm(ctx, s.cfg.User)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transition(refillCompleted{items: items, err: err})
}

func (s *ReviewSession) submit(ctx context.Context, build func(domain.Item) domain.Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.actionAllowed(); err != nil {
		s.mu.Unlock()
		return err
	}
	item := s.current
	evaluation := build(item)
	evaluation.RecordedAt = s.clock.Now()
	if err := evaluation.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.transition(actionRequested{evaluation: evaluation}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	done := s.dispatch(ctx, evaluation)

	select {
	case err := <-done:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.transition(persistCompleted{item: item, evaluation: evaluation, err: err})
	case <-ctx.Done():
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logger.Warn("evaluation write abandoned",
			zap.String("item", string(item.ID)),
			zap.Error(ctx.Err()))
		s.setState(StateDisplaying, "abandon")
		return ctx.Err()
	}
}

// dispatch runs the store write on its own goroutine. The channel is
// buffered so the goroutine exits even when nobody waits for the result.
func (s *ReviewSession) dispatch(ctx context.Context, evaluation domain.Evaluation) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- s.store.RecordEvaluation(ctx, evaluation)
	}()
	return done
}

func (s *ReviewSession) actionAllowed() error {
	switch s.state {
	case StateDisplaying:
		if !s.hasCurrent {
			return ErrNoCurrentItem
		}
		return nil
	case StatePersisting:
		return ErrActionInFlight
	case StateExhausted:
		return ErrNoCurrentItem
	default:
		return fmt.Errorf("evaluate in state %s: %w", s.state, ErrSessionNotReady)
	}
}

func (s *ReviewSession) refillAllowed() error {
	switch s.state {
	case StateDisplaying, StateExhausted:
		return nil
	case StatePersisting:
		return ErrActionInFlight
	default:
		return fmt.Errorf("refill in state %s: %w", s.state, ErrSessionNotReady)
	}
}

// transition applies ev to the session. Callers hold s.mu.
func (s *ReviewSession) transition(ev event) error {
	switch ev := ev.(type) {
	case fetchCompleted:
		if s.state != StateLoading {
			return fmt.Errorf("%s in state %s: %w", ev.name(), s.state, ErrSessionNotReady)
		}
		if ev.err != nil {
			s.setState(StateFailed, ev.name())
			return ev.err
		}
		if len(ev.items) == 0 {
			s.setState(StateExhausted, ev.name())
			return nil
		}
		selector, err := domain.NewSelector(ev.items, s.cfg.Seen, s.cfg.User, s.selectorOptions()...)
		if err != nil {
			s.setState(StateFailed, ev.name())
			return fmt.Errorf("build selector: %w", err)
		}
		s.selector = selector
		s.logger.Debug("candidate pool ready",
			zap.Int("items", selector.PoolSize()),
			zap.Bool("from_cache", ev.fromCache))
		s.showNext(ev.name())
		return nil

	case actionRequested:
		if err := s.actionAllowed(); err != nil {
			return err
		}
		if domain.ItemKey(s.current) != ev.evaluation.ItemID {
			return fmt.Errorf("%s for item %q: %w", ev.name(), ev.evaluation.ItemID, ErrNoCurrentItem)
		}
		s.setState(StatePersisting, ev.name())
		return nil

	case persistCompleted:
		if s.state != StatePersisting {
			return fmt.Errorf("%s in state %s: %w", ev.name(), s.state, ErrSessionNotReady)
		}
		if ev.err != nil {
			s.stats.Failed++
			s.logger.Warn("evaluation write failed",
				zap.String("item", string(ev.item.ID)),
				zap.String("kind", string(ev.evaluation.Kind)),
				zap.Error(ev.err))
			s.setState(StateDisplaying, ev.name())
			return fmt.Errorf("%w: %w", ErrRemoteWriteFailed, ev.err)
		}
		switch ev.evaluation.Kind {
		case domain.EvaluationSkip:
			s.selector.Skip(ev.item)
			s.stats.Skipped++
		case domain.EvaluationReaction:
			s.selector.MarkInteracted(ev.item)
			s.stats.Reacted++
		default:
			s.selector.MarkInteracted(ev.item)
			s.stats.Reviewed++
		}
		s.showNext(ev.name())
		return nil

	case refillCompleted:
		if err := s.refillAllowed(); err != nil {
			return err
		}
		if ev.err != nil {
			return ev.err
		}
		if s.selector == nil {
			if len(ev.items) == 0 {
				return nil
			}
			selector, err := domain.NewSelector(ev.items, s.cfg.Seen, s.cfg.User, s.selectorOptions()...)
			if err != nil {
				return fmt.Errorf("build selector: %w", err)
			}
			s.selector = selector
		} else {
			s.selector.AddItems(ev.items)
		}
		s.showNext(ev.name())
		return nil

	default:
		return fmt.Errorf("unknown session event %T", ev)
	}
}

func (s *ReviewSession) selectorOptions() []domain.SelectorOption {
	opts := []domain.SelectorOption{domain.WithWindowSize(s.cfg.WindowSize)}
	if s.cfg.Rand != nil {
		opts = append(opts, domain.WithRand(s.cfg.Rand))
	}
	return opts
}

func (s *ReviewSession) showNext(cause string) {
	item, ok := s.selector.Peek()
	if !ok {
		s.current = domain.Item{}
		s.hasCurrent = false
		s.setState(StateExhausted, cause)
		return
	}
	s.current = item
	s.hasCurrent = true
	s.setState(StateDisplaying, cause)
}

func (s *ReviewSession) setState(next State, cause string) {
	if s.state != next {
		s.logger.Debug("session transition",
			zap.Stringer("from", s.state),
			zap.Stringer("to", next),
			zap.String("event", cause))
	}
	s.state = next
}
