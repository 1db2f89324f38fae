// Package engine composes the registry, evidence log, subscriptions and
// ledger into the operations the chat-platform layer consumes.
package engine

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"sort"
	"time"

	"regimen/internal/ledger"
	"regimen/internal/platform/metrics"
	"regimen/internal/routine"
	"regimen/internal/streak"
	streakstore "regimen/internal/streak/store"
	"regimen/internal/subscription"
	"regimen/pkg/errors"
	"regimen/pkg/platform/sentinel"
	"regimen/pkg/requestcontext"
)

// Summary is the user-facing weekly status: current balance plus the
// distinct-day count for every routine the user is opted into.
type Summary struct {
	UserID  string         `json:"user_id"`
	Balance float64        `json:"balance"`
	Counts  map[string]int `json:"counts"`
}

// FiringResult is the aggregate outcome of one deadline firing, rendered by
// the external notifier.
type FiringResult struct {
	Routine string    `json:"routine"`
	FiredAt time.Time `json:"fired_at"`
	// Missed holds the punished subscribers, ordered by user id. Empty when
	// everyone satisfied the rule.
	Missed []string `json:"missed"`
}

// Notifier receives firing results. The chat platform implements it; the
// engine never renders messages itself.
type Notifier interface {
	Notify(ctx context.Context, result FiringResult)
}

// SummaryCache is an optional read-through cache for weekly summaries.
type SummaryCache interface {
	Get(ctx context.Context, userID string) (*Summary, error)
	Set(ctx context.Context, summary Summary) error
	Invalidate(ctx context.Context, userID string) error
}

// Engine wires the core components. All operations are short synchronous
// transactions against the stores; none blocks on user input.
type Engine struct {
	registry      *routine.Registry
	streaks       streakstore.Store
	subscriptions subscription.Store
	balances      ledger.Store
	loc           *time.Location

	notifier Notifier
	cache    SummaryCache
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithNotifier sets the firing-result consumer.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithSummaryCache enables weekly-summary caching.
func WithSummaryCache(c SummaryCache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger sets a logger for evaluation outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds the engine.
func New(registry *routine.Registry, streaks streakstore.Store, subscriptions subscription.Store, balances ledger.Store, loc *time.Location, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, stderrors.New("registry is required")
	}
	if streaks == nil || subscriptions == nil || balances == nil {
		return nil, stderrors.New("streak, subscription and ledger stores are required")
	}
	if loc == nil {
		loc = time.Local
	}
	e := &Engine{
		registry:      registry,
		streaks:       streaks,
		subscriptions: subscriptions,
		balances:      balances,
		loc:           loc,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Registry exposes the routine catalogue to the transport layer.
func (e *Engine) Registry() *routine.Registry { return e.registry }

// RegisterUser idempotently creates the user. The platform layer calls it
// for every roster member at startup.
func (e *Engine) RegisterUser(ctx context.Context, userID string) error {
	if err := e.balances.EnsureUser(ctx, userID); err != nil {
		return errors.Wrap(err, errors.CodeUnavailable, "register user")
	}
	return nil
}

// SubmitEvidence records an evidence event and returns the updated weekly
// summary. Duplicate same-day submissions are allowed; they collapse at the
// distinct-day level.
func (e *Engine) SubmitEvidence(ctx context.Context, userID, routineName string, occurredAt time.Time) (*Summary, error) {
	if _, err := e.registry.Get(routineName); err != nil {
		return nil, errors.Wrap(err, errors.CodeNotFound, "unknown routine")
	}

	event := streak.NewEvidenceEvent(userID, routineName, occurredAt)
	if err := e.streaks.Record(ctx, event); err != nil {
		return nil, errors.Wrap(err, errors.CodeUnavailable, "record evidence")
	}
	e.metrics.RecordEvidence(routineName)

	if e.cache != nil {
		if err := e.cache.Invalidate(ctx, userID); err != nil {
			e.logger.WarnContext(ctx, "summary cache invalidation failed",
				"user_id", userID, "error", err)
		}
	}

	return e.WeeklySummary(ctx, userID)
}

// WeeklySummary reports the balance and this week's distinct-day counts for
// the user's subscribed routines. Routines with no events report 0, never
// disappear.
func (e *Engine) WeeklySummary(ctx context.Context, userID string) (*Summary, error) {
	if e.cache != nil {
		if cached, err := e.cache.Get(ctx, userID); err == nil && cached != nil {
			return cached, nil
		}
	}

	balance, err := e.balances.Balance(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnavailable, "get balance")
	}

	subs, err := e.subscriptions.SubscriptionsOf(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnavailable, "list subscriptions")
	}
	routines := make([]string, 0, len(subs))
	for _, name := range e.registry.Names() {
		if _, ok := subs[name]; ok {
			routines = append(routines, name)
		}
	}

	now := requestcontext.Now(ctx)
	counts, err := e.streaks.Summarize(ctx, userID, streak.WeekOf(now, e.loc), routines)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnavailable, "summarize streaks")
	}

	summary := &Summary{UserID: userID, Balance: balance, Counts: counts}
	if e.cache != nil {
		if err := e.cache.Set(ctx, *summary); err != nil {
			e.logger.WarnContext(ctx, "summary cache write failed",
				"user_id", userID, "error", err)
		}
	}
	return summary, nil
}

// ToggleSubscription applies an opt-in/opt-out signal. Both directions are
// idempotent; subscribing auto-creates the user.
func (e *Engine) ToggleSubscription(ctx context.Context, userID, routineName string, subscribe bool) error {
	if _, err := e.registry.Get(routineName); err != nil {
		return errors.Wrap(err, errors.CodeNotFound, "unknown routine")
	}

	if subscribe {
		if err := e.balances.EnsureUser(ctx, userID); err != nil {
			return errors.Wrap(err, errors.CodeUnavailable, "ensure user")
		}
		if err := e.subscriptions.Subscribe(ctx, userID, routineName); err != nil {
			return errors.Wrap(err, errors.CodeUnavailable, "subscribe")
		}
		return nil
	}
	if err := e.subscriptions.Unsubscribe(ctx, userID, routineName); err != nil {
		return errors.Wrap(err, errors.CodeUnavailable, "unsubscribe")
	}
	return nil
}

// Balance returns the user's current balance, creating the user if absent.
func (e *Engine) Balance(ctx context.Context, userID string) (float64, error) {
	balance, err := e.balances.Balance(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeUnavailable, "get balance")
	}
	return balance, nil
}

// SetBalance is the administrative absolute override. The punishment path
// never calls it.
func (e *Engine) SetBalance(ctx context.Context, userID string, value float64) error {
	if err := e.balances.SetBalance(ctx, userID, value); err != nil {
		return errors.Wrap(err, errors.CodeUnavailable, "set balance")
	}
	if e.cache != nil {
		if err := e.cache.Invalidate(ctx, userID); err != nil {
			e.logger.WarnContext(ctx, "summary cache invalidation failed",
				"user_id", userID, "error", err)
		}
	}
	return nil
}

// Users lists every known user id.
func (e *Engine) Users(ctx context.Context) ([]string, error) {
	users, err := e.balances.Users(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnavailable, "list users")
	}
	return users, nil
}

// EvaluateDeadline runs one firing for a routine at the scheduled instant:
// every current subscriber's completion rule is evaluated against a
// single-query evidence snapshot, unmet subscribers are punished by exactly
// the routine's penalty, and one aggregate result goes to the notifier.
//
// An empty subscriber list terminates with no side effects and no
// notification. Cancellation is honored between subscribers, never in the
// middle of one, so a shutdown can't punish partially; subscribers left
// unevaluated are picked up by the next occurrence.
func (e *Engine) EvaluateDeadline(ctx context.Context, routineName string, firedAt time.Time) error {
	rt, err := e.registry.Get(routineName)
	if err != nil {
		return errors.Wrap(err, errors.CodeNotFound, "unknown routine")
	}

	start := time.Now()
	subscribers, err := e.subscriptions.Subscribers(ctx, rt.Name)
	if err != nil {
		return errors.Wrap(err, errors.CodeUnavailable, "list subscribers")
	}
	if len(subscribers) == 0 {
		return nil
	}

	window := rt.Rule.Window(firedAt, e.loc)
	missed := make([]string, 0, len(subscribers))
	for _, userID := range subscribers {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "evaluation cancelled")
		}

		events, err := e.streaks.EventsFor(ctx, userID, rt.Name, window)
		if err != nil {
			return errors.Wrap(err, errors.CodeUnavailable, "load evidence")
		}
		if rt.Rule.Satisfied(events, e.loc) {
			continue
		}

		if _, err := e.balances.Adjust(ctx, userID, rt.Penalty); err != nil {
			return errors.Wrap(err, errors.CodeUnavailable, "apply penalty")
		}
		e.metrics.RecordPunishment(rt.Name)
		if e.cache != nil {
			if err := e.cache.Invalidate(ctx, userID); err != nil {
				e.logger.WarnContext(ctx, "summary cache invalidation failed",
					"user_id", userID, "error", err)
			}
		}
		missed = append(missed, userID)
	}
	sort.Strings(missed)

	e.metrics.RecordFiring(rt.Name, time.Since(start).Seconds())
	e.logger.InfoContext(ctx, "deadline fired",
		"routine", rt.Name, "fired_at", firedAt, "missed", len(missed))

	if e.notifier != nil {
		e.notifier.Notify(ctx, FiringResult{Routine: rt.Name, FiredAt: firedAt, Missed: missed})
	}
	return nil
}

// IsNotFound reports whether err stems from an unknown routine or record.
func IsNotFound(err error) bool {
	return stderrors.Is(err, sentinel.ErrNotFound) || errors.HasCode(err, errors.CodeNotFound)
}
