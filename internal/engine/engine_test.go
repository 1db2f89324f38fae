package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"regimen/internal/ledger"
	"regimen/internal/routine"
	streakstore "regimen/internal/streak/store"
	"regimen/internal/subscription"
	"regimen/pkg/errors"
	"regimen/pkg/requestcontext"
)

type capturedNotifier struct {
	results []FiringResult
}

func (n *capturedNotifier) Notify(_ context.Context, result FiringResult) {
	n.results = append(n.results, result)
}

type EngineSuite struct {
	suite.Suite
	engine   *Engine
	streaks  *streakstore.InMemory
	subs     *subscription.InMemory
	balances *ledger.InMemory
	notifier *capturedNotifier
	ctx      context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	registry, err := routine.NewRegistry(routine.Catalog()...)
	s.Require().NoError(err)

	s.streaks = streakstore.NewInMemory(time.UTC)
	s.subs = subscription.NewInMemory()
	s.balances = ledger.NewInMemory()
	s.notifier = &capturedNotifier{}
	s.ctx = context.Background()

	s.engine, err = New(registry, s.streaks, s.subs, s.balances, time.UTC,
		WithNotifier(s.notifier))
	s.Require().NoError(err)
}

// The test week is Monday 2025-06-02 through Sunday 2025-06-08.
func (s *EngineSuite) at(d, hh, mm int) time.Time {
	return time.Date(2025, time.June, d, hh, mm, 0, 0, time.UTC)
}

func (s *EngineSuite) subscribe(userID string, routines ...string) {
	for _, name := range routines {
		s.Require().NoError(s.engine.ToggleSubscription(s.ctx, userID, name, true))
	}
}

func (s *EngineSuite) submit(userID, routineName string, ts time.Time) {
	_, err := s.engine.SubmitEvidence(s.ctx, userID, routineName, ts)
	s.Require().NoError(err)
}

func (s *EngineSuite) balance(userID string) float64 {
	balance, err := s.engine.Balance(s.ctx, userID)
	s.Require().NoError(err)
	return balance
}

func (s *EngineSuite) TestSubmitEvidenceUnknownRoutine() {
	_, err := s.engine.SubmitEvidence(s.ctx, "u1", "yoga", s.at(4, 9, 0))
	s.Require().Error(err)
	s.True(IsNotFound(err))
}

func (s *EngineSuite) TestSubmitEvidenceReturnsUpdatedSummary() {
	s.subscribe("u1", "food")

	ctx := requestcontext.WithTime(s.ctx, s.at(4, 9, 1))
	summary, err := s.engine.SubmitEvidence(ctx, "u1", "food", s.at(4, 9, 0))
	s.Require().NoError(err)
	s.Equal("u1", summary.UserID)
	s.Equal(0.0, summary.Balance)
	s.Equal(map[string]int{"food": 1}, summary.Counts)
}

func (s *EngineSuite) TestWeeklySummaryZeroFillsSubscribedRoutines() {
	s.subscribe("u1", "gym", "food")
	s.submit("u1", "gym", s.at(3, 9, 0))

	ctx := requestcontext.WithTime(s.ctx, s.at(4, 12, 0))
	summary, err := s.engine.WeeklySummary(ctx, "u1")
	s.Require().NoError(err)
	s.Equal(map[string]int{"gym": 1, "food": 0}, summary.Counts)
}

func (s *EngineSuite) TestWeeklySummaryExcludesUnsubscribedRoutines() {
	s.subscribe("u1", "gym")
	// Evidence for a routine the user is not subscribed to is stored but not
	// reported.
	s.submit("u1", "food", s.at(3, 9, 0))

	ctx := requestcontext.WithTime(s.ctx, s.at(4, 12, 0))
	summary, err := s.engine.WeeklySummary(ctx, "u1")
	s.Require().NoError(err)
	s.Equal(map[string]int{"gym": 0}, summary.Counts)
}

func (s *EngineSuite) TestWeeklySummarySameDaySubmissionsCollapse() {
	s.subscribe("u1", "gym")
	s.submit("u1", "gym", s.at(3, 8, 0))
	s.submit("u1", "gym", s.at(3, 12, 0))
	s.submit("u1", "gym", s.at(3, 20, 0))

	ctx := requestcontext.WithTime(s.ctx, s.at(4, 12, 0))
	summary, err := s.engine.WeeklySummary(ctx, "u1")
	s.Require().NoError(err)
	s.Equal(1, summary.Counts["gym"])
}

func (s *EngineSuite) TestToggleSubscription() {
	s.Run("unknown routine is rejected", func() {
		err := s.engine.ToggleSubscription(s.ctx, "u1", "yoga", true)
		s.True(errors.HasCode(err, errors.CodeNotFound))
	})

	s.Run("subscribing creates the user", func() {
		s.Require().NoError(s.engine.ToggleSubscription(s.ctx, "newcomer", "gym", true))
		users, err := s.engine.Users(s.ctx)
		s.Require().NoError(err)
		s.Contains(users, "newcomer")
	})

	s.Run("both directions are idempotent", func() {
		s.Require().NoError(s.engine.ToggleSubscription(s.ctx, "u1", "gym", true))
		s.Require().NoError(s.engine.ToggleSubscription(s.ctx, "u1", "gym", true))
		s.Require().NoError(s.engine.ToggleSubscription(s.ctx, "u1", "gym", false))
		s.Require().NoError(s.engine.ToggleSubscription(s.ctx, "u1", "gym", false))

		subs, err := s.subs.SubscriptionsOf(s.ctx, "u1")
		s.Require().NoError(err)
		s.Empty(subs)
	})
}

func (s *EngineSuite) TestEvaluateDeadlineDailyMiss() {
	// screentime, penalty -10, daily 23:59: a subscriber with no evidence on
	// the firing day is debited exactly once.
	s.subscribe("u1", "screentime")
	s.submit("u1", "screentime", s.at(3, 22, 0)) // yesterday

	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "screentime", s.at(4, 23, 59)))

	s.Equal(-10.0, s.balance("u1"))
	s.Require().Len(s.notifier.results, 1)
	s.Equal(FiringResult{Routine: "screentime", FiredAt: s.at(4, 23, 59), Missed: []string{"u1"}}, s.notifier.results[0])
}

func (s *EngineSuite) TestEvaluateDeadlineDailySatisfied() {
	s.subscribe("u1", "food")
	s.submit("u1", "food", s.at(4, 12, 0))

	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "food", s.at(4, 23, 59)))

	s.Equal(0.0, s.balance("u1"))
	s.Require().Len(s.notifier.results, 1)
	s.Empty(s.notifier.results[0].Missed)
}

func (s *EngineSuite) TestEvaluateDeadlineWeeklyQuota() {
	// gym needs five distinct days; firing is Sunday 23:59.
	firedAt := s.at(8, 23, 59)

	s.subscribe("made-it", "gym")
	for _, d := range []int{2, 3, 4, 5, 6} {
		s.submit("made-it", "gym", s.at(d, 9, 0))
	}

	s.subscribe("fell-short", "gym")
	// Six submissions, but only four distinct days.
	for _, hhmm := range [][2]int{{8, 0}, {20, 0}} {
		for _, d := range []int{2, 3, 4} {
			s.submit("fell-short", "gym", s.at(d, hhmm[0], hhmm[1]))
		}
	}
	s.submit("fell-short", "gym", s.at(5, 9, 0))

	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "gym", firedAt))

	s.Equal(0.0, s.balance("made-it"))
	s.Equal(-10.0, s.balance("fell-short"))
	s.Require().Len(s.notifier.results, 1)
	s.Equal([]string{"fell-short"}, s.notifier.results[0].Missed)
}

func (s *EngineSuite) TestEvaluateDeadlineWeeklyPresence() {
	s.subscribe("u1", "socials")
	s.subscribe("u2", "socials")
	s.submit("u1", "socials", s.at(6, 15, 0))

	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "socials", s.at(8, 23, 59)))

	s.Equal(0.0, s.balance("u1"))
	s.Equal(-15.0, s.balance("u2"))
}

func (s *EngineSuite) TestEvaluateDeadlineIgnoresUnsubscribed() {
	// Evidence or not, a user who never opted in is invisible to the firing.
	s.Require().NoError(s.engine.RegisterUser(s.ctx, "bystander"))

	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "food", s.at(4, 23, 59)))

	s.Equal(0.0, s.balance("bystander"))
	s.Empty(s.notifier.results, "no subscribers means no notification")
}

func (s *EngineSuite) TestEvaluateDeadlineUsesCurrentSubscribers() {
	// Opt-out before the firing exempts the user; opt-in after a firing only
	// affects the next one.
	s.subscribe("quitter", "food")
	s.Require().NoError(s.engine.ToggleSubscription(s.ctx, "quitter", "food", false))

	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "food", s.at(4, 23, 59)))
	s.Equal(0.0, s.balance("quitter"))

	s.subscribe("joiner", "food")
	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "food", s.at(5, 23, 59)))
	s.Equal(-5.0, s.balance("joiner"))
}

func (s *EngineSuite) TestEvaluateDeadlineEvidenceOutsideWindow() {
	// Last week's diligence does not carry into this week's firing.
	s.subscribe("u1", "socials")
	s.submit("u1", "socials", s.at(1, 12, 0)) // Sunday of the previous week

	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "socials", s.at(8, 23, 59)))

	s.Equal(-15.0, s.balance("u1"))
}

func (s *EngineSuite) TestEvaluateDeadlineMissedListIsOrdered() {
	for _, u := range []string{"zoe", "adam", "mia"} {
		s.subscribe(u, "food")
	}

	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "food", s.at(4, 23, 59)))

	s.Require().Len(s.notifier.results, 1)
	s.Equal([]string{"adam", "mia", "zoe"}, s.notifier.results[0].Missed)
}

func (s *EngineSuite) TestEvaluateDeadlineUnknownRoutine() {
	err := s.engine.EvaluateDeadline(s.ctx, "yoga", s.at(4, 23, 59))
	s.True(errors.HasCode(err, errors.CodeNotFound))
}

func (s *EngineSuite) TestEvaluateDeadlineRepeatFiringDebitsAgain() {
	// At-most-once per occurrence is the scheduler's claim, not the engine's:
	// each call here is a distinct occurrence and debits independently.
	s.subscribe("u1", "food")

	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "food", s.at(4, 23, 59)))
	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "food", s.at(5, 23, 59)))

	s.Equal(-10.0, s.balance("u1"))
}

func (s *EngineSuite) TestSetBalanceOverridesPunishments() {
	s.subscribe("u1", "food")
	s.Require().NoError(s.engine.EvaluateDeadline(s.ctx, "food", s.at(4, 23, 59)))
	s.Equal(-5.0, s.balance("u1"))

	s.Require().NoError(s.engine.SetBalance(s.ctx, "u1", 100))
	s.Equal(100.0, s.balance("u1"))
}
