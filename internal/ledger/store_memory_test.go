package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemoryLedgerSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryLedgerSuite(t *testing.T) {
	suite.Run(t, new(InMemoryLedgerSuite))
}

func (s *InMemoryLedgerSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryLedgerSuite) TestBalanceCreatesUserAtZero() {
	balance, err := s.store.Balance(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(0.0, balance)

	users, err := s.store.Users(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"u1"}, users)
}

func (s *InMemoryLedgerSuite) TestEnsureUserIsIdempotent() {
	s.Require().NoError(s.store.EnsureUser(s.ctx, "u1"))
	_, err := s.store.Adjust(s.ctx, "u1", -10)
	s.Require().NoError(err)

	// A second ensure must not reset the balance.
	s.Require().NoError(s.store.EnsureUser(s.ctx, "u1"))
	balance, err := s.store.Balance(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(-10.0, balance)
}

func (s *InMemoryLedgerSuite) TestAdjustReturnsNewBalance() {
	balance, err := s.store.Adjust(s.ctx, "u1", -10)
	s.Require().NoError(err)
	s.Equal(-10.0, balance)

	balance, err = s.store.Adjust(s.ctx, "u1", 25)
	s.Require().NoError(err)
	s.Equal(15.0, balance)
}

func (s *InMemoryLedgerSuite) TestConcurrentAdjustsSumExactly() {
	// N concurrent deltas must land as initial + sum(deltas): no lost updates.
	s.Require().NoError(s.store.SetBalance(s.ctx, "u1", 100))

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Adjust(s.ctx, "u1", -1)
			s.NoError(err)
		}()
	}
	wg.Wait()

	balance, err := s.store.Balance(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(0.0, balance)
}

func (s *InMemoryLedgerSuite) TestSetBalanceOverwrites() {
	_, err := s.store.Adjust(s.ctx, "u1", -42)
	s.Require().NoError(err)

	s.Require().NoError(s.store.SetBalance(s.ctx, "u1", 7.5))

	balance, err := s.store.Balance(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(7.5, balance)
}

func (s *InMemoryLedgerSuite) TestUsersAreOrdered() {
	s.Require().NoError(s.store.EnsureUser(s.ctx, "charlie"))
	s.Require().NoError(s.store.EnsureUser(s.ctx, "alice"))
	s.Require().NoError(s.store.EnsureUser(s.ctx, "bob"))

	users, err := s.store.Users(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob", "charlie"}, users)
}
