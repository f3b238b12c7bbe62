package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"hask/pkg/platform/sentinel"
)

type ProfileStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestProfileStoreSuite(t *testing.T) {
	suite.Run(t, new(ProfileStoreSuite))
}

func (s *ProfileStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *ProfileStoreSuite) seed(username, handle string) *Profile {
	p, created, err := s.store.CreateIfHandleAvailable(s.ctx, &Profile{Username: username, Handle: handle})
	s.Require().NoError(err)
	s.Require().True(created)
	return p
}

func (s *ProfileStoreSuite) TestCreateIsIdempotentPerUsername() {
	first := s.seed("alice", "@alice")

	again, created, err := s.store.CreateIfHandleAvailable(s.ctx, &Profile{
		Username: "alice",
		Handle:   "@alice",
		Name:     "Different Name",
	})
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.Username, again.Username)
	s.Empty(again.Name, "replayed registration must not mutate the stored profile")
}

func (s *ProfileStoreSuite) TestHandleUniquenessAcrossUsernames() {
	s.seed("alice", "@alice")

	_, _, err := s.store.CreateIfHandleAvailable(s.ctx, &Profile{Username: "bob", Handle: "@alice"})
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)

	_, err = s.store.FindByUsername(s.ctx, "bob")
	s.ErrorIs(err, sentinel.ErrNotFound, "a rejected registration must leave no partial record")
}

func (s *ProfileStoreSuite) TestHandleConflictWinsOverUsernameReplay() {
	s.seed("alice", "@alice")
	s.seed("bob", "@bob")

	// Replaying alice's registration with bob's handle is a conflict, not a
	// silent idempotent read.
	_, _, err := s.store.CreateIfHandleAvailable(s.ctx, &Profile{Username: "alice", Handle: "@bob"})
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *ProfileStoreSuite) TestFindByUsername() {
	s.seed("alice", "@alice")

	p, err := s.store.FindByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("@alice", p.Handle)

	_, err = s.store.FindByUsername(s.ctx, "ghost")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ProfileStoreSuite) TestFindReturnsACopy() {
	s.seed("alice", "@alice")

	p, err := s.store.FindByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	p.Handle = "@mutated"

	fresh, err := s.store.FindByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("@alice", fresh.Handle)
}

func (s *ProfileStoreSuite) TestListPreservesRegistrationOrder() {
	s.seed("carol", "@carol")
	s.seed("alice", "@alice")
	s.seed("bob", "@bob")

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("carol", all[0].Username)
	s.Equal("alice", all[1].Username)
	s.Equal("bob", all[2].Username)
}

func (s *ProfileStoreSuite) TestExecuteBindAddressIndexesByAddress() {
	s.seed("alice", "@alice")

	_, err := s.store.Execute(s.ctx, "alice",
		func(p *Profile) error { return p.CanBindAddress("ADDR1") },
		func(p *Profile) { p.ApplyAddress("ADDR1", 10) },
	)
	s.Require().NoError(err)

	found, err := s.store.FindByAddress(s.ctx, "ADDR1")
	s.Require().NoError(err)
	s.Equal("alice", found.Username)
	s.Equal(uint64(10), found.Balance)
}

func (s *ProfileStoreSuite) TestExecuteValidationFailureLeavesStateUntouched() {
	s.seed("alice", "@alice")
	_, err := s.store.Execute(s.ctx, "alice",
		func(p *Profile) error { return p.CanBindAddress("ADDR1") },
		func(p *Profile) { p.ApplyAddress("ADDR1", 10) },
	)
	s.Require().NoError(err)

	_, err = s.store.Execute(s.ctx, "alice",
		func(p *Profile) error { return p.CanBindAddress("ADDR2") },
		func(p *Profile) { p.ApplyAddress("ADDR2", 10) },
	)
	s.Require().Error(err)

	p, err := s.store.FindByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("ADDR1", p.Address)
}

func (s *ProfileStoreSuite) TestExecuteUnknownUsername() {
	_, err := s.store.Execute(s.ctx, "ghost",
		func(*Profile) error { return nil },
		func(*Profile) {},
	)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ProfileStoreSuite) TestHandleExists() {
	s.seed("alice", "@alice")

	taken, err := s.store.HandleExists(s.ctx, "@alice")
	s.Require().NoError(err)
	s.True(taken)

	free, err := s.store.HandleExists(s.ctx, "@bob")
	s.Require().NoError(err)
	s.False(free)
}
