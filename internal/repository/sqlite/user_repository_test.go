package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/hyeon/vocaflash/internal/db"
	"github.com/hyeon/vocaflash/internal/repository/sqlite"
	"github.com/hyeon/vocaflash/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo *sqlite.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TestCreateSeedsProgress() {
	ctx := context.Background()
	email := "kid@example.com"

	user, err := s.repo.Create(ctx, "hana", "hash", &email)
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.NotEmpty(user.ID)
	s.Equal("hana", user.Username)
	s.Require().NotNil(user.Email)
	s.Equal(email, *user.Email)
	s.False(user.CreatedAt.IsZero())

	// Registration is the only place a progress row is auto-created.
	store := sqlite.NewStore(s.db, user.ID)
	prog, err := store.Progress(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(prog)
	s.Equal(1, prog.Level)
	s.Equal([]int{1}, prog.UnlockedLevels)
}

func (s *UserRepositorySuite) TestCreateWithoutEmail() {
	user, err := s.repo.Create(context.Background(), "minsu", "hash", nil)
	s.Require().NoError(err)
	s.Nil(user.Email)
}

func (s *UserRepositorySuite) TestDuplicateUsernameFails() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, "hana", "hash", nil)
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, "hana", "hash2", nil)
	s.Error(err, "username is unique")
}

func (s *UserRepositorySuite) TestLookups() {
	ctx := context.Background()
	email := "kid@example.com"
	created, err := s.repo.Create(ctx, "hana", "hash", &email)
	s.Require().NoError(err)

	byID, err := s.repo.ByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(byID)
	s.Equal(created.ID, byID.ID)

	byName, err := s.repo.ByUsername(ctx, "hana")
	s.Require().NoError(err)
	s.Require().NotNil(byName)
	s.Equal(created.ID, byName.ID)

	byEmail, err := s.repo.ByEmail(ctx, email)
	s.Require().NoError(err)
	s.Require().NotNil(byEmail)
	s.Equal(created.ID, byEmail.ID)

	missing, err := s.repo.ByUsername(ctx, "nobody")
	s.Require().NoError(err)
	s.Nil(missing, "missing users come back nil, not as errors")
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
