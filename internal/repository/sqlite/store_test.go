package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/hyeon/vocaflash/internal/db"
	"github.com/hyeon/vocaflash/internal/models"
	"github.com/hyeon/vocaflash/internal/progress"
	"github.com/hyeon/vocaflash/internal/repository/sqlite"
	"github.com/hyeon/vocaflash/internal/testutil"
)

type StoreSuite struct {
	suite.Suite
	db     *db.DB
	userID string
	store  *sqlite.Store
}

func (s *StoreSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.userID = testutil.CreateTestUser(s.T(), s.db, "learner")
	s.store = sqlite.NewStore(s.db, s.userID)
}

func (s *StoreSuite) TestProgressRoundTrip() {
	ctx := context.Background()

	// The seeded row carries the schema defaults.
	prog, err := s.store.Progress(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(prog)
	s.Equal(1, prog.Level)
	s.Equal(20, prog.DailyGoal)
	s.Equal([]int{1}, prog.UnlockedLevels)
	s.Empty(prog.LastStudyDate)

	updated := models.Progress{
		TotalWordsLearned: 12,
		CurrentStreak:     3,
		LongestStreak:     5,
		LastStudyDate:     "2024-01-05",
		XP:                150,
		Level:             2,
		DailyGoal:         30,
		TodayWordsStudied: 4,
		UnlockedLevels:    []int{1, 2},
	}
	s.Require().NoError(s.store.SaveProgress(ctx, updated))

	prog, err = s.store.Progress(ctx)
	s.Require().NoError(err)
	s.Equal(&updated, prog)
}

func (s *StoreSuite) TestProgressAbsentUser() {
	other := sqlite.NewStore(s.db, "no-such-user")
	prog, err := other.Progress(context.Background())
	s.Require().NoError(err)
	s.Nil(prog)
}

func (s *StoreSuite) TestReviewUpsert() {
	ctx := context.Background()

	rec, err := s.store.Review(ctx, 42)
	s.Require().NoError(err)
	s.Nil(rec, "unseen word has no record")

	first := models.ReviewRecord{
		WordID: 42, Box: 2, LastReview: "2024-01-01", NextReview: "2024-01-03", CorrectCount: 1,
	}
	s.Require().NoError(s.store.SaveReview(ctx, first))

	second := first
	second.Box = 3
	second.NextReview = "2024-01-07"
	second.CorrectCount = 2
	s.Require().NoError(s.store.SaveReview(ctx, second))

	rec, err = s.store.Review(ctx, 42)
	s.Require().NoError(err)
	s.Require().NotNil(rec)
	s.Equal(second, *rec, "second save overwrites, not duplicates")

	records, err := s.store.Reviews(ctx)
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *StoreSuite) TestReviewsAreScopedPerUser() {
	ctx := context.Background()
	otherID := testutil.CreateTestUser(s.T(), s.db, "other")
	other := sqlite.NewStore(s.db, otherID)

	s.Require().NoError(s.store.SaveReview(ctx, models.ReviewRecord{WordID: 1, Box: 2, LastReview: "2024-01-01", NextReview: "2024-01-03"}))
	s.Require().NoError(other.SaveReview(ctx, models.ReviewRecord{WordID: 1, Box: 5, LastReview: "2024-01-01", NextReview: "2024-01-15"}))

	mine, err := s.store.Reviews(ctx)
	s.Require().NoError(err)
	s.Equal(2, mine[1].Box)

	theirs, err := other.Reviews(ctx)
	s.Require().NoError(err)
	s.Equal(5, theirs[1].Box)
}

func (s *StoreSuite) TestInsertAchievementOnce() {
	ctx := context.Background()

	inserted, err := s.store.InsertAchievement(ctx, "first_word", "2024-01-01T10:00:00Z")
	s.Require().NoError(err)
	s.True(inserted)

	inserted, err = s.store.InsertAchievement(ctx, "first_word", "2024-01-02T10:00:00Z")
	s.Require().NoError(err)
	s.False(inserted, "duplicate unlock is ignored")

	achievements, err := s.store.Achievements(ctx)
	s.Require().NoError(err)
	s.Require().Len(achievements, 1)
	s.Equal("first_word", achievements[0].ID)
	s.Equal("2024-01-01T10:00:00Z", achievements[0].UnlockedAt, "the original unlock time survives")
}

func (s *StoreSuite) TestSessions() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.AddSession(ctx, models.StudySession{
			Date: "2024-01-0" + string(rune('1'+i)), WordsStudied: 10 + i, Mode: "normal",
		}))
	}

	sessions, err := s.store.Sessions(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	s.Equal(12, sessions[0].WordsStudied, "newest session first")
}

func (s *StoreSuite) TestAtomicallyRollsBack() {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.store.Atomically(ctx, func(tx progress.Store) error {
		s.Require().NoError(tx.SaveReview(ctx, models.ReviewRecord{WordID: 9, Box: 2, LastReview: "2024-01-01", NextReview: "2024-01-03"}))
		if _, err := tx.InsertAchievement(ctx, "first_word", "2024-01-01T00:00:00Z"); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	records, err := s.store.Reviews(ctx)
	s.Require().NoError(err)
	s.Empty(records, "failed transaction leaves no review rows")

	achievements, err := s.store.Achievements(ctx)
	s.Require().NoError(err)
	s.Empty(achievements, "failed transaction leaves no achievement rows")
}

func (s *StoreSuite) TestAtomicallyNestedJoinsTransaction() {
	ctx := context.Background()

	err := s.store.Atomically(ctx, func(tx progress.Store) error {
		return tx.Atomically(ctx, func(inner progress.Store) error {
			return inner.SaveReview(ctx, models.ReviewRecord{WordID: 3, Box: 1, LastReview: "2024-01-01", NextReview: "2024-01-01"})
		})
	})
	s.Require().NoError(err)

	rec, err := s.store.Review(ctx, 3)
	s.Require().NoError(err)
	s.NotNil(rec)
}

func (s *StoreSuite) TestReset() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveReview(ctx, models.ReviewRecord{WordID: 1, Box: 3, LastReview: "2024-01-01", NextReview: "2024-01-05"}))
	_, err := s.store.InsertAchievement(ctx, "ten_words", "2024-01-01T00:00:00Z")
	s.Require().NoError(err)
	s.Require().NoError(s.store.AddSession(ctx, models.StudySession{Date: "2024-01-01"}))

	s.Require().NoError(s.store.Reset(ctx))

	records, err := s.store.Reviews(ctx)
	s.Require().NoError(err)
	s.Empty(records)

	achievements, err := s.store.Achievements(ctx)
	s.Require().NoError(err)
	s.Empty(achievements)

	sessions, err := s.store.Sessions(ctx, 10)
	s.Require().NoError(err)
	s.Empty(sessions)

	prog, err := s.store.Progress(ctx)
	s.Require().NoError(err)
	s.Nil(prog, "reset removes the progress row; the engine recreates the default")
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}
