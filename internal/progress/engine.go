// Package progress is the orchestration layer over the Leitner scheduler,
// the progression engine and the achievement evaluator. One Engine serves
// both deployments: the sync server instantiates it per request over a
// SQLite-backed store, the study CLI over a local JSON file store.
package progress

import (
	"context"
	"time"

	"github.com/hyeon/vocaflash/internal/achievement"
	"github.com/hyeon/vocaflash/internal/apperr"
	"github.com/hyeon/vocaflash/internal/dates"
	"github.com/hyeon/vocaflash/internal/leitner"
	"github.com/hyeon/vocaflash/internal/logger"
	"github.com/hyeon/vocaflash/internal/models"
	"github.com/hyeon/vocaflash/internal/progression"
)

// Engine composes the three core components behind one operation set.
type Engine struct {
	store Store
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source. Tests pin the calendar day with it.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine over the given store.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AnswerOutcome reports everything a single recorded answer changed.
type AnswerOutcome struct {
	Record      models.ReviewRecord          `json:"record"`
	XPGained    int                          `json:"xpGained"`
	NewBox      int                          `json:"newBox"`
	LevelUp     *int                         `json:"levelUp"`
	StreakReset bool                         `json:"streakReset"`
	Unlocked    []models.UnlockedAchievement `json:"unlocked"`
}

// RecordAnswer applies one answer to the scheduler and the progression state
// and evaluates achievements, all inside a single store transaction. The
// word ID is taken as-is: the catalog is never consulted, so answers against
// unknown IDs still create records and grant XP.
func (e *Engine) RecordAnswer(ctx context.Context, wordID int, correct bool) (*AnswerOutcome, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")
	today := dates.Today(e.now())

	var out AnswerOutcome
	err := e.store.Atomically(ctx, func(s Store) error {
		prog, err := s.Progress(ctx)
		if err != nil {
			return err
		}
		if prog == nil {
			return apperr.NewNotFoundError("progress", "current user")
		}

		rec, err := s.Review(ctx, wordID)
		if err != nil {
			return err
		}
		if rec == nil {
			seeded := leitner.NewRecord(wordID, today)
			rec = &seeded
		}
		updated := leitner.Apply(*rec, correct, today)
		if err := s.SaveReview(ctx, updated); err != nil {
			return err
		}

		res := progression.ApplyAnswer(prog, correct, today)
		if err := s.SaveProgress(ctx, *prog); err != nil {
			return err
		}

		unlocked, err := e.evaluate(ctx, s, *prog)
		if err != nil {
			return err
		}

		out = AnswerOutcome{
			Record:      updated,
			XPGained:    res.XPGained,
			NewBox:      updated.Box,
			StreakReset: res.StreakReset,
			Unlocked:    unlocked,
		}
		if res.LeveledUp {
			level := res.NewLevel
			out.LevelUp = &level
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("answer recorded: word_id=%d, correct=%t, box=%d, xp=+%d", wordID, correct, out.NewBox, out.XPGained)
	return &out, nil
}

// evaluate runs the rule set over current state and persists new unlocks.
func (e *Engine) evaluate(ctx context.Context, s Store, prog models.Progress) ([]models.UnlockedAchievement, error) {
	records, err := s.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.Achievements(ctx)
	if err != nil {
		return nil, err
	}
	unlocked := make(map[string]bool, len(existing))
	for _, a := range existing {
		unlocked[a.ID] = true
	}

	at := e.now().UTC().Format(time.RFC3339)
	var earned []models.UnlockedAchievement
	for _, a := range achievement.Evaluate(prog, leitner.Stats(records), unlocked) {
		inserted, err := s.InsertAchievement(ctx, a.ID, at)
		if err != nil {
			return nil, err
		}
		if inserted {
			earned = append(earned, models.UnlockedAchievement{Achievement: a, UnlockedAt: at})
		}
	}
	return earned, nil
}

// CheckAchievements evaluates the derivable rules against current state and
// records anything newly earned.
func (e *Engine) CheckAchievements(ctx context.Context) ([]models.UnlockedAchievement, error) {
	var earned []models.UnlockedAchievement
	err := e.store.Atomically(ctx, func(s Store) error {
		prog, err := s.Progress(ctx)
		if err != nil {
			return err
		}
		if prog == nil {
			return apperr.NewNotFoundError("progress", "current user")
		}
		earned, err = e.evaluate(ctx, s, *prog)
		return err
	})
	if err != nil {
		return nil, err
	}
	return earned, nil
}

// Unlock records a caller-signaled achievement (quiz_perfect and friends,
// which are not derivable from stored state). Unknown IDs are ignored and
// unlocking twice is a no-op; both return (nil, nil).
func (e *Engine) Unlock(ctx context.Context, id string) (*models.UnlockedAchievement, error) {
	badge, ok := achievement.ByID(id)
	if !ok {
		return nil, nil
	}
	at := e.now().UTC().Format(time.RFC3339)
	inserted, err := e.store.InsertAchievement(ctx, id, at)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, nil
	}
	return &models.UnlockedAchievement{Achievement: badge, UnlockedAt: at}, nil
}

// Progress returns the user's progress state, or nil when none exists.
func (e *Engine) Progress(ctx context.Context) (*models.Progress, error) {
	return e.store.Progress(ctx)
}

// Reviews returns the full word-to-record map.
func (e *Engine) Reviews(ctx context.Context) (map[int]models.ReviewRecord, error) {
	return e.store.Reviews(ctx)
}

// Achievements returns every unlocked badge.
func (e *Engine) Achievements(ctx context.Context) ([]models.UnlockedAchievement, error) {
	rows, err := e.store.Achievements(ctx)
	if err != nil {
		return nil, err
	}
	// Stores persist only the id and timestamp; fill in the catalog entry.
	for i := range rows {
		if a, ok := achievement.ByID(rows[i].ID); ok {
			rows[i].Achievement = a
		}
	}
	return rows, nil
}

// DueWords filters the catalog down to words due today, including words
// never studied.
func (e *Engine) DueWords(ctx context.Context, words []models.Word) ([]models.Word, error) {
	records, err := e.store.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	return leitner.DueWords(records, words, dates.Today(e.now())), nil
}

// WordsByBox returns the catalog words sitting in one Leitner box.
func (e *Engine) WordsByBox(ctx context.Context, words []models.Word, box int) ([]models.Word, error) {
	records, err := e.store.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	return leitner.WordsByBox(records, words, box), nil
}

// WrongWords returns ever-missed, not-yet-mastered catalog words.
func (e *Engine) WrongWords(ctx context.Context, words []models.Word) ([]models.Word, error) {
	records, err := e.store.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	return leitner.WrongWords(records, words), nil
}

// StatsView combines scheduler stats with recent session history.
type StatsView struct {
	models.LeitnerStats
	RecentSessions []models.StudySession `json:"recentSessions"`
}

const recentSessionLimit = 30

// Stats is the read-only projection backing the stats screen.
func (e *Engine) Stats(ctx context.Context) (*StatsView, error) {
	records, err := e.store.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := e.store.Sessions(ctx, recentSessionLimit)
	if err != nil {
		return nil, err
	}
	return &StatsView{LeitnerStats: leitner.Stats(records), RecentSessions: sessions}, nil
}

// SetDailyGoal updates the daily goal, leaving all other fields alone.
func (e *Engine) SetDailyGoal(ctx context.Context, goal int) error {
	return e.store.Atomically(ctx, func(s Store) error {
		prog, err := s.Progress(ctx)
		if err != nil {
			return err
		}
		if prog == nil {
			return apperr.NewNotFoundError("progress", "current user")
		}
		if err := progression.SetDailyGoal(prog, goal); err != nil {
			return err
		}
		return s.SaveProgress(ctx, *prog)
	})
}

// UpdateProgress applies a partial progress update, field by field,
// last write wins. Unset fields keep their stored values.
func (e *Engine) UpdateProgress(ctx context.Context, patch models.ProgressPatch) error {
	return e.store.Atomically(ctx, func(s Store) error {
		return applyPatch(ctx, s, patch)
	})
}

func applyPatch(ctx context.Context, s Store, patch models.ProgressPatch) error {
	prog, err := s.Progress(ctx)
	if err != nil {
		return err
	}
	if prog == nil {
		return apperr.NewNotFoundError("progress", "current user")
	}
	if patch.TotalWordsLearned != nil {
		prog.TotalWordsLearned = *patch.TotalWordsLearned
	}
	if patch.CurrentStreak != nil {
		prog.CurrentStreak = *patch.CurrentStreak
	}
	if patch.LongestStreak != nil {
		prog.LongestStreak = *patch.LongestStreak
	}
	if patch.LastStudyDate != nil {
		prog.LastStudyDate = *patch.LastStudyDate
	}
	if patch.XP != nil {
		prog.XP = *patch.XP
	}
	if patch.Level != nil {
		prog.Level = *patch.Level
	}
	if patch.DailyGoal != nil {
		prog.DailyGoal = *patch.DailyGoal
	}
	if patch.TodayWordsStudied != nil {
		prog.TodayWordsStudied = *patch.TodayWordsStudied
	}
	if patch.UnlockedLevels != nil {
		prog.UnlockedLevels = patch.UnlockedLevels
	}
	return s.SaveProgress(ctx, *prog)
}

// SyncPayload is the cross-device restore shape: any combination of a
// partial progress state, a leitner map and an achievement id list.
type SyncPayload struct {
	Progress     *models.ProgressPatch        `json:"progress"`
	LeitnerData  map[int]models.ReviewRecord  `json:"leitnerData"`
	Achievements []models.UnlockedAchievement `json:"achievements"`
}

// Sync bulk-upserts externally supplied state. No merging: supplied fields
// overwrite, everything else is left untouched.
func (e *Engine) Sync(ctx context.Context, payload SyncPayload) error {
	log := logger.FromContext(ctx).WithPrefix("progress")

	return e.store.Atomically(ctx, func(s Store) error {
		if payload.Progress != nil {
			if err := applyPatch(ctx, s, *payload.Progress); err != nil {
				return err
			}
		}
		for wordID, rec := range payload.LeitnerData {
			rec.WordID = wordID
			if err := s.SaveReview(ctx, rec); err != nil {
				return err
			}
		}
		at := e.now().UTC().Format(time.RFC3339)
		for _, a := range payload.Achievements {
			if a.ID == "" {
				continue
			}
			if _, err := s.InsertAchievement(ctx, a.ID, at); err != nil {
				return err
			}
		}
		log.Debug("sync applied: progress=%t, reviews=%d, achievements=%d",
			payload.Progress != nil, len(payload.LeitnerData), len(payload.Achievements))
		return nil
	})
}

// AddSession appends a study-session audit entry stamped with today's date.
func (e *Engine) AddSession(ctx context.Context, s models.StudySession) error {
	s.Date = dates.Today(e.now())
	return e.store.AddSession(ctx, s)
}

// Sessions returns recent session history, newest first.
func (e *Engine) Sessions(ctx context.Context, limit int) ([]models.StudySession, error) {
	return e.store.Sessions(ctx, limit)
}

// Reset wipes all learning state and recreates the default progress.
func (e *Engine) Reset(ctx context.Context) error {
	return e.store.Atomically(ctx, func(s Store) error {
		if err := s.Reset(ctx); err != nil {
			return err
		}
		return s.SaveProgress(ctx, progression.Default())
	})
}
