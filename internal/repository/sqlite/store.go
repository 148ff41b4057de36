// Package sqlite holds the relational adapters: the per-user progress store
// used by the engine, and the user repository used by auth.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/hyeon/vocaflash/internal/db"
	"github.com/hyeon/vocaflash/internal/logger"
	"github.com/hyeon/vocaflash/internal/models"
	"github.com/hyeon/vocaflash/internal/progress"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements progress.Store over SQLite for one user. Atomically
// wraps the callback in a database transaction, so the engine's composite
// operations land fully or not at all.
type Store struct {
	q      queryer
	db     *db.DB // nil inside a transaction
	userID string
}

// NewStore binds a store to the given user identity.
func NewStore(database *db.DB, userID string) *Store {
	return &Store{q: database, db: database, userID: userID}
}

func (s *Store) Atomically(ctx context.Context, fn func(progress.Store) error) error {
	if s.db == nil {
		// Already transactional; nested calls join the open transaction.
		return fn(s)
	}
	return db.Tx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&Store{q: tx, userID: s.userID})
	})
}

func (s *Store) Progress(ctx context.Context) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	var p models.Progress
	var lastStudyDate sql.NullString
	var unlockedLevels string
	err := s.q.QueryRowContext(ctx, `
SELECT total_words_learned, current_streak, longest_streak, last_study_date,
       xp, level, daily_goal, today_words_studied, unlocked_levels
FROM user_progress
WHERE user_id = ?
`, s.userID).Scan(&p.TotalWordsLearned, &p.CurrentStreak, &p.LongestStreak, &lastStudyDate,
		&p.XP, &p.Level, &p.DailyGoal, &p.TodayWordsStudied, &unlockedLevels)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress for user")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	if lastStudyDate.Valid {
		p.LastStudyDate = lastStudyDate.String
	}
	if err := json.Unmarshal([]byte(unlockedLevels), &p.UnlockedLevels); err != nil {
		log.Error("failed to decode unlocked levels: %v", err)
		return nil, err
	}
	return &p, nil
}

func (s *Store) SaveProgress(ctx context.Context, p models.Progress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	unlockedLevels, err := json.Marshal(p.UnlockedLevels)
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx, `
INSERT INTO user_progress (
    user_id, total_words_learned, current_streak, longest_streak, last_study_date,
    xp, level, daily_goal, today_words_studied, unlocked_levels
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    total_words_learned = excluded.total_words_learned,
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak,
    last_study_date = excluded.last_study_date,
    xp = excluded.xp,
    level = excluded.level,
    daily_goal = excluded.daily_goal,
    today_words_studied = excluded.today_words_studied,
    unlocked_levels = excluded.unlocked_levels,
    updated_at = CURRENT_TIMESTAMP
`, s.userID, p.TotalWordsLearned, p.CurrentStreak, p.LongestStreak, nullableDate(p.LastStudyDate),
		p.XP, p.Level, p.DailyGoal, p.TodayWordsStudied, string(unlockedLevels))
	if err != nil {
		log.Error("failed to save progress: %v", err)
	}
	return err
}

func (s *Store) Review(ctx context.Context, wordID int) (*models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	var rec models.ReviewRecord
	err := s.q.QueryRowContext(ctx, `
SELECT word_id, box, last_review, next_review, correct_count, wrong_count
FROM leitner_data
WHERE user_id = ? AND word_id = ?
`, s.userID, wordID).Scan(&rec.WordID, &rec.Box, &rec.LastReview, &rec.NextReview, &rec.CorrectCount, &rec.WrongCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review record: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (s *Store) SaveReview(ctx context.Context, rec models.ReviewRecord) error {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	_, err := s.q.ExecContext(ctx, `
INSERT INTO leitner_data (user_id, word_id, box, last_review, next_review, correct_count, wrong_count)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, word_id) DO UPDATE SET
    box = excluded.box,
    last_review = excluded.last_review,
    next_review = excluded.next_review,
    correct_count = excluded.correct_count,
    wrong_count = excluded.wrong_count,
    updated_at = CURRENT_TIMESTAMP
`, s.userID, rec.WordID, rec.Box, rec.LastReview, rec.NextReview, rec.CorrectCount, rec.WrongCount)
	if err != nil {
		log.Error("failed to save review record: word_id=%d: %v", rec.WordID, err)
	}
	return err
}

func (s *Store) Reviews(ctx context.Context) (map[int]models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	query, args, err := sqlBuilder.
		Select("word_id", "box", "last_review", "next_review", "correct_count", "wrong_count").
		From("leitner_data").
		Where(squirrel.Eq{"user_id": s.userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query review records: %v", err)
		return nil, err
	}
	defer rows.Close()

	records := make(map[int]models.ReviewRecord)
	for rows.Next() {
		var rec models.ReviewRecord
		if err := rows.Scan(&rec.WordID, &rec.Box, &rec.LastReview, &rec.NextReview, &rec.CorrectCount, &rec.WrongCount); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		records[rec.WordID] = rec
	}
	return records, rows.Err()
}

func (s *Store) Achievements(ctx context.Context) ([]models.UnlockedAchievement, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	query, args, err := sqlBuilder.
		Select("achievement_id", "unlocked_at").
		From("user_achievements").
		Where(squirrel.Eq{"user_id": s.userID}).
		OrderBy("unlocked_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query achievements: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.UnlockedAchievement
	for rows.Next() {
		var a models.UnlockedAchievement
		if err := rows.Scan(&a.ID, &a.UnlockedAt); err != nil {
			log.Error("failed to scan achievement row: %v", err)
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) InsertAchievement(ctx context.Context, id string, unlockedAt string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	res, err := s.q.ExecContext(ctx, `
INSERT OR IGNORE INTO user_achievements (user_id, achievement_id, unlocked_at)
VALUES (?, ?, ?)
`, s.userID, id, unlockedAt)
	if err != nil {
		log.Error("failed to insert achievement %s: %v", id, err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) AddSession(ctx context.Context, sess models.StudySession) error {
	log := logger.FromContext(ctx).WithPrefix("progress_store")

	_, err := s.q.ExecContext(ctx, `
INSERT INTO study_sessions (user_id, date, words_studied, correct_count, wrong_count, duration, mode)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, s.userID, sess.Date, sess.WordsStudied, sess.CorrectCount, sess.WrongCount, sess.Duration, sess.Mode)
	if err != nil {
		log.Error("failed to insert study session: %v", err)
	}
	return err
}

func (s *Store) Sessions(ctx context.Context, limit int) ([]models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_store")
	if limit <= 0 {
		limit = 30
	}

	query, args, err := sqlBuilder.
		Select("date", "words_studied", "correct_count", "wrong_count", "duration", "mode").
		From("study_sessions").
		Where(squirrel.Eq{"user_id": s.userID}).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query study sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		var sess models.StudySession
		var mode sql.NullString
		if err := rows.Scan(&sess.Date, &sess.WordsStudied, &sess.CorrectCount, &sess.WrongCount, &sess.Duration, &mode); err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		if mode.Valid {
			sess.Mode = mode.String
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *Store) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("progress_store")
	log.Debug("resetting all learning state")

	for _, table := range []string{"leitner_data", "user_achievements", "study_sessions", "user_progress"} {
		if _, err := s.q.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, s.userID); err != nil {
			log.Error("failed to reset %s: %v", table, err)
			return err
		}
	}
	return nil
}

func nullableDate(day string) any {
	if day == "" {
		return nil
	}
	return day
}
