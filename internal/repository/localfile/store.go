// Package localfile implements progress.Store over a single JSON file,
// mirroring the client's local persistent storage. One file holds one
// learner's complete state; writes go through a temp-file rename so a
// crash never leaves a half-written state behind.
package localfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hyeon/vocaflash/internal/models"
	"github.com/hyeon/vocaflash/internal/progress"
)

const fileName = "vocaflash.json"

type state struct {
	Progress     *models.Progress            `json:"progress"`
	Reviews      map[int]models.ReviewRecord `json:"reviews"`
	Achievements []unlockRow                 `json:"achievements"`
	Sessions     []models.StudySession       `json:"sessions"`
}

type unlockRow struct {
	ID         string `json:"id"`
	UnlockedAt string `json:"unlockedAt"`
}

// Store is the file-backed adapter. A mutex serializes access: the client
// deployment is single-writer by design and the lock simply enforces it.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(dir, fileName)}, nil
}

func (s *Store) load() (*state, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &state{Reviews: map[int]models.ReviewRecord{}}, nil
	}
	if err != nil {
		return nil, err
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	if st.Reviews == nil {
		st.Reviews = map[int]models.ReviewRecord{}
	}
	return &st, nil
}

func (s *Store) flush(st *state) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// mutate loads the state, runs fn on it and flushes once on success.
func (s *Store) mutate(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	return s.flush(st)
}

// view loads the state and runs fn read-only.
func (s *Store) view(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load()
	if err != nil {
		return err
	}
	return fn(st)
}

func (s *Store) Atomically(ctx context.Context, fn func(progress.Store) error) error {
	return s.mutate(func(st *state) error {
		return fn(&memStore{st: st})
	})
}

func (s *Store) Progress(ctx context.Context) (*models.Progress, error) {
	var p *models.Progress
	err := s.view(func(st *state) error {
		p = copyProgress(st.Progress)
		return nil
	})
	return p, err
}

func (s *Store) SaveProgress(ctx context.Context, p models.Progress) error {
	return s.mutate(func(st *state) error {
		st.Progress = &p
		return nil
	})
}

func (s *Store) Review(ctx context.Context, wordID int) (*models.ReviewRecord, error) {
	var rec *models.ReviewRecord
	err := s.view(func(st *state) error {
		if r, ok := st.Reviews[wordID]; ok {
			rec = &r
		}
		return nil
	})
	return rec, err
}

func (s *Store) SaveReview(ctx context.Context, rec models.ReviewRecord) error {
	return s.mutate(func(st *state) error {
		st.Reviews[rec.WordID] = rec
		return nil
	})
}

func (s *Store) Reviews(ctx context.Context) (map[int]models.ReviewRecord, error) {
	out := map[int]models.ReviewRecord{}
	err := s.view(func(st *state) error {
		for id, rec := range st.Reviews {
			out[id] = rec
		}
		return nil
	})
	return out, err
}

func (s *Store) Achievements(ctx context.Context) ([]models.UnlockedAchievement, error) {
	var out []models.UnlockedAchievement
	err := s.view(func(st *state) error {
		out = achievementList(st)
		return nil
	})
	return out, err
}

func (s *Store) InsertAchievement(ctx context.Context, id string, unlockedAt string) (bool, error) {
	inserted := false
	err := s.mutate(func(st *state) error {
		inserted = insertAchievement(st, id, unlockedAt)
		return nil
	})
	return inserted, err
}

func (s *Store) AddSession(ctx context.Context, sess models.StudySession) error {
	return s.mutate(func(st *state) error {
		st.Sessions = append(st.Sessions, sess)
		return nil
	})
}

func (s *Store) Sessions(ctx context.Context, limit int) ([]models.StudySession, error) {
	var out []models.StudySession
	err := s.view(func(st *state) error {
		out = sessionList(st, limit)
		return nil
	})
	return out, err
}

func (s *Store) Reset(ctx context.Context) error {
	return s.mutate(func(st *state) error {
		*st = state{Reviews: map[int]models.ReviewRecord{}}
		return nil
	})
}

// memStore is the in-transaction view handed to Atomically callbacks. It
// mutates the loaded state directly; the outer store flushes once when the
// callback returns without error, so partial writes are never persisted.
type memStore struct {
	st *state
}

func (m *memStore) Atomically(ctx context.Context, fn func(progress.Store) error) error {
	return fn(m)
}

func (m *memStore) Progress(ctx context.Context) (*models.Progress, error) {
	return copyProgress(m.st.Progress), nil
}

func (m *memStore) SaveProgress(ctx context.Context, p models.Progress) error {
	m.st.Progress = &p
	return nil
}

func (m *memStore) Review(ctx context.Context, wordID int) (*models.ReviewRecord, error) {
	if rec, ok := m.st.Reviews[wordID]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (m *memStore) SaveReview(ctx context.Context, rec models.ReviewRecord) error {
	m.st.Reviews[rec.WordID] = rec
	return nil
}

func (m *memStore) Reviews(ctx context.Context) (map[int]models.ReviewRecord, error) {
	out := make(map[int]models.ReviewRecord, len(m.st.Reviews))
	for id, rec := range m.st.Reviews {
		out[id] = rec
	}
	return out, nil
}

func (m *memStore) Achievements(ctx context.Context) ([]models.UnlockedAchievement, error) {
	return achievementList(m.st), nil
}

func (m *memStore) InsertAchievement(ctx context.Context, id string, unlockedAt string) (bool, error) {
	return insertAchievement(m.st, id, unlockedAt), nil
}

func (m *memStore) AddSession(ctx context.Context, sess models.StudySession) error {
	m.st.Sessions = append(m.st.Sessions, sess)
	return nil
}

func (m *memStore) Sessions(ctx context.Context, limit int) ([]models.StudySession, error) {
	return sessionList(m.st, limit), nil
}

func (m *memStore) Reset(ctx context.Context) error {
	*m.st = state{Reviews: map[int]models.ReviewRecord{}}
	return nil
}

func copyProgress(p *models.Progress) *models.Progress {
	if p == nil {
		return nil
	}
	cp := *p
	cp.UnlockedLevels = append([]int(nil), p.UnlockedLevels...)
	return &cp
}

func achievementList(st *state) []models.UnlockedAchievement {
	out := make([]models.UnlockedAchievement, 0, len(st.Achievements))
	for _, row := range st.Achievements {
		a := models.UnlockedAchievement{UnlockedAt: row.UnlockedAt}
		a.ID = row.ID
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UnlockedAt < out[j].UnlockedAt })
	return out
}

func insertAchievement(st *state, id, unlockedAt string) bool {
	for _, row := range st.Achievements {
		if row.ID == id {
			return false
		}
	}
	st.Achievements = append(st.Achievements, unlockRow{ID: id, UnlockedAt: unlockedAt})
	return true
}

func sessionList(st *state, limit int) []models.StudySession {
	if limit <= 0 || limit > len(st.Sessions) {
		limit = len(st.Sessions)
	}
	// Newest first.
	out := make([]models.StudySession, 0, limit)
	for i := len(st.Sessions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, st.Sessions[i])
	}
	return out
}
