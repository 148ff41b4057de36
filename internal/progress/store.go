package progress

import (
	"context"

	"github.com/hyeon/vocaflash/internal/models"
)

// Store is the persistence surface the engine runs on. A Store is bound to a
// single already-resolved user; the engine never sees user identifiers.
//
// Lookups return (nil, nil) when the record is absent. Atomically runs fn
// against a view of the store where either every write inside fn lands or
// none do; implementations without real transactions may provide a
// best-effort equivalent (the localfile adapter flushes once at the end).
type Store interface {
	Progress(ctx context.Context) (*models.Progress, error)
	SaveProgress(ctx context.Context, p models.Progress) error

	Review(ctx context.Context, wordID int) (*models.ReviewRecord, error)
	SaveReview(ctx context.Context, rec models.ReviewRecord) error
	Reviews(ctx context.Context) (map[int]models.ReviewRecord, error)

	Achievements(ctx context.Context) ([]models.UnlockedAchievement, error)
	// InsertAchievement records an unlock once; it reports false when the
	// achievement was already unlocked (the stored row is left untouched).
	InsertAchievement(ctx context.Context, id string, unlockedAt string) (bool, error)

	AddSession(ctx context.Context, s models.StudySession) error
	Sessions(ctx context.Context, limit int) ([]models.StudySession, error)

	// Reset removes every record of the user's learning state.
	Reset(ctx context.Context) error

	Atomically(ctx context.Context, fn func(Store) error) error
}
