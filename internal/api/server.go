package api

import (
	"github.com/hyeon/vocaflash/internal/auth"
	"github.com/hyeon/vocaflash/internal/catalog"
	"github.com/hyeon/vocaflash/internal/db"
	"github.com/hyeon/vocaflash/internal/progress"
	"github.com/hyeon/vocaflash/internal/repository/sqlite"
)

type Server struct {
	DB         *db.DB
	Auth       *auth.Service
	Catalog    *catalog.Catalog
	CORSOrigin string
}

// engineFor builds the per-request progress engine bound to one user's rows.
func (s *Server) engineFor(userID string) *progress.Engine {
	return progress.New(sqlite.NewStore(s.DB, userID))
}
