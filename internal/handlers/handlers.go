package handlers

import (
	"movie-catalog/internal/catalog"
	"movie-catalog/internal/database"
	"movie-catalog/internal/scan"
	"movie-catalog/internal/startup"
)

type Handlers struct {
	catalog     *catalog.Catalog
	coordinator *scan.Coordinator
	store       *database.Database
	mediaDir    string
}

// New creates the handler set. store may be nil when persistence is
// disabled; handlers that touch it degrade instead of failing.
func New(cat *catalog.Catalog, co *scan.Coordinator, store *database.Database, config *startup.Config) *Handlers {
	return &Handlers{
		catalog:     cat,
		coordinator: co,
		store:       store,
		mediaDir:    config.MediaDir,
	}
}
