package database

import (
	"time"

	"movie-catalog/internal/catalog"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/tmdb"
)

// SaveEntry upserts one catalog entry. Called after every successful
// catalog insert; the movie ID is the row key.
func (d *Database) SaveEntry(entry *catalog.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	query := `
		INSERT INTO movies (id, title, tagline, overview, release_date, cast_list, source_path, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			tagline = excluded.tagline,
			overview = excluded.overview,
			release_date = excluded.release_date,
			cast_list = excluded.cast_list,
			source_path = excluded.source_path
	`

	m := entry.Movie
	_, err := d.db.Exec(query, m.ID, m.Title, m.Tagline, m.Overview, m.ReleaseDate,
		entry.CastSummary, entry.SourcePath, entry.AddedAt.Unix())
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues("save", "error").Inc()
		return err
	}
	metrics.StoreOperationsTotal.WithLabelValues("save", "ok").Inc()
	return nil
}

// DeleteEntry removes one persisted entry by movie ID.
func (d *Database) DeleteEntry(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec("DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}
	metrics.StoreOperationsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

// LoadAll returns every persisted entry, rebuilt without artwork. Row order
// is irrelevant; the catalog re-sorts on insert.
func (d *Database) LoadAll() ([]*catalog.Entry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, err := d.db.Query(`
		SELECT id, title, tagline, overview, release_date, cast_list, source_path, added_at
		FROM movies
	`)
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues("load", "error").Inc()
		return nil, err
	}
	defer rows.Close()

	var entries []*catalog.Entry
	for rows.Next() {
		var movie tmdb.Movie
		var castList, sourcePath string
		var addedAt int64
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.Tagline, &movie.Overview,
			&movie.ReleaseDate, &castList, &sourcePath, &addedAt); err != nil {
			metrics.StoreOperationsTotal.WithLabelValues("load", "error").Inc()
			return nil, err
		}
		entries = append(entries, catalog.RestoredEntry(&movie, castList, sourcePath, time.Unix(addedAt, 0)))
	}
	if err := rows.Err(); err != nil {
		metrics.StoreOperationsTotal.WithLabelValues("load", "error").Inc()
		return nil, err
	}

	metrics.StoreOperationsTotal.WithLabelValues("load", "ok").Inc()
	return entries, nil
}
