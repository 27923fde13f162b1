package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"jobpilot-client/internal/api"
)

// Cache is the client's local state: the last known-good job page for
// offline display, and small preferences like the dark-mode flag.
type Cache struct {
	pool *sql.DB
}

func Open(path string) (*Cache, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	c := &Cache{pool: pool}
	if err := c.migrate(); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) Close() error {
	if c == nil || c.pool == nil {
		return nil
	}
	return c.pool.Close()
}

func (c *Cache) migrate() error {
	tx, err := c.pool.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs_cache (
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  is_remote INTEGER NOT NULL DEFAULT 0,
  job_type TEXT NOT NULL DEFAULT '',
  match_score INTEGER NOT NULL DEFAULT 0,
  is_scam INTEGER NOT NULL DEFAULT 0,
  posted_date TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  fetched_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS prefs (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveJobs replaces the cached page with the freshly loaded one.
func (c *Cache) SaveJobs(ctx context.Context, jobs []api.JobSummary) error {
	tx, err := c.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM jobs_cache;`); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, j := range jobs {
		if _, err := tx.Exec(`
INSERT OR REPLACE INTO jobs_cache
  (id, title, company, location, is_remote, job_type, match_score, is_scam, posted_date, source, url, fetched_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?);`,
			j.ID, j.Title, j.Company, j.Location, boolInt(j.IsRemote), j.JobType,
			j.MatchScore, boolInt(j.IsScam), j.PostedDate, j.Source, j.URL, now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadJobs returns the cached page, newest match first.
func (c *Cache) LoadJobs(ctx context.Context) ([]api.JobSummary, error) {
	rows, err := c.pool.QueryContext(ctx, `
SELECT id, title, company, location, is_remote, job_type, match_score, is_scam, posted_date, source, url
FROM jobs_cache
ORDER BY match_score DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.JobSummary
	for rows.Next() {
		var j api.JobSummary
		var remote, scam int
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &remote, &j.JobType,
			&j.MatchScore, &scam, &j.PostedDate, &j.Source, &j.URL); err != nil {
			return nil, err
		}
		j.IsRemote = remote != 0
		j.IsScam = scam != 0
		out = append(out, j)
	}
	return out, rows.Err()
}

const prefDarkMode = "dark_mode"

// DarkMode returns the stored preference; set is false when the user never
// chose one and the platform default should apply.
func (c *Cache) DarkMode() (enabled, set bool) {
	var v string
	err := c.pool.QueryRow(`SELECT value FROM prefs WHERE key = ?;`, prefDarkMode).Scan(&v)
	if err != nil {
		return false, false
	}
	return v == "1", true
}

func (c *Cache) SetDarkMode(enabled bool) error {
	v := "0"
	if enabled {
		v = "1"
	}
	_, err := c.pool.Exec(`INSERT OR REPLACE INTO prefs(key, value) VALUES (?, ?);`, prefDarkMode, v)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
