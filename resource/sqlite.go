package resource

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// SQLite is a repository storing resources in a SQLite database.
type SQLite struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

var memoryDBs atomic.Int64

// NewSQLite opens (and if needed creates) the database at filename.
// If file name is empty, a new in-memory db is opened. Each in-memory db is
// private to the returned repository.
func NewSQLite(filename string) (*SQLite, error) {
	if filename == "" {
		filename = fmt.Sprintf("file:respond-memory-%d?mode=memory&cache=shared", memoryDBs.Add(1))
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS resources (
			name TEXT PRIMARY KEY,
			modified INTEGER,
			length INTEGER,
			data BLOB
		)`,
		"PRAGMA journal_mode=WAL",
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "initialize resource table")
		}
	}
	return &SQLite{
		db:         db,
		writeMutex: &sync.Mutex{},
	}, nil
}

// Put stores data under name, replacing any previous content.
func (s *SQLite) Put(ctx context.Context, name string, modified time.Time, data []byte) error {
	name, err := cleanPath(name)
	if err != nil {
		return err
	}
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO resources
		(name, modified, length, data) VALUES (?, ?, ?, ?)`,
		name, modified.UnixMilli(), len(data), data)
	if err != nil {
		return errors.Wrapf(err, "put %s", name)
	}
	log.Trace().Str("name", name).Int("length", len(data)).Msg("Stored resource")
	return nil
}

// Delete removes the resource stored under name.
func (s *SQLite) Delete(ctx context.Context, name string) error {
	name, err := cleanPath(name)
	if err != nil {
		return err
	}
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err = s.db.ExecContext(ctx, "DELETE FROM resources WHERE name = ?", name)
	return errors.Wrapf(err, "delete %s", name)
}

// Resource looks up the metadata of the resource stored under p.
// The metadata is captured at lookup time.
func (s *SQLite) Resource(ctx context.Context, p string) (Resource, error) {
	name, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	res := &sqliteResource{ctx: ctx, db: s.db, name: name}
	var modified int64
	err = s.db.QueryRowContext(ctx, "SELECT modified, length FROM resources WHERE name = ?", name).
		Scan(&modified, &res.length)
	switch {
	case err == sql.ErrNoRows:
		return res, nil
	case err != nil:
		return nil, errors.Wrapf(err, "look up %s", name)
	}
	res.exists = true
	res.modified = time.UnixMilli(modified)
	return res, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type sqliteResource struct {
	ctx      context.Context
	db       *sql.DB
	name     string
	exists   bool
	modified time.Time
	length   int64
}

func (r *sqliteResource) Name() string            { return r.name }
func (r *sqliteResource) String() string          { return r.name }
func (r *sqliteResource) Exists() bool            { return r.exists }
func (r *sqliteResource) LastModified() time.Time { return r.modified }
func (r *sqliteResource) Length() int64           { return r.length }

func (r *sqliteResource) Open() (io.ReadCloser, error) {
	var data []byte
	err := r.db.QueryRowContext(r.ctx, "SELECT data FROM resources WHERE name = ?", r.name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(fs.ErrNotExist, r.name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", r.name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
