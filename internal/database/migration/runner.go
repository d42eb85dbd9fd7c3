package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"career-insights/internal/database"

	"go.uber.org/zap"
)

// lockKey serialises concurrent runners; the lock is transaction scoped.
const lockKey int64 = 518204733

const (
	createVersionsSQL = `CREATE TABLE IF NOT EXISTS schema_versions (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	lockSQL    = `SELECT pg_advisory_xact_lock($1)`
	appliedSQL = `SELECT EXISTS (SELECT 1 FROM schema_versions WHERE version = $1)`
	recordSQL  = `INSERT INTO schema_versions (version, name) VALUES ($1, $2)`
)

var errNilDB = errors.New("nil db")

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
}

// Runner applies the V<version>__<name>.sql files found in FS, each in
// its own transaction.
type Runner struct {
	FS     fs.FS
	Logger *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errNilDB
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	migs, err := Load(r.FS)
	if err != nil {
		return err
	}

	applied := 0
	for _, m := range migs {
		ok, err := apply(ctx, db, m)
		if err != nil {
			return err
		}
		if ok {
			applied++
			logger.Info("[Migration] applied", zap.Int64("version", m.Version), zap.String("name", m.Name))
		}
	}
	logger.Debug("[Migration] up to date", zap.Int("total", len(migs)), zap.Int("applied", applied))
	return nil
}

// apply runs m unless schema_versions already records it. It reports
// whether m was run.
func apply(ctx context.Context, db database.DB, m Migration) (bool, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, lockSQL, lockKey); err != nil {
		return false, fmt.Errorf("migration lock: %w", err)
	}
	if _, err := tx.Exec(ctx, createVersionsSQL); err != nil {
		return false, err
	}

	var done bool
	if err := tx.QueryRow(ctx, appliedSQL, m.Version).Scan(&done); err != nil {
		return false, err
	}
	if done {
		return false, nil
	}

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return false, fmt.Errorf("migration %s: %w", m.Filename, err)
	}
	if _, err := tx.Exec(ctx, recordSQL, m.Version, m.Name); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// Load reads the migrations at the root of fsys ordered by version.
// Files that do not follow the naming scheme are ignored.
func Load(fsys fs.FS) ([]Migration, error) {
	if fsys == nil {
		return nil, nil
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	seen := map[int64]string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		version, name, ok := parseFilename(e.Name())
		if !ok {
			continue
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, prev, e.Name())
		}
		seen[version] = e.Name()

		b, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(string(b))
		if text == "" {
			return nil, fmt.Errorf("empty migration file: %s", e.Name())
		}
		migs = append(migs, Migration{Version: version, Name: name, Filename: e.Name(), SQL: text})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	return migs, nil
}

func parseFilename(filename string) (int64, string, bool) {
	base, ok := strings.CutSuffix(filename, ".sql")
	if !ok {
		return 0, "", false
	}
	base, ok = strings.CutPrefix(base, "V")
	if !ok {
		return 0, "", false
	}
	num, name, ok := strings.Cut(base, "__")
	if !ok || name == "" {
		return 0, "", false
	}
	v, err := strconv.ParseInt(num, 10, 64)
	if err != nil || v <= 0 {
		return 0, "", false
	}
	return v, name, true
}
