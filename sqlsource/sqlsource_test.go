package sqlsource

import (
	"bytes"
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/lazylist"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/pipeline"
)

type event struct {
	ID   uint `gorm:"primaryKey"`
	Name string
	Kind string
}

// newTestDB opens a file-backed SQLite database seeded with the given event names.
func newTestDB(t *testing.T, log *logger.Logger, names ...string) *DB {
	t.Helper()
	cfg := Config{DSN: filepath.Join(t.TempDir(), "events.db"), PageSize: 2}
	db, err := Open(context.Background(), cfg, log)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.GormDB.AutoMigrate(&event{}); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	for i, name := range names {
		kind := "odd"
		if i%2 == 0 {
			kind = "even"
		}
		if err := db.GormDB.Create(&event{Name: name, Kind: kind}).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	return db
}

// countQueries registers a callback that counts SELECT statements.
func countQueries(t *testing.T, db *DB) *int {
	t.Helper()
	n := new(int)
	err := db.GormDB.Callback().Query().After("gorm:query").Register("test:count", func(*gorm.DB) { *n++ })
	if err != nil {
		t.Fatalf("register callback failed: %v", err)
	}
	return n
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), Config{}, nil)
	if !stderrors.Is(err, apperrors.ErrInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}

	_, err = Open(context.Background(), Config{DSN: "x.db", LogLevel: "loud"}, nil)
	if !stderrors.Is(err, apperrors.ErrInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG for bad log level, got %v", err)
	}
}

func TestOpen_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Open(ctx, Config{DSN: filepath.Join(t.TempDir(), "x.db")}, nil)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{DSN: "a.db"}, false},
		{"idle above open", Config{DSN: "a.db", MaxOpenConns: 1, MaxIdleConns: 2}, true},
		{"bad lifetime", Config{DSN: "a.db", ConnMaxLifetime: "forever"}, true},
		{"bad threshold", Config{DSN: "a.db", SlowQueryThreshold: "slow"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.ApplyDefaults()
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestColumn_ReadsAllPages(t *testing.T) {
	db := newTestDB(t, nil, "a", "b", "c", "d", "e")

	got, err := pipeline.Collect(context.Background(), Column(db, "events", "name", "id", "", 2))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if strings.Join(got, "") != "abcde" {
		t.Fatalf("expected abcde, got %v", got)
	}
}

func TestColumn_Where(t *testing.T) {
	db := newTestDB(t, nil, "a", "b", "c", "d", "e")

	got, err := pipeline.Collect(context.Background(), Column(db, "events", "name", "id", "kind = 'even'", 2))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if strings.Join(got, "") != "ace" {
		t.Fatalf("expected ace, got %v", got)
	}
}

func TestColumn_QueriesOnlyNeededPages(t *testing.T) {
	db := newTestDB(t, nil, "a", "b", "c", "d", "e", "f")
	queries := countQueries(t, db)
	ctx := context.Background()

	l := lazylist.From(Column(db, "events", "name", "id", "", 2))
	if v, err := l.Get(ctx, 1); err != nil || v != "b" {
		t.Fatalf("expected Get(1) = b, got %q, %v", v, err)
	}
	if *queries != 1 {
		t.Errorf("expected one query for the first page, got %d", *queries)
	}

	if v, err := l.Get(ctx, 2); err != nil || v != "c" {
		t.Fatalf("expected Get(2) = c, got %q, %v", v, err)
	}
	if *queries != 2 {
		t.Errorf("expected a second query for the second page, got %d", *queries)
	}

	n, err := l.Len(ctx)
	if err != nil || n != 6 {
		t.Fatalf("expected length 6, got %d, %v", n, err)
	}
	// pages 3 and the empty page 4 that proves the end
	if *queries != 4 {
		t.Errorf("expected 4 queries in total, got %d", *queries)
	}
}

func TestColumn_MissingTableFails(t *testing.T) {
	db := newTestDB(t, nil)

	l := lazylist.From(Column(db, "nope", "name", "id", "", 2))
	if _, err := l.Len(context.Background()); err == nil {
		t.Fatal("expected a query error for a missing table")
	}
}

func TestRows_DecodesStructs(t *testing.T) {
	db := newTestDB(t, nil, "a", "b", "c")

	it := Rows[event](db, func(tx *gorm.DB) *gorm.DB { return tx.Order("id DESC") }, 2)
	got, err := pipeline.Collect(context.Background(), it)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(got) != 3 || got[0].Name != "c" || got[2].Name != "a" {
		t.Fatalf("unexpected rows %+v", got)
	}
}

func TestConfiguredSource(t *testing.T) {
	db := newTestDB(t, nil, "x", "y", "z")
	db.cfg.Table, db.cfg.Column, db.cfg.OrderBy = "events", "name", "id"

	got, err := pipeline.Collect(context.Background(), db.ConfiguredSource())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if strings.Join(got, "") != "xyz" {
		t.Fatalf("expected xyz, got %v", got)
	}
}

func TestGormLogger_DebugQueries(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "sql-test", &buf)
	cfg := Config{DSN: filepath.Join(t.TempDir(), "log.db"), LogLevel: "info"}
	db, err := Open(context.Background(), cfg, log)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	buf.Reset()
	if err := db.GormDB.Exec("SELECT 1").Error; err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"component":"gorm"`) || !strings.Contains(out, "SELECT 1") {
		t.Errorf("expected a gorm query log line, got %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("silent") != gormlogger.Silent {
		t.Error("expected silent")
	}
	if parseLogLevel("") != parseLogLevel("warn") {
		t.Error("expected warn as the fallback level")
	}
}

func TestDB_CloseTwice(t *testing.T) {
	db := newTestDB(t, nil)
	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("PingContext failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
