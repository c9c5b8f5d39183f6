package database

import (
	"io/fs"
	"testing"

	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"debug": gormlogger.Info,
		"info":  gormlogger.Warn,
		"warn":  gormlogger.Warn,
		"error": gormlogger.Error,
		"":      gormlogger.Error,
	}
	for in, want := range cases {
		if got := gormLogLevel(in); got != want {
			t.Errorf("gormLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("expected embedded up migrations")
	}
	for _, f := range files {
		down := f[:len(f)-len(".up.sql")] + ".down.sql"
		if _, err := fs.Stat(migrationsFS, down); err != nil {
			t.Errorf("missing down migration for %s", f)
		}
	}
}
