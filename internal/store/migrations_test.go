package store

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadMigrations_SortedByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"m/010_later.sql":  {Data: []byte("SELECT 10;")},
		"m/002_second.sql": {Data: []byte("SELECT 2;")},
		"m/001_first.sql":  {Data: []byte("SELECT 1;")},
		"m/README.md":      {Data: []byte("ignored")},
	}

	got, err := loadMigrations(fsys, "m")
	if err != nil {
		t.Fatalf("loadMigrations failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(got))
	}

	expected := []string{"001_first", "002_second", "010_later"}
	for i, name := range expected {
		if got[i].String() != name {
			t.Errorf("position %d: expected %q, got %q", i, name, got[i].String())
		}
	}
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"m/001_a.sql": {Data: []byte("SELECT 1;")},
		"m/1_b.sql":   {Data: []byte("SELECT 1;")},
	}

	_, err := loadMigrations(fsys, "m")
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename string
		version  int
		name     string
		wantErr  bool
	}{
		{filename: "001_create_kv.sql", version: 1, name: "create_kv"},
		{filename: "12_add.sql", version: 12, name: "add"},
		{filename: "create.sql", wantErr: true},
		{filename: "abc_create.sql", wantErr: true},
		{filename: "001_.sql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, err := parseMigrationFilename(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if version != tt.version || name != tt.name {
				t.Errorf("expected (%d, %q), got (%d, %q)", tt.version, tt.name, version, name)
			}
		})
	}
}
