package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	cases := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{args: nil, want: 1},
		{args: []string{"3"}, want: 3},
		{args: []string{"0"}, wantErr: true},
		{args: []string{"x"}, wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseSteps(tc.args)
		if (err != nil) != tc.wantErr {
			t.Fatalf("parseSteps(%v) err=%v wantErr=%v", tc.args, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Fatalf("parseSteps(%v)=%d want=%d", tc.args, got, tc.want)
		}
	}
}

func TestParseVersion(t *testing.T) {
	if v, err := parseVersion(" 2 "); err != nil || v != 2 {
		t.Fatalf("parseVersion: v=%d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected negative version to fail")
	}
}

func TestMigrationsDir_Override(t *testing.T) {
	dir := t.TempDir()
	got, err := migrationsDir(dir)
	if err != nil {
		t.Fatalf("migrationsDir: %v", err)
	}
	if got != dir {
		t.Fatalf("got %q want %q", got, dir)
	}

	if _, err := migrationsDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected missing dir to fail")
	}
}

func TestMigrationsDir_FileIsNotDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "up.sql")
	if err := os.WriteFile(file, []byte("SELECT 1;"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := migrationsDir(file); err == nil {
		t.Fatalf("expected file path to be rejected")
	}
}

func TestWithApplicationName(t *testing.T) {
	raw := "postgres://u:p@localhost:5432/footy_career?sslmode=disable"
	if got := withApplicationName(raw, ""); got != raw {
		t.Fatalf("expected unchanged url, got %q", got)
	}
	if got := withApplicationName(raw, "footy-career-migration"); !strings.Contains(got, "application_name=footy-career-migration") {
		t.Fatalf("expected application name in url, got %q", got)
	}
	explicit := raw + "&application_name=ops"
	if got := withApplicationName(explicit, "footy-career-migration"); got != explicit {
		t.Fatalf("expected explicit application name kept, got %q", got)
	}
}
