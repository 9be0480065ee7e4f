package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBasePathHonorsVaultEnv(t *testing.T) {
	tmp := t.TempDir()
	custom := filepath.Join(tmp, "custom-vault")

	t.Setenv(VaultEnv, custom)

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}
	if got != custom {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, custom)
	}
}

func TestResolveBasePathExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(VaultEnv, "~/notes")

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}

	want := filepath.Join(home, "notes")
	if got != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}
}

func TestResolveBasePathDefaultsToWorkingDirectory(t *testing.T) {
	t.Setenv(VaultEnv, "  ")

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}

	want, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if got != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}
}
