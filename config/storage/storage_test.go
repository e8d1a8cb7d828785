package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	if err := AtomicWrite(path, []byte(`{"a":1}`), nil); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("content = %s, want {\"a\":1}", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	leftovers, _ := filepath.Glob(path + ".tmp*")
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestAtomicWriteBacksUpExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	bm := NewBackupManager(2)

	// first write has nothing to back up
	if err := AtomicWrite(path, []byte("v1"), bm); err != nil {
		t.Fatal(err)
	}
	backups, _ := bm.ListBackups(path)
	if len(backups) != 0 {
		t.Fatalf("got %d backups after first write, want 0", len(backups))
	}

	for _, v := range []string{"v2", "v3", "v4"} {
		if err := AtomicWrite(path, []byte(v), bm); err != nil {
			t.Fatal(err)
		}
	}

	backups, _ = bm.ListBackups(path)
	if len(backups) != 2 {
		t.Fatalf("got %d backups, want 2", len(backups))
	}

	latest, err := os.ReadFile(backups[len(backups)-1])
	if err != nil {
		t.Fatal(err)
	}
	if string(latest) != "v3" {
		t.Errorf("latest backup = %s, want v3", latest)
	}
}

func TestRestoreFromLatestBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	bm := NewBackupManager(DefaultBackupRetention)

	if err := AtomicWrite(path, []byte("good"), bm); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWrite(path, []byte("bad"), bm); err != nil {
		t.Fatal(err)
	}

	if _, err := bm.RestoreFromLatestBackup(path); err != nil {
		t.Fatalf("RestoreFromLatestBackup() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "good" {
		t.Errorf("restored content = %s, want good", data)
	}
}

func TestRestoreWithoutBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if _, err := NewBackupManager(1).RestoreFromLatestBackup(path); err == nil {
		t.Error("expected error when no backups exist")
	}
}

func TestRestoreRejectsForeignBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	other := filepath.Join(dir, "other.json.backup-1")
	if err := os.WriteFile(other, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := NewBackupManager(1).RestoreFromBackup(path, other); err == nil {
		t.Error("expected error for a backup of another file")
	}
}
