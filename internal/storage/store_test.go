package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(filepath.Join(t.TempDir(), "store.yaml"))
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	return s
}

func TestOpenAtMissingFile(t *testing.T) {
	s := tempStore(t)

	if _, ok := s.Get("anything"); ok {
		t.Error("Get() on empty store should report absent")
	}
	if len(s.Keys()) != 0 {
		t.Errorf("Keys() = %v, want empty", s.Keys())
	}
}

func TestSetAndGetRoundTrip(t *testing.T) {
	s := tempStore(t)

	if err := s.Set("locale", "es"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, ok := s.Get("locale")
	if !ok || v != "es" {
		t.Errorf("Get(locale) = %q, %v, want \"es\", true", v, ok)
	}

	// Reopen from disk and verify persistence.
	reopened, err := OpenAt(s.path)
	if err != nil {
		t.Fatalf("OpenAt() reopen error = %v", err)
	}
	v, ok = reopened.Get("locale")
	if !ok || v != "es" {
		t.Errorf("reopened Get(locale) = %q, %v, want \"es\", true", v, ok)
	}
}

func TestSetMultiIsAllOrNothing(t *testing.T) {
	s := tempStore(t)

	pairs := map[string]string{
		"auth_email": "user@example.com",
		"auth_token": "dXNlckBleGFtcGxlLmNvbTpwdw==",
	}
	if err := s.SetMulti(pairs); err != nil {
		t.Fatalf("SetMulti() error = %v", err)
	}

	for k, want := range pairs {
		if got, ok := s.Get(k); !ok || got != want {
			t.Errorf("Get(%s) = %q, %v, want %q, true", k, got, ok, want)
		}
	}
}

func TestSetMultiRollsBackOnWriteFailure(t *testing.T) {
	// Point the store at a path whose parent cannot be created.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s := &Store{
		path:   filepath.Join(blocker, "nested", "store.yaml"),
		values: make(map[string]string),
	}

	err := s.SetMulti(map[string]string{"auth_email": "a", "auth_token": "b"})
	if err == nil {
		t.Fatal("SetMulti() should fail when the store cannot be written")
	}

	if _, ok := s.Get("auth_email"); ok {
		t.Error("failed SetMulti() must not leave partial values in memory")
	}
	if _, ok := s.Get("auth_token"); ok {
		t.Error("failed SetMulti() must not leave partial values in memory")
	}
}

func TestSetMultiRestoresOverwrittenValuesOnWriteFailure(t *testing.T) {
	s := tempStore(t)

	seeded := map[string]string{
		"auth_email": "old@example.com",
		"auth_token": "oldtoken",
	}
	if err := s.SetMulti(seeded); err != nil {
		t.Fatalf("seed SetMulti() error = %v", err)
	}

	// Squat a directory on the temporary-file path so the next save fails
	// after the seed was persisted.
	if err := os.Mkdir(s.path+".tmp", 0700); err != nil {
		t.Fatalf("setup: %v", err)
	}

	err := s.SetMulti(map[string]string{
		"auth_email": "new@example.com",
		"auth_token": "newtoken",
	})
	if err == nil {
		t.Fatal("SetMulti() should fail when the store cannot be written")
	}

	// The file still holds the seeded pair, so memory must too: dropping
	// the keys here would report a logged-out state that a restart undoes.
	for k, want := range seeded {
		if got, ok := s.Get(k); !ok || got != want {
			t.Errorf("after failed SetMulti, Get(%s) = %q, %v, want %q, true", k, got, ok, want)
		}
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := tempStore(t)

	if err := s.Set("auth_token", "tok"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := s.Remove("auth_token", "auth_email"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok := s.Get("auth_token"); ok {
		t.Error("Remove() should have deleted auth_token")
	}

	// Removing again must succeed with the same end state.
	if err := s.Remove("auth_token", "auth_email"); err != nil {
		t.Fatalf("second Remove() error = %v", err)
	}
	if _, ok := s.Get("auth_token"); ok {
		t.Error("auth_token should stay absent after repeated Remove()")
	}
}

func TestKeysSorted(t *testing.T) {
	s := tempStore(t)

	for _, k := range []string{"theme_dark", "auth_email", "locale"} {
		if err := s.Set(k, "v"); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}

	keys := s.Keys()
	want := []string{"auth_email", "locale", "theme_dark"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
