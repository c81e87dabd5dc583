package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store { return openTestSQLite(t) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			s := open(t)

			if _, ok, err := s.Get("missing"); ok || err != nil {
				t.Fatalf("Get(missing) = %v, %v", ok, err)
			}

			if err := s.Set("k", "one"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set("k", "two"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			if v, ok, err := s.Get("k"); !ok || err != nil || v != "two" {
				t.Errorf("Get(k) = %q, %v, %v; want two", v, ok, err)
			}

			if err := s.Remove("k"); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if _, ok, _ := s.Get("k"); ok {
				t.Error("key survived Remove")
			}
			if err := s.Remove("k"); err != nil {
				t.Errorf("Remove of a missing key: %v", err)
			}
		})
	}
}

func TestScopedIsolation(t *testing.T) {
	base := NewMemoryStore()
	a, b := Scoped(base, "client-a"), Scoped(base, "client-b")

	a.Set("ai_provider", "gemini")
	b.Set("ai_provider", "openai")

	if v, _, _ := a.Get("ai_provider"); v != "gemini" {
		t.Errorf("client-a sees %q", v)
	}
	if v, _, _ := b.Get("ai_provider"); v != "openai" {
		t.Errorf("client-b sees %q", v)
	}

	a.Remove("ai_provider")
	if _, ok, _ := b.Get("ai_provider"); !ok {
		t.Error("removing from one scope affected another")
	}
	if base.Len() != 1 {
		t.Errorf("base has %d keys, want 1", base.Len())
	}
}

func TestSQLitePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := Scoped(db, "sess_1").Set("campusai_session", `{"user":{"username":"asha"}}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	db.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if v, ok, _ := Scoped(reopened, "sess_1").Get("campusai_session"); !ok || v != `{"user":{"username":"asha"}}` {
		t.Errorf("value not persisted: %q, %v", v, ok)
	}
}
