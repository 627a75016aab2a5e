package localstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
)

func TestFileStore_LoadMissingReturnsNil(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	raw, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected nil snapshot, got %q", raw)
	}
}

func TestFileStore_SaveReplacesContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := NewFileStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, []byte(`{"version":4}`)); err != nil {
		t.Fatalf("first Save error: %v", err)
	}
	if err := store.Save(ctx, []byte(`{"version":5}`)); err != nil {
		t.Fatalf("second Save error: %v", err)
	}

	raw, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if string(raw) != `{"version":5}` {
		t.Fatalf("unexpected content: %q", raw)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files must not be left behind, got %d entries", len(entries))
	}
}

func TestFileStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err := store.Save(ctx, []byte(`{}`)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled save, got %v", err)
	}
}

type fakeStateAPI struct {
	stored []byte
}

func (f *fakeStateAPI) GetState(context.Context) ([]byte, error) {
	return f.stored, nil
}

func (f *fakeStateAPI) PutState(_ context.Context, raw []byte) error {
	f.stored = append([]byte(nil), raw...)
	return nil
}

func TestRemoteStore_RoundTrip(t *testing.T) {
	t.Parallel()

	api := &fakeStateAPI{}
	store := NewRemoteStore(api)
	if err := store.Save(context.Background(), []byte(`{"version":5}`)); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	raw, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if string(raw) != `{"version":5}` {
		t.Fatalf("unexpected content: %q", raw)
	}
}

func TestSessionFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	file := NewSessionFile(path)

	if _, err := file.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected no session, got %v", err)
	}

	want := Session{
		Token:     "jwt",
		ExpiresAt: time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC),
		Principal: user.Principal{UserID: "u1", Name: "Nora", Role: user.RolePlayer, TeamID: "t1"},
	}
	if err := file.Save(want); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("session file must be private, got %v", info.Mode().Perm())
	}

	got, err := file.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Token != want.Token || !got.ExpiresAt.Equal(want.ExpiresAt) || got.Principal != want.Principal {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Expired(want.ExpiresAt.Add(-time.Hour)) || !got.Expired(want.ExpiresAt) {
		t.Fatalf("unexpected expiry check")
	}

	if err := file.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, err := file.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected no session after clear, got %v", err)
	}
}
