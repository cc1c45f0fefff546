package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/deckbuild"
)

type backendCase struct {
	name string
	open func(t *testing.T) Store
}

func backends() []backendCase {
	return []backendCase{
		{"memory", func(t *testing.T) Store { return NewMemoryStore() }},
		{"file", func(t *testing.T) Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
			require.NoError(t, err)
			return s
		}},
		{"sqlite", func(t *testing.T) Store {
			s, err := OpenSQLite(DefaultSQLiteConfig(filepath.Join(t.TempDir(), "draftsim.db")))
			require.NoError(t, err)
			return s
		}},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends() {
		t.Run(bc.name, func(t *testing.T) {
			s := bc.open(t)
			defer s.Close()

			_, ok, err := s.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Put(ctx, "a", []byte(`{"n":1}`)))
			require.NoError(t, s.Put(ctx, "b", []byte(`[1,2]`)))
			require.NoError(t, s.Put(ctx, "a", []byte(`{"n":2}`)))

			v, ok, err := s.Get(ctx, "a")
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `{"n":2}`, string(v))

			require.NoError(t, s.Delete(ctx, "a"))
			require.NoError(t, s.Delete(ctx, "a"), "deleting a missing key is fine")
			_, ok, err = s.Get(ctx, "a")
			require.NoError(t, err)
			assert.False(t, ok)

			v, ok, err = s.Get(ctx, "b")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `[1,2]`, string(v))
		})
	}
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", []byte(`"v"`)))
	assert.Error(t, s.Put(ctx, "bad", []byte("not json")))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"v"`, string(v))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, _, err = s.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestSQLiteMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draftsim.db")
	clock := quartz.NewMock(t)
	cfg := DefaultSQLiteConfig(path)
	cfg.Clock = clock

	s, err := OpenSQLite(cfg)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "k", []byte("1")))
	at, err := s.UpdatedAt(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().UnixMilli(), at.UnixMilli())
	_, err = s.UpdatedAt(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Close())

	mgr, err := NewMigrationManager(path)
	require.NoError(t, err)
	defer mgr.Close()
	version, dirty, err := mgr.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
	require.NoError(t, mgr.Up(), "re-running migrations is a no-op")
}

func TestOpen(t *testing.T) {
	logger := log.New(io.Discard)
	dir := t.TempDir()

	for _, b := range []Backend{BackendMemory, BackendFile, BackendSQLite} {
		s, err := Open(b, filepath.Join(dir, string(b)), logger)
		require.NoError(t, err, b)
		require.NoError(t, s.Close())
	}
	_, err := Open("redis", "", logger)
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	err = WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "x"), nil, 0o600)
	assert.Error(t, err)
}

func testCards(n int) []card.Card {
	return card.NewTestCatalog().FrontFaces()[:n]
}

func TestSavedPools(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends() {
		t.Run(bc.name, func(t *testing.T) {
			clock := quartz.NewMock(t)
			pools := NewSavedPools(bc.open(t), clock)

			has, err := pools.Has(ctx)
			require.NoError(t, err)
			assert.False(t, has)
			_, err = pools.Load(ctx)
			assert.ErrorIs(t, err, ErrNotFound)

			pool := testCards(45)
			b := deckbuild.New(pool, nil, nil)
			require.True(t, b.AddToDeck(pool[11].ID))
			require.True(t, b.AddToDeck(pool[12].ID))
			b.AddBasicLand(deckbuild.Island)
			state := b.State()

			require.NoError(t, pools.Save(ctx, pool, PoolDraft, &state, map[string]string{"seats": "8"}))

			got, err := pools.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, pool, got.Pool)
			assert.Equal(t, PoolDraft, got.Type)
			assert.Equal(t, "8", got.Metadata["seats"])
			assert.Equal(t, 3, got.DeckCardCount())
			assert.True(t, clock.Now().UTC().Equal(got.SavedAt))

			restored := got.Builder()
			assert.Len(t, restored.Pool(), 43)
			assert.Equal(t, state.Deck, restored.MainDeck())
			assert.Equal(t, 1, restored.BasicLands()[deckbuild.Island])

			require.NoError(t, pools.Save(ctx, nil, PoolSealed, nil, nil))
			has, err = pools.Has(ctx)
			require.NoError(t, err)
			assert.False(t, has, "saving an empty pool clears")
		})
	}
}

func TestSavedPoolWithoutDeck(t *testing.T) {
	ctx := context.Background()
	pools := NewSavedPools(NewMemoryStore(), quartz.NewMock(t))
	require.NoError(t, pools.Save(ctx, testCards(5), PoolSealed, nil, nil))

	got, err := pools.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Deck)
	assert.Zero(t, got.DeckCardCount())
	assert.Len(t, got.Builder().Pool(), 5)

	require.NoError(t, pools.Clear(ctx))
	_, err = pools.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotes(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends() {
		t.Run(bc.name, func(t *testing.T) {
			clock := quartz.NewMock(t)
			notes := NewNotes(bc.open(t), clock)

			require.NoError(t, notes.Set(ctx, "C001", "  great removal  ", "pick"))
			clock.Advance(time.Minute)
			require.NoError(t, notes.Set(ctx, "A010", "filler", ""))

			n, ok, err := notes.Get(ctx, "C001")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "great removal", n.Text)
			assert.Equal(t, "pick", n.Badge)

			count, err := notes.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			all, err := notes.All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "A010", all[0].CardID)
			assert.True(t, all[0].UpdatedAt.After(all[1].UpdatedAt))

			require.NoError(t, notes.Set(ctx, "A010", "   ", ""))
			_, ok, err = notes.Get(ctx, "A010")
			require.NoError(t, err)
			assert.False(t, ok, "blank text deletes")

			require.NoError(t, notes.Clear(ctx))
			count, err = notes.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestNotesExportImport(t *testing.T) {
	ctx := context.Background()
	src := NewNotes(NewMemoryStore(), quartz.NewMock(t))
	require.NoError(t, src.Set(ctx, "X1", "first", ""))
	require.NoError(t, src.Set(ctx, "X2", "second", "avoid"))

	var buf bytes.Buffer
	require.NoError(t, src.Export(ctx, &buf))

	dst := NewNotes(NewMemoryStore(), quartz.NewMock(t))
	require.NoError(t, dst.Set(ctx, "X2", "local", ""))
	require.NoError(t, dst.Set(ctx, "X3", "keep me", ""))

	n, err := dst.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := dst.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "second", all[1].Text, "imported notes win")
	assert.Equal(t, "keep me", all[2].Text)

	_, err = dst.Import(ctx, strings.NewReader("not json"))
	assert.Error(t, err)
}
