package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/associa/internal/leaderboard"
)

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "associa", "localstorage.json")
	st := NewFile(path)

	_, ok, err := st.GetItem("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.SetItem("a", "1"))
	require.NoError(t, st.SetItem("b", "two"))

	v, ok, err := NewFile(path).GetItem("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"1","b":"two"}`, string(b))
}

func TestFileStorageCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localstorage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, _, err := NewFile(path).GetItem(ScoresKey)
	assert.Error(t, err)
}

func TestRepositoryKeys(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	repo := NewRepository(st)

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, leaderboard.ErrNotFound)

	require.NoError(t, repo.Save(ctx, &leaderboard.Data{
		Scores:   []leaderboard.ScoreEntry{{ID: 1, Nickname: "Cy", Score: 10, Date: "2024-01-01T00:00:00Z"}},
		Settings: leaderboard.Settings{LastReset: "Wed Oct 14 2026"},
	}))

	raw, ok, _ := st.GetItem(ScoresKey)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1,"nickname":"Cy","score":10,"date":"2024-01-01T00:00:00Z"}]`, raw)
	last, ok, _ := st.GetItem(LastResetKey)
	require.True(t, ok)
	assert.Equal(t, "Wed Oct 14 2026", last)
}

func TestRepositoryReadsLegacyEntries(t *testing.T) {
	st := NewMemory()
	// entries written by older clients carry no id
	require.NoError(t, st.SetItem(ScoresKey, `[{"nickname":"Cy","score":10,"date":"d"},{"nickname":"Di","score":7,"date":"d"}]`))

	d, err := NewRepository(st).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Scores, 2)
	assert.Empty(t, d.Settings.LastReset)
}

func TestLocalCoreResetsOnMissingDay(t *testing.T) {
	st := NewMemory()
	require.NoError(t, st.SetItem(ScoresKey, `[{"id":1,"nickname":"Cy","score":10,"date":"d"}]`))
	now := time.Date(2026, time.October, 14, 8, 0, 0, 0, time.UTC)
	core := leaderboard.New(NewRepository(st), leaderboard.WithClock(func() time.Time { return now }))

	top, err := core.ListTop(context.Background(), leaderboard.TopSize)
	require.NoError(t, err)
	assert.Empty(t, top)

	raw, _, _ := st.GetItem(ScoresKey)
	assert.Equal(t, "[]", raw)
	last, _, _ := st.GetItem(LastResetKey)
	assert.Equal(t, "Wed Oct 14 2026", last)
}
