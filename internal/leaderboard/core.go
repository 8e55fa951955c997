// internal/leaderboard/core.go
//
// Leaderboard Core: orchestrates the daily reset policy, the validator and a
// Repository. The same Core serves the HTTP server (file/SQL backends) and the
// client's offline fallback (local storage backend).
//
// Notes:
//   - Every operation first loads the document and applies the daily reset.
//     A reset costs exactly one Save; an unchanged day costs none.
//   - Raw storage is unbounded. The TopSize cap is applied in the ListTop view
//     so that max(id)+1 never reissues an id.
//   - There is no locking: each operation is a read-modify-write and two
//     concurrent submissions may be assigned the same id.

package leaderboard

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// Repository loads and saves the whole leaderboard document.
// Load returns ErrNotFound when nothing has been stored yet.
type Repository interface {
	Load(ctx context.Context) (*Data, error)
	Save(ctx context.Context, d *Data) error
}

// Core implements list/submit/settings over a Repository.
type Core struct {
	repo Repository
	now  func() time.Time
}

// Option configures a Core.
type Option func(*Core)

// WithClock overrides time.Now. The returned time's location decides which
// calendar day the board belongs to.
func WithClock(now func() time.Time) Option {
	return func(c *Core) { c.now = now }
}

// New constructs a Core over repo.
func New(repo Repository, opts ...Option) *Core {
	c := &Core{repo: repo, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListTop returns at most n entries sorted by score, highest first, keeping
// insertion order among ties. n outside (0, TopSize] means TopSize.
func (c *Core) ListTop(ctx context.Context, n int) ([]ScoreEntry, error) {
	d, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return Top(d.Scores, n), nil
}

// Submit validates p, assigns the next id, appends the entry and persists the
// document. Validation failures return a *ValidationError and write nothing.
func (c *Core) Submit(ctx context.Context, p Payload) (ScoreEntry, error) {
	d, err := c.load(ctx)
	if err != nil {
		return ScoreEntry{}, err
	}
	entry, err := Validate(p)
	if err != nil {
		return ScoreEntry{}, err
	}
	entry.ID = NextID(d.Scores)
	d.Scores = append(d.Scores, entry)
	if err := c.repo.Save(ctx, d); err != nil {
		return ScoreEntry{}, &StorageError{Op: "save", Err: err}
	}
	log.Debug().Int("id", entry.ID).Str("nickname", entry.Nickname).Int("score", entry.Score).Msg("score saved")
	return entry, nil
}

// Settings returns the board settings after the daily reset check.
func (c *Core) Settings(ctx context.Context) (Settings, error) {
	d, err := c.load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return d.Settings, nil
}

// load fetches the document, creating it on first access and applying the
// daily reset.
func (c *Core) load(ctx context.Context) (*Data, error) {
	now := c.now()
	d, err := c.repo.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		d = &Data{Scores: []ScoreEntry{}, Settings: Settings{LastReset: DayKey(now)}}
		if err := c.repo.Save(ctx, d); err != nil {
			return nil, &StorageError{Op: "create", Err: err}
		}
		log.Info().Str("lastReset", d.Settings.LastReset).Msg("leaderboard created")
		return d, nil
	case err != nil:
		return nil, &StorageError{Op: "load", Err: err}
	}

	if d.Scores == nil {
		d.Scores = []ScoreEntry{}
	}
	previous := d.Settings.LastReset
	if ApplyReset(d, now) {
		if err := c.repo.Save(ctx, d); err != nil {
			return nil, &StorageError{Op: "reset", Err: err}
		}
		log.Info().Str("from", previous).Str("to", d.Settings.LastReset).Msg("daily reset")
	}
	return d, nil
}

// Top returns a sorted, truncated copy of scores; the input is not modified.
func Top(scores []ScoreEntry, n int) []ScoreEntry {
	if n <= 0 || n > TopSize {
		n = TopSize
	}
	out := make([]ScoreEntry, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// NextID returns max(existing ids)+1, or 1 for an empty board.
func NextID(scores []ScoreEntry) int {
	highest := 0
	for _, s := range scores {
		if s.ID > highest {
			highest = s.ID
		}
	}
	return highest + 1
}
