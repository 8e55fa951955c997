package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/robalobadob/associa/internal/leaderboard"
)

// Keys shared with the browser build of the game.
const (
	ScoresKey    = "associa-scores"
	LastResetKey = "last-reset-date"
)

// Repository exposes a Storage as a leaderboard.Repository so the client can
// run the same Core offline. Scores and the last-reset day are two
// independent keys and are written one after the other.
type Repository struct {
	st Storage
}

// NewRepository wraps st.
func NewRepository(st Storage) *Repository {
	return &Repository{st: st}
}

// Load returns leaderboard.ErrNotFound only when neither key exists. A missing
// last-reset key alone yields an empty LastReset, which the Core resets.
func (r *Repository) Load(ctx context.Context) (*leaderboard.Data, error) {
	rawScores, hasScores, err := r.st.GetItem(ScoresKey)
	if err != nil {
		return nil, err
	}
	last, hasLast, err := r.st.GetItem(LastResetKey)
	if err != nil {
		return nil, err
	}
	if !hasScores && !hasLast {
		return nil, leaderboard.ErrNotFound
	}

	d := &leaderboard.Data{Scores: []leaderboard.ScoreEntry{}, Settings: leaderboard.Settings{LastReset: last}}
	if hasScores && rawScores != "" {
		if err := json.Unmarshal([]byte(rawScores), &d.Scores); err != nil {
			return nil, fmt.Errorf("decode %s: %w", ScoresKey, err)
		}
	}
	return d, nil
}

// Save writes the scores array, then the last-reset day.
func (r *Repository) Save(ctx context.Context, d *leaderboard.Data) error {
	scores := d.Scores
	if scores == nil {
		scores = []leaderboard.ScoreEntry{}
	}
	b, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	if err := r.st.SetItem(ScoresKey, string(b)); err != nil {
		return err
	}
	return r.st.SetItem(LastResetKey, d.Settings.LastReset)
}
