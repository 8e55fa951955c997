// internal/client/gateway.go
//
// Gateway is the only leaderboard API game and result screens use.
// It tries the remote server first and degrades to a local Core backed by
// local storage when the remote call fails for any reason.
//
// Notes:
//   - Remote failures are logged and swallowed; callers only ever see the
//     local outcome.
//   - Local and remote boards are never reconciled. A score saved during an
//     outage stays local.

package client

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/associa/internal/leaderboard"
)

// Backend is the remote half of the gateway.
type Backend interface {
	ListTop(ctx context.Context) ([]leaderboard.ScoreEntry, error)
	Submit(ctx context.Context, s leaderboard.Submission) (leaderboard.ScoreEntry, error)
}

// Source tells which store answered a gateway call.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Result is the outcome of a save.
type Result struct {
	Entry  leaderboard.ScoreEntry
	Source Source
}

// Gateway combines a remote Backend with a local fallback Core.
type Gateway struct {
	remote Backend
	local  *leaderboard.Core
}

// NewGateway builds a Gateway. remote may be nil for offline-only use.
func NewGateway(remote Backend, local *leaderboard.Core) *Gateway {
	return &Gateway{remote: remote, local: local}
}

// GetScores returns today's top scores. The error is non-nil only when the
// local fallback fails as well.
func (g *Gateway) GetScores(ctx context.Context) ([]leaderboard.ScoreEntry, Source, error) {
	if g.remote != nil {
		top, err := g.remote.ListTop(ctx)
		if err == nil {
			return top, SourceRemote, nil
		}
		log.Warn().Err(err).Msg("fetching scores failed, using local fallback")
	}
	top, err := g.local.ListTop(ctx, leaderboard.TopSize)
	if err != nil {
		log.Error().Err(err).Msg("local scores unavailable")
		return []leaderboard.ScoreEntry{}, SourceLocal, err
	}
	return top, SourceLocal, nil
}

// Save submits s remotely, or locally when the remote call fails or reports
// a non-success status. The returned error comes from the local Core: a
// *leaderboard.ValidationError with a player-facing message, or a storage
// failure.
func (g *Gateway) Save(ctx context.Context, s leaderboard.Submission) (Result, error) {
	if g.remote != nil {
		entry, err := g.remote.Submit(ctx, s)
		if err == nil {
			return Result{Entry: entry, Source: SourceRemote}, nil
		}
		var ne *NetworkError
		if errors.As(err, &ne) && ne.Status != 0 {
			log.Warn().Int("status", ne.Status).Str("message", ne.Message).Msg("saving score rejected remotely, using local fallback")
		} else {
			log.Warn().Err(err).Msg("saving score failed, using local fallback")
		}
	}
	entry, err := g.local.Submit(ctx, s.Payload())
	if err != nil {
		return Result{Source: SourceLocal}, err
	}
	return Result{Entry: entry, Source: SourceLocal}, nil
}

// SaveScore is Save reduced to success/failure.
func (g *Gateway) SaveScore(ctx context.Context, s leaderboard.Submission) bool {
	_, err := g.Save(ctx, s)
	if err != nil && !leaderboard.IsValidation(err) {
		log.Error().Err(err).Msg("saving score locally failed")
	}
	return err == nil
}
