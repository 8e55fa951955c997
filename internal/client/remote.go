// internal/client/remote.go
//
// HTTP client for the leaderboard server (GET/POST /scores).
// Every failure, whether transport, decoding or a non-2xx status, is
// reported as a *NetworkError so the gateway can fall back uniformly.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/robalobadob/associa/internal/leaderboard"
)

// NetworkError is a failed remote call as seen by the client.
type NetworkError struct {
	Op      string // "list" or "submit"
	Status  int    // HTTP status, 0 for transport errors
	Message string // server {"error"} message, if any
	Err     error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil:
		return "remote " + e.Op + ": " + e.Err.Error()
	case e.Message != "":
		return fmt.Sprintf("remote %s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("remote %s: status %d", e.Op, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Remote talks to one leaderboard server.
type Remote struct {
	base string
	http *http.Client
}

// NewRemote returns a client for baseURL (e.g. "http://localhost:5175").
// timeout bounds each request, including reading the body.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	return &Remote{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// ListTop fetches GET /scores.
func (r *Remote) ListTop(ctx context.Context) ([]leaderboard.ScoreEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.base+"/scores", nil)
	if err != nil {
		return nil, &NetworkError{Op: "list", Err: err}
	}
	var out []leaderboard.ScoreEntry
	if err := r.do(req, "list", http.StatusOK, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []leaderboard.ScoreEntry{}
	}
	return out, nil
}

// Submit posts a score to POST /scores and returns the created entry.
func (r *Remote) Submit(ctx context.Context, s leaderboard.Submission) (leaderboard.ScoreEntry, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return leaderboard.ScoreEntry{}, &NetworkError{Op: "submit", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/scores", bytes.NewReader(body))
	if err != nil {
		return leaderboard.ScoreEntry{}, &NetworkError{Op: "submit", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var entry leaderboard.ScoreEntry
	if err := r.do(req, "submit", http.StatusCreated, &entry); err != nil {
		return leaderboard.ScoreEntry{}, err
	}
	return entry, nil
}

func (r *Remote) do(req *http.Request, op string, want int, out any) error {
	res, err := r.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != want {
		ne := &NetworkError{Op: op, Status: res.StatusCode}
		var eb struct {
			Error string `json:"error"`
		}
		if b, err := io.ReadAll(io.LimitReader(res.Body, 4<<10)); err == nil && json.Unmarshal(b, &eb) == nil {
			ne.Message = eb.Error
		}
		return ne
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Status: res.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
