// internal/leaderboard/types.go
//
// Core type definitions for the daily leaderboard.
// Defines:
//   - ScoreEntry: a single submitted score.
//   - Data: the whole persisted document (scores + settings).
//   - Payload / Submission: untrusted client input.

package leaderboard

const (
	// TopSize is the maximum number of entries a board view returns.
	TopSize = 10

	NicknameMin = 2
	NicknameMax = 20
	ScoreMin    = 0
	ScoreMax    = 100
)

// ScoreEntry is one row of the board.
type ScoreEntry struct {
	ID       int    `json:"id"`       // Assigned by the Core (max existing + 1).
	Nickname string `json:"nickname"` // Trimmed, 2–20 characters.
	Score    int    `json:"score"`    // 0–100.
	Date     string `json:"date"`     // ISO-8601, set by the submitting client.
}

// Settings holds board-wide metadata.
type Settings struct {
	LastReset string `json:"lastReset"` // Calendar day of the last reset, see DayKey.
}

// Data is the persisted leaderboard document. Scores are kept in insertion
// order; sorting happens in the read view.
type Data struct {
	Scores   []ScoreEntry `json:"scores"`
	Settings Settings     `json:"settings"`
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := &Data{Settings: d.Settings, Scores: make([]ScoreEntry, len(d.Scores))}
	copy(out.Scores, d.Scores)
	return out
}

// Payload is a decoded, unvalidated JSON submission body.
type Payload map[string]any

// Submission is the typed shape clients send. Its ID is never sent.
type Submission struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
	Date     string `json:"date"`
}

// Payload converts s into the untyped form accepted by Validate.
func (s Submission) Payload() Payload {
	return Payload{"nickname": s.Nickname, "score": s.Score, "date": s.Date}
}
