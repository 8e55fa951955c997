package leaderboard

import (
	"encoding/json"
	"math"
	"strings"
	"unicode/utf8"
)

// Validate checks an untrusted submission and returns the normalized entry
// (nickname trimmed, score and date as sent, ID unset).
//
// Checks run in order and the first failure is reported:
//  1. nickname, score and date present with the right types (MissingField)
//  2. trimmed nickname length within [NicknameMin, NicknameMax] (NicknameLengthInvalid)
//  3. score within [ScoreMin, ScoreMax] (ScoreOutOfRange)
func Validate(p Payload) (ScoreEntry, error) {
	nickname, ok := p["nickname"].(string)
	if !ok || nickname == "" {
		return ScoreEntry{}, newValidationError(MissingField)
	}
	score, ok := intValue(p["score"])
	if !ok {
		return ScoreEntry{}, newValidationError(MissingField)
	}
	date, ok := p["date"].(string)
	if !ok || date == "" {
		return ScoreEntry{}, newValidationError(MissingField)
	}

	nickname = strings.TrimSpace(nickname)
	if n := utf8.RuneCountInString(nickname); n < NicknameMin || n > NicknameMax {
		return ScoreEntry{}, newValidationError(NicknameLengthInvalid)
	}
	if score < ScoreMin || score > ScoreMax {
		return ScoreEntry{}, newValidationError(ScoreOutOfRange)
	}
	return ScoreEntry{Nickname: nickname, Score: score, Date: date}, nil
}

// intValue accepts the numeric shapes a decoded payload can carry. Only
// integral values count; magnitudes past int32 are clamped so they still
// fail the range check instead of overflowing.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return clamp(float64(n)), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return clamp(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return clamp(float64(i)), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return intValue(f)
	}
	return 0, false
}

func clamp(f float64) int {
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}
