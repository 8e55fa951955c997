package leaderboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Kind
}

func TestValidateAcceptsAndNormalizes(t *testing.T) {
	e, err := Validate(Payload{"nickname": "  Al  ", "score": float64(42), "date": "2024-01-01T00:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, ScoreEntry{Nickname: "Al", Score: 42, Date: "2024-01-01T00:00:00Z"}, e)
}

func TestValidateMissingFields(t *testing.T) {
	cases := map[string]Payload{
		"nil payload":      nil,
		"no nickname":      {"score": 1, "date": "d"},
		"empty nickname":   {"nickname": "", "score": 1, "date": "d"},
		"nickname number":  {"nickname": 12, "score": 1, "date": "d"},
		"no score":         {"nickname": "Al", "date": "d"},
		"score string":     {"nickname": "Al", "score": "42", "date": "d"},
		"score fractional": {"nickname": "Al", "score": 4.5, "date": "d"},
		"score null":       {"nickname": "Al", "score": nil, "date": "d"},
		"no date":          {"nickname": "Al", "score": 1},
		"date number":      {"nickname": "Al", "score": 1, "date": 5},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(p)
			assert.Equal(t, MissingField, kindOf(t, err))
		})
	}
}

func TestValidateNicknameLength(t *testing.T) {
	for _, nick := range []string{"A", "  B  ", " ", "abcdefghijklmnopqrstu"} {
		_, err := Validate(Payload{"nickname": nick, "score": 50, "date": "d"})
		assert.Equal(t, NicknameLengthInvalid, kindOf(t, err), "nickname %q", nick)
	}
	for _, nick := range []string{"Al", "abcdefghijklmnopqrst", "Zé", "  ção  "} {
		_, err := Validate(Payload{"nickname": nick, "score": 50, "date": "d"})
		assert.NoError(t, err, "nickname %q", nick)
	}
}

func TestValidateNicknameCheckedBeforeScore(t *testing.T) {
	_, err := Validate(Payload{"nickname": "A", "score": 500, "date": "d"})
	assert.Equal(t, NicknameLengthInvalid, kindOf(t, err))
}

func TestValidateScoreRange(t *testing.T) {
	for _, s := range []any{-1, 101, float64(-1), float64(101), 1e300, json.Number("101")} {
		_, err := Validate(Payload{"nickname": "Al", "score": s, "date": "d"})
		assert.Equal(t, ScoreOutOfRange, kindOf(t, err), "score %v", s)
	}
	for _, s := range []any{0, 100, float64(0), float64(100), json.Number("100"), json.Number("7.0")} {
		_, err := Validate(Payload{"nickname": "Al", "score": s, "date": "d"})
		assert.NoError(t, err, "score %v", s)
	}
}

func TestValidationMessages(t *testing.T) {
	_, err := Validate(Payload{"nickname": "A", "score": 1, "date": "d"})
	assert.EqualError(t, err, "Nickname must be between 2 and 20 characters.")
	assert.True(t, IsValidation(err))
}
