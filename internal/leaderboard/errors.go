package leaderboard

import "errors"

// ErrNotFound is returned by a Repository when no document exists yet.
var ErrNotFound = errors.New("leaderboard: document not found")

// Kind classifies a rejected submission.
type Kind string

const (
	MissingField          Kind = "missing_field"
	NicknameLengthInvalid Kind = "nickname_length_invalid"
	ScoreOutOfRange       Kind = "score_out_of_range"
)

var kindMessages = map[Kind]string{
	MissingField:          "Invalid data: nickname, score and date are required.",
	NicknameLengthInvalid: "Nickname must be between 2 and 20 characters.",
	ScoreOutOfRange:       "Score must be between 0 and 100.",
}

// ValidationError is a client-caused rejection. Its message is safe to show
// to players as-is.
type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(k Kind) *ValidationError {
	return &ValidationError{Kind: k, Message: kindMessages[k]}
}

// StorageError wraps a failure reading or writing the persisted document.
type StorageError struct {
	Op  string // "load", "create", "reset" or "save"
	Err error
}

func (e *StorageError) Error() string { return "leaderboard: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
