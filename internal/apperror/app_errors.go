package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// MessageSessionFinished is the backend message for a game request against a closed session.
const MessageSessionFinished = "Game session is finished"

var (
	ErrMoveInFlight      = errors.New("move submission already in progress")
	ErrNotAuthorized     = errors.New("access token is missing")
	ErrNoActiveGames     = errors.New("no unfinished games")
	ErrMalformedResponse = errors.New("backend answer could not be decoded")
)

// ResponseError is a non-success answer from the game backend.
type ResponseError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (that *ResponseError) Error() string {
	if that.Message == "" {
		return fmt.Sprintf("backend responded %d %s", that.StatusCode, http.StatusText(that.StatusCode))
	}

	return fmt.Sprintf("backend responded %d: %s", that.StatusCode, that.Message)
}

// IsConflict reports whether the backend encoded a recoverable conflict.
func (that *ResponseError) IsConflict() bool {
	return that.StatusCode == http.StatusBadRequest
}

// AsResponseError unwraps err into a backend response error, if it is one.
func AsResponseError(err error) (*ResponseError, bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}

	return nil, false
}

// IsSessionFinished reports whether err is the backend's finished-session answer.
func IsSessionFinished(err error) bool {
	respErr, ok := AsResponseError(err)

	return ok && respErr.Message == MessageSessionFinished
}
