package application

import "errors"

var (
	ErrRemoteFetchFailed = errors.New("remote fetch failed")
	ErrRemoteWriteFailed = errors.New("remote write failed")
	ErrActionInFlight    = errors.New("an action is already being persisted")
	ErrNoCurrentItem     = errors.New("no item to evaluate")
	ErrSessionNotReady   = errors.New("review session is not ready")
)
