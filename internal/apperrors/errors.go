// Package apperrors holds the error taxonomy shared by the upstream clients,
// the sync pipeline and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrUserDenied is wrapped by an AuthError when the CRM user is not on the allow-list.
var ErrUserDenied = errors.New("user not authorized to run the sync")

// AuthError is a token exchange or user authorization failure. Fatal to the request.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError is a failed or malformed listing/counting call. Fatal to the sync.
type UpstreamError struct {
	Op     string
	Status int // 0 when no response was received
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MappingError marks a source record that cannot be mapped. The record is skipped.
type MappingError struct {
	RecordID string
	Field    string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("record %s: missing %s", e.RecordID, e.Field)
}

// WriteError is a CRM create/update answered with status >= 400. The sync continues.
type WriteError struct {
	Op     string // "create" or "update"
	Status int
	Body   string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s failed: %d %s", e.Op, e.Status, e.Body)
}

// IsDenied reports whether err is an authorization denial
func IsDenied(err error) bool { return errors.Is(err, ErrUserDenied) }

// IsAuth reports whether err carries an AuthError
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsUpstream reports whether err carries an UpstreamError
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
