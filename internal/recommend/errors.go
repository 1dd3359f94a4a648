// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownUser is matched by every *UnknownUserError via errors.Is.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidTopN is returned for a negative result size.
	ErrInvalidTopN = errors.New("top-n must not be negative")
)

// UnknownUserError reports a target user absent from the rating store.
type UnknownUserError struct {
	User string
}

// Error implements the error interface.
func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("user %q not found", e.User)
}

// Is reports whether target is ErrUnknownUser.
func (e *UnknownUserError) Is(target error) bool {
	return target == ErrUnknownUser
}
