// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package namedetect

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLanguage is returned for languages without a strategy.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Collaborator names used in CollaboratorError.
const (
	CollaboratorTagger  = "tagger"
	CollaboratorMatcher = "matcher"
)

// CollaboratorError wraps a failure raised by the tagger or the matcher.
// Detection never retries or falls back across these.
type CollaboratorError struct {
	Collaborator string
	Operation    string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Collaborator, e.Operation, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsCollaboratorError reports whether err came from a collaborator.
func IsCollaboratorError(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}

func taggerError(err error) error {
	return &CollaboratorError{Collaborator: CollaboratorTagger, Operation: "tag", Err: err}
}

func matcherError(err error) error {
	return &CollaboratorError{Collaborator: CollaboratorMatcher, Operation: "match", Err: err}
}
