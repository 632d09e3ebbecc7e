// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package mediasoup

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNoMatchingCodec is matched by every NoMatchingCodecError.
	ErrNoMatchingCodec = errors.New("no matching codec")

	// ErrSectionNotFound is matched by every SectionNotFoundError.
	ErrSectionNotFound = errors.New("media section not found")

	// ErrMalformedSimulcast is matched by every MalformedSimulcastError.
	ErrMalformedSimulcast = errors.New("malformed simulcast input")

	// ErrMissingFingerprint indicates DTLS parameters carry no certificate
	// fingerprint.
	ErrMissingFingerprint = errors.New("missing DTLS fingerprint")
)

// ValidationError indicates a malformed capability or parameter value. It
// names the offending field; validation never repairs anything beyond the
// documented defaults.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NoMatchingCodecError indicates a requested codec has no compatible
// counterpart in the offered codec list. Fatal to the send attempt that
// triggered it.
type NoMatchingCodecError struct {
	MimeType string
}

func (e *NoMatchingCodecError) Error() string {
	return fmt.Sprintf("no matching codec for %q", e.MimeType)
}

func (e *NoMatchingCodecError) Unwrap() error {
	return ErrNoMatchingCodec
}

// SectionNotFoundError indicates an operation named a mid the session does
// not track.
type SectionNotFoundError struct {
	Mid string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("media section not found for mid %q", e.Mid)
}

func (e *SectionNotFoundError) Unwrap() error {
	return ErrSectionNotFound
}

// MalformedSimulcastError indicates simulcast SSRC synthesis was asked of a
// media section that cannot support it.
type MalformedSimulcastError struct {
	Reason string
}

func (e *MalformedSimulcastError) Error() string {
	return fmt.Sprintf("malformed simulcast input: %s", e.Reason)
}

func (e *MalformedSimulcastError) Unwrap() error {
	return ErrMalformedSimulcast
}
