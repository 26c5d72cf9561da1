package domain

import "errors"

// ErrInvalidInput rejects malformed requests
var ErrInvalidInput = errors.New("invalid input")

// Ledger errors
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Benefit errors
var (
	ErrBenefitNotFound    = errors.New("benefit not found")
	ErrBenefitExpired     = errors.New("benefit has expired")
	ErrBenefitNotEligible = errors.New("benefit not available for member tier")
)

// Complaint errors
var (
	ErrComplaintNotFound = errors.New("complaint not found")
)

// Store errors
var (
	// ErrRecordAbsent means the collection key has never been written
	ErrRecordAbsent = errors.New("record absent")
	// ErrRecordCorrupt means the stored collection could not be decoded
	ErrRecordCorrupt = errors.New("record corrupt")
	// ErrStoreConflict means compare-and-swap retries were exhausted
	ErrStoreConflict = errors.New("store write conflict")
)
