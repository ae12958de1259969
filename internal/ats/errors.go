package ats

import "errors"

var (
	// ErrInvalidInput is returned for an empty or whitespace-only résumé or job description.
	ErrInvalidInput = errors.New("invalid input: résumé and job description must not be empty")

	// ErrEmptyKeywordSet is returned when no keywords can be extracted from the job.
	ErrEmptyKeywordSet = errors.New("job description has no extractable keywords")

	// ErrInputTooLarge is returned when an input exceeds the analyzer's rune limit.
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
)
