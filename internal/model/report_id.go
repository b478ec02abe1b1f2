package model

import (
	"errors"
	"regexp"
	"time"
)

// ReportID errors.
var (
	// ErrInvalidReportID is returned when the identifier format is invalid.
	ErrInvalidReportID = errors.New("invalid report identifier format (want YYYYMMDD-HHMMSS)")
	// ErrEmptyReportID is returned when the identifier is empty.
	ErrEmptyReportID = errors.New("report identifier cannot be empty")
)

// reportIDTimeLayout is the time layout encoded in a report identifier.
const reportIDTimeLayout = "20060102-150405"

// reportIDPattern matches a complete report identifier: eight digits,
// a hyphen, six digits. Anchored because a ReportID is the whole token,
// not a substring search.
var reportIDPattern = regexp.MustCompile(`^\d{8}-\d{6}$`)

// ReportID is a report timestamp identifier in YYYYMMDD-HHMMSS form.
// The fixed-width digit layout means lexicographic ordering of valid
// identifiers equals chronological ordering, so sorted output is
// oldest-first without parsing.
type ReportID string

// ParseReportID validates s and returns it as a ReportID.
// It returns an error if s is empty or does not match the
// YYYYMMDD-HHMMSS shape.
func ParseReportID(s string) (ReportID, error) {
	if s == "" {
		return "", ErrEmptyReportID
	}
	if !reportIDPattern.MatchString(s) {
		return "", ErrInvalidReportID
	}
	return ReportID(s), nil
}

// IsValid reports whether the identifier matches the YYYYMMDD-HHMMSS shape.
func (id ReportID) IsValid() bool {
	return reportIDPattern.MatchString(string(id))
}

// String returns the identifier as a plain string.
func (id ReportID) String() string {
	return string(id)
}

// Time decodes the identifier's timestamp in UTC.
// Identifiers that match the digit shape but encode an impossible
// date (e.g. month 13) return an error here even though IsValid
// accepts them; shape and calendar validity are separate concerns.
func (id ReportID) Time() (time.Time, error) {
	t, err := time.Parse(reportIDTimeLayout, string(id))
	if err != nil {
		return time.Time{}, ErrInvalidReportID
	}
	return t, nil
}
