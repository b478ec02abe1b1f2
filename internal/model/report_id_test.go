package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseReportID(t *testing.T) {
	t.Parallel()

	t.Run("valid identifier", func(t *testing.T) {
		t.Parallel()

		id, err := ParseReportID("20260205-225448")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.String() != "20260205-225448" {
			t.Errorf("expected '20260205-225448', got %q", id.String())
		}
	})

	t.Run("empty identifier returns ErrEmptyReportID", func(t *testing.T) {
		t.Parallel()

		_, err := ParseReportID("")
		if !errors.Is(err, ErrEmptyReportID) {
			t.Errorf("expected ErrEmptyReportID, got %v", err)
		}
	})

	t.Run("malformed identifiers return ErrInvalidReportID", func(t *testing.T) {
		t.Parallel()

		malformed := []string{
			"2026025-225448",       // seven date digits
			"20260205-22544",       // five time digits
			"20260205_225448",      // wrong separator
			"20260205-225448x",     // trailing garbage
			"report-20260205-2254", // prefix not stripped
			"abcdefgh-ijklmn",      // non-digits
		}
		for _, s := range malformed {
			if _, err := ParseReportID(s); !errors.Is(err, ErrInvalidReportID) {
				t.Errorf("ParseReportID(%q): expected ErrInvalidReportID, got %v", s, err)
			}
		}
	})
}

func TestReportIDIsValid(t *testing.T) {
	t.Parallel()

	if !ReportID("20260301-010101").IsValid() {
		t.Error("expected '20260301-010101' to be valid")
	}
	if ReportID("20260301").IsValid() {
		t.Error("expected '20260301' to be invalid")
	}
}

func TestReportIDTime(t *testing.T) {
	t.Parallel()

	t.Run("decodes timestamp in UTC", func(t *testing.T) {
		t.Parallel()

		got, err := ReportID("20260205-225448").Time()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 2, 5, 22, 54, 48, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("impossible calendar date returns error", func(t *testing.T) {
		t.Parallel()

		// Matches the digit shape but month 13 does not exist.
		if _, err := ReportID("20261301-000000").Time(); !errors.Is(err, ErrInvalidReportID) {
			t.Errorf("expected ErrInvalidReportID, got %v", err)
		}
	})
}

func TestReportIDOrdering(t *testing.T) {
	t.Parallel()

	// Lexicographic comparison must equal chronological comparison
	// for the fixed-width layout.
	older := ReportID("20260205-225448")
	newer := ReportID("20260301-010101")
	if !(older < newer) {
		t.Error("expected lexicographic order to match chronological order")
	}
}
