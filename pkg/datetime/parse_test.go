package datetime

import (
	"testing"
	"time"
)

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
		wantErr  bool
	}{
		{"Next month", "2026-10", 1, "2026-11", false},
		{"Year rollover", "2026-12", 1, "2027-01", false},
		{"Three years", "2026-10", 36, "2029-10", false},
		{"Backwards", "2026-01", -1, "2025-12", false},
		{"Zero offset", "2026-05", 0, "2026-05", false},
		{"Invalid date", "2026/05", 1, "2026/05", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OffsetDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if result != tt.expected {
				t.Errorf("OffsetDate(%s, %d) = %s, expected %s", tt.date, tt.months, result, tt.expected)
			}
		})
	}
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	if got := CurrentMonth(now); got != "2026-10" {
		t.Errorf("CurrentMonth() = %s, expected 2026-10", got)
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		start, end string
		expected   int
	}{
		{"2026-10", "2029-10", 36},
		{"2026-10", "2026-10", 0},
		{"2026-10", "2027-01", 3},
		{"2027-01", "2026-10", -3},
	}

	for _, tt := range tests {
		got, err := MonthsBetween(tt.start, tt.end)
		if err != nil {
			t.Fatalf("MonthsBetween(%s, %s) error = %v", tt.start, tt.end, err)
		}
		if got != tt.expected {
			t.Errorf("MonthsBetween(%s, %s) = %d, expected %d", tt.start, tt.end, got, tt.expected)
		}
	}

	if _, err := MonthsBetween("bad", "2026-10"); err == nil {
		t.Error("expected error for invalid start date")
	}
}
