package catalog

import (
	"errors"
	"testing"
	"time"
)

func TestParseCompactTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectTime  time.Time
		expectError bool
	}{
		{
			name:       "midnight new year",
			input:      "20240101000000",
			expectTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "mid-day acquisition",
			input:      "20230615120000",
			expectTime: time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:       "leap day",
			input:      "20240229235959",
			expectTime: time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		},
		{
			name:        "13 characters",
			input:       "2024010100000",
			expectError: true,
		},
		{
			name:        "15 characters",
			input:       "202401010000000",
			expectError: true,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "invalid month",
			input:       "20241301000000",
			expectError: true,
		},
		{
			name:        "invalid day does not wrap",
			input:       "20230230000000",
			expectError: true,
		},
		{
			name:        "invalid hour",
			input:       "20230615250000",
			expectError: true,
		},
		{
			name:        "non-numeric",
			input:       "2023junk150405",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseCompactTime(tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got %v", result)
				}
				if !errors.Is(err, ErrMalformedTimestamp) {
					t.Errorf("expected ErrMalformedTimestamp, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.Equal(tt.expectTime) {
				t.Errorf("expected %v, got %v", tt.expectTime, result)
			}
			if result.Location() != time.UTC {
				t.Errorf("expected UTC location, got %v", result.Location())
			}
		})
	}
}
