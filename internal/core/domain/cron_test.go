package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reinhard/internal/core/domain"
)

func TestParseCron_Invalid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "Too Few Fields", expr: "0 12 1 *"},
		{name: "Too Many Fields", expr: "0 12 1 * * *"},
		{name: "Minute Out Of Range", expr: "60 12 1 * *"},
		{name: "Month Out Of Range", expr: "0 12 1 13 *"},
		{name: "Bad Step", expr: "*/0 * * * *"},
		{name: "Reversed Range", expr: "30-10 * * * *"},
		{name: "Not A Number", expr: "x 12 1 * *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseCron(tt.expr)
			require.ErrorIs(t, err, domain.ErrInvalidCronSpec)
		})
	}
}

func TestCronSpec_Matches(t *testing.T) {
	tests := []struct {
		name string
		expr string
		at   time.Time
		want bool
	}{
		{
			name: "Monthly Upgrade Fires",
			expr: "0 12 1 * *",
			at:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "Monthly Upgrade Wrong Day",
			expr: "0 12 1 * *",
			at:   time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "Monthly Upgrade Wrong Minute",
			expr: "0 12 1 * *",
			at:   time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "Step Field",
			expr: "*/15 * * * *",
			at:   time.Date(2024, 3, 1, 9, 45, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "Sunday Alias",
			expr: "0 0 * * 7",
			at:   time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), // a Sunday
			want: true,
		},
		{
			name: "Either Day Field When Both Restricted",
			expr: "0 0 15 * 1",
			at:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), // a Monday, not the 15th
			want: true,
		},
		{
			name: "Neither Day Field",
			expr: "0 0 15 * 1",
			at:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), // a Tuesday, not the 15th
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := domain.ParseCron(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Matches(tt.at))
		})
	}
}

func TestCronSpec_Next(t *testing.T) {
	spec, err := domain.ParseCron("0 12 1 * *")
	require.NoError(t, err)

	tests := []struct {
		name  string
		after time.Time
		want  time.Time
	}{
		{
			name:  "Mid Month Rolls Over",
			after: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "Same Day Before Noon",
			after: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "Exactly At Fire Time Is Strict",
			after: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "Year Rollover",
			after: time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spec.Next(tt.after))
		})
	}
}

func TestCronSpec_String(t *testing.T) {
	spec, err := domain.ParseCron("  0 12   1 * *  ")
	require.NoError(t, err)
	assert.Equal(t, "0 12 1 * *", spec.String())
}
