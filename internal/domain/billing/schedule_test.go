package billing

import (
	"testing"
	"time"

	"github.com/praxishq/praxis-api/internal/domain/enum"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsForFrequency(t *testing.T) {
	three := 3
	zero := 0

	tests := []struct {
		name         string
		frequency    enum.Frequency
		customMonths *int
		want         int
	}{
		{"monthly", enum.FrequencyMonthly, nil, 1},
		{"quarterly", enum.FrequencyQuarterly, nil, 3},
		{"semi-annual", enum.FrequencySemiAnnual, nil, 6},
		{"annual", enum.FrequencyAnnual, nil, 12},
		{"custom with months", enum.FrequencyCustom, &three, 3},
		{"custom without months defaults to 1", enum.FrequencyCustom, nil, 1},
		{"custom with zero months defaults to 1", enum.FrequencyCustom, &zero, 1},
		{"unknown code defaults to 1", enum.Frequency(7), nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsForFrequency(tt.frequency, tt.customMonths); got != tt.want {
				t.Errorf("MonthsForFrequency(%v, %v) = %d, want %d", tt.frequency, tt.customMonths, got, tt.want)
			}
		})
	}
}

func TestScheduleState(t *testing.T) {
	s := Schedule{StartDate: date(2026, time.January, 1), Frequency: enum.FrequencyMonthly}
	if s.State() != StateNeverInvoiced {
		t.Errorf("schedule without last invoice date should be NeverInvoiced")
	}

	last := date(2026, time.March, 1)
	s.LastInvoiceDate = &last
	if s.State() != StateActive {
		t.Errorf("schedule with last invoice date should be Active")
	}
}

func TestScheduleNextDue(t *testing.T) {
	last := date(2026, time.February, 15)

	tests := []struct {
		name     string
		schedule Schedule
		want     time.Time
	}{
		{
			name: "anchors on start date when never invoiced",
			schedule: Schedule{
				StartDate: date(2026, time.January, 10),
				Frequency: enum.FrequencyQuarterly,
			},
			want: date(2026, time.April, 10),
		},
		{
			name: "anchors on last invoice date when active",
			schedule: Schedule{
				StartDate:       date(2025, time.June, 1),
				LastInvoiceDate: &last,
				Frequency:       enum.FrequencyMonthly,
			},
			want: date(2026, time.March, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.schedule.NextDue(); !got.Equal(tt.want) {
				t.Errorf("NextDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	last := date(2026, time.January, 15)

	tests := []struct {
		name     string
		schedule Schedule
		today    time.Time
		want     Action
	}{
		{
			name: "not yet due",
			schedule: Schedule{
				StartDate: date(2026, time.August, 1),
				Frequency: enum.FrequencyMonthly,
			},
			today: date(2026, time.August, 20),
			want:  ActionNone,
		},
		{
			name: "never invoiced and overdue asks for a human",
			schedule: Schedule{
				StartDate: date(2026, time.January, 1),
				Frequency: enum.FrequencyMonthly,
			},
			today: date(2026, time.August, 20),
			want:  ActionNotifyFirstInvoice,
		},
		{
			name: "active and overdue generates automatically",
			schedule: Schedule{
				StartDate:       date(2025, time.November, 1),
				LastInvoiceDate: &last,
				Frequency:       enum.FrequencyMonthly,
			},
			today: date(2026, time.February, 16),
			want:  ActionGenerateInvoice,
		},
		{
			name: "due exactly today fires",
			schedule: Schedule{
				StartDate:       date(2025, time.November, 1),
				LastInvoiceDate: &last,
				Frequency:       enum.FrequencyMonthly,
			},
			today: date(2026, time.February, 15),
			want:  ActionGenerateInvoice,
		},
		{
			name: "time of day is ignored",
			schedule: Schedule{
				StartDate:       date(2025, time.November, 1),
				LastInvoiceDate: &last,
				Frequency:       enum.FrequencyMonthly,
			},
			today: time.Date(2026, time.February, 15, 23, 45, 0, 0, time.UTC),
			want:  ActionGenerateInvoice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.schedule, tt.today); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}
