package billing

import (
	"time"

	"github.com/praxishq/praxis-api/internal/domain/enum"
)

// Schedule is a plain view of a recurring schedule, detached from storage.
type Schedule struct {
	StartDate       time.Time
	LastInvoiceDate *time.Time
	Frequency       enum.Frequency
	CustomMonths    *int
}

// ScheduleState is the explicit form of the state an absent/present
// LastInvoiceDate encodes.
type ScheduleState int

const (
	// StateNeverInvoiced means no invoice has ever been generated; the first
	// invoice requires a human.
	StateNeverInvoiced ScheduleState = iota
	// StateActive means at least one invoice exists and generation is
	// automatic from here on.
	StateActive
)

// Action is the outcome of evaluating a schedule against a reference day.
type Action int

const (
	ActionNone Action = iota
	ActionNotifyFirstInvoice
	ActionGenerateInvoice
)

// MonthsForFrequency maps a frequency code to an interval in months. The
// custom code falls back to 1 when no custom month count is set.
func MonthsForFrequency(f enum.Frequency, customMonths *int) int {
	if f == enum.FrequencyCustom {
		if customMonths != nil && *customMonths > 0 {
			return *customMonths
		}
		return 1
	}
	if !f.Valid() || f <= 0 {
		return 1
	}
	return int(f)
}

// State returns the schedule's explicit state.
func (s Schedule) State() ScheduleState {
	if s.LastInvoiceDate == nil {
		return StateNeverInvoiced
	}
	return StateActive
}

// NextDue is the next date an invoice is owed: the last invoice date (or the
// start date if none) plus the frequency interval.
func (s Schedule) NextDue() time.Time {
	anchor := s.StartDate
	if s.LastInvoiceDate != nil {
		anchor = *s.LastInvoiceDate
	}
	return anchor.AddDate(0, MonthsForFrequency(s.Frequency, s.CustomMonths), 0)
}

// Evaluate decides what a single run should do with the schedule. The
// comparison is nextDue <= today (time truncated to midnight), so a missed
// run keeps firing on subsequent runs until the schedule catches up.
func Evaluate(s Schedule, today time.Time) Action {
	day := Midnight(today)
	if s.NextDue().After(day) {
		return ActionNone
	}
	if s.State() == StateNeverInvoiced {
		return ActionNotifyFirstInvoice
	}
	return ActionGenerateInvoice
}

// Midnight truncates a time to the start of its day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
