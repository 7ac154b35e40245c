package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Frequency encodes how often a recurring source spawns invoices. The
// non-custom codes double as the interval length in months.
type Frequency int

const (
	FrequencyCustom     Frequency = 0
	FrequencyMonthly    Frequency = 1
	FrequencyQuarterly  Frequency = 3
	FrequencySemiAnnual Frequency = 6
	FrequencyAnnual     Frequency = 12
)

func (f Frequency) String() string {
	switch f {
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyQuarterly:
		return "Quarterly"
	case FrequencySemiAnnual:
		return "SemiAnnual"
	case FrequencyAnnual:
		return "Annual"
	default:
		return "Custom"
	}
}

// Valid reports whether f is one of the known frequency codes.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyCustom, FrequencyMonthly, FrequencyQuarterly, FrequencySemiAnnual, FrequencyAnnual:
		return true
	}
	return false
}

func (f Frequency) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Frequency) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*f = Frequency(i)
		return nil
	}
	switch str {
	case "Monthly":
		*f = FrequencyMonthly
	case "Quarterly":
		*f = FrequencyQuarterly
	case "SemiAnnual":
		*f = FrequencySemiAnnual
	case "Annual":
		*f = FrequencyAnnual
	case "Custom":
		*f = FrequencyCustom
	}
	return nil
}

func (f Frequency) Value() (driver.Value, error) {
	return int64(f), nil
}

func (f *Frequency) Scan(value interface{}) error {
	if value == nil {
		*f = FrequencyMonthly
		return nil
	}
	switch v := value.(type) {
	case int64:
		*f = Frequency(v)
	case int:
		*f = Frequency(v)
	}
	return nil
}
