package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CompensationType represents how a user is compensated
type CompensationType int

const (
	CompensationSalaryBonus     CompensationType = 0
	CompensationPercentageBased CompensationType = 1
)

func (t CompensationType) String() string {
	names := [...]string{"SalaryBonus", "PercentageBased"}
	if int(t) < 0 || int(t) >= len(names) {
		return "SalaryBonus"
	}
	return names[t]
}

func (t CompensationType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *CompensationType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = CompensationType(i)
		return nil
	}
	switch str {
	case "SalaryBonus":
		*t = CompensationSalaryBonus
	case "PercentageBased":
		*t = CompensationPercentageBased
	}
	return nil
}

func (t CompensationType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *CompensationType) Scan(value interface{}) error {
	if value == nil {
		*t = CompensationSalaryBonus
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = CompensationType(v)
	case int:
		*t = CompensationType(v)
	}
	return nil
}

// PercentageType selects which earnings accumulators a percentage-based
// scheme applies.
type PercentageType int

const (
	PercentageProjectTotal PercentageType = 0
	PercentageDirectWork   PercentageType = 1
	PercentageBoth         PercentageType = 2
)

func (t PercentageType) String() string {
	names := [...]string{"ProjectTotal", "DirectWork", "Both"}
	if int(t) < 0 || int(t) >= len(names) {
		return "ProjectTotal"
	}
	return names[t]
}

// IncludesProjectTotal reports whether the project-total accumulator applies.
func (t PercentageType) IncludesProjectTotal() bool {
	return t == PercentageProjectTotal || t == PercentageBoth
}

// IncludesDirectWork reports whether the direct-work accumulator applies.
func (t PercentageType) IncludesDirectWork() bool {
	return t == PercentageDirectWork || t == PercentageBoth
}

func (t PercentageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PercentageType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = PercentageType(i)
		return nil
	}
	switch str {
	case "ProjectTotal":
		*t = PercentageProjectTotal
	case "DirectWork":
		*t = PercentageDirectWork
	case "Both":
		*t = PercentageBoth
	}
	return nil
}

func (t PercentageType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PercentageType) Scan(value interface{}) error {
	if value == nil {
		*t = PercentageProjectTotal
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = PercentageType(v)
	case int:
		*t = PercentageType(v)
	}
	return nil
}
