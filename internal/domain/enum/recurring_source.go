package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RecurringSourceType identifies what a recurring schedule is attached to
type RecurringSourceType int

const (
	RecurringSourceProposal     RecurringSourceType = 0
	RecurringSourceProposalItem RecurringSourceType = 1
)

func (t RecurringSourceType) String() string {
	names := [...]string{"Proposal", "ProposalItem"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Proposal"
	}
	return names[t]
}

func (t RecurringSourceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *RecurringSourceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = RecurringSourceType(i)
		return nil
	}
	switch str {
	case "Proposal":
		*t = RecurringSourceProposal
	case "ProposalItem":
		*t = RecurringSourceProposalItem
	}
	return nil
}

func (t RecurringSourceType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *RecurringSourceType) Scan(value interface{}) error {
	if value == nil {
		*t = RecurringSourceProposal
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = RecurringSourceType(v)
	case int:
		*t = RecurringSourceType(v)
	}
	return nil
}
