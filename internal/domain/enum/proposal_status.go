package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProposalStatus represents the lifecycle status of a proposal
type ProposalStatus int

const (
	ProposalStatusDraft    ProposalStatus = 0
	ProposalStatusSent     ProposalStatus = 1
	ProposalStatusApproved ProposalStatus = 2
	ProposalStatusRejected ProposalStatus = 3
)

func (s ProposalStatus) String() string {
	names := [...]string{"Draft", "Sent", "Approved", "Rejected"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

func (s ProposalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ProposalStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ProposalStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = ProposalStatusDraft
	case "Sent":
		*s = ProposalStatusSent
	case "Approved":
		*s = ProposalStatusApproved
	case "Rejected":
		*s = ProposalStatusRejected
	}
	return nil
}

func (s ProposalStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ProposalStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ProposalStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ProposalStatus(v)
	case int:
		*s = ProposalStatus(v)
	}
	return nil
}
