package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ClientStatus distinguishes leads from converted clients
type ClientStatus int

const (
	ClientStatusLead     ClientStatus = 0
	ClientStatusActive   ClientStatus = 1
	ClientStatusArchived ClientStatus = 2
)

func (s ClientStatus) String() string {
	names := [...]string{"Lead", "Active", "Archived"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Lead"
	}
	return names[s]
}

func (s ClientStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ClientStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ClientStatus(i)
		return nil
	}
	switch str {
	case "Lead":
		*s = ClientStatusLead
	case "Active":
		*s = ClientStatusActive
	case "Archived":
		*s = ClientStatusArchived
	}
	return nil
}

func (s ClientStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ClientStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ClientStatusLead
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ClientStatus(v)
	case int:
		*s = ClientStatus(v)
	}
	return nil
}
