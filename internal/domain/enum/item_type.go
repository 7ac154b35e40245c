package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ItemType represents the kind of an invoice line item. Expense items are
// reimbursed pass-throughs and never count toward percentage compensation.
type ItemType int

const (
	ItemTypeService ItemType = 0
	ItemTypeExpense ItemType = 1
)

func (t ItemType) String() string {
	names := [...]string{"Service", "Expense"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Service"
	}
	return names[t]
}

func (t ItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ItemType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ItemType(i)
		return nil
	}
	switch str {
	case "Service":
		*t = ItemTypeService
	case "Expense":
		*t = ItemTypeExpense
	}
	return nil
}

func (t ItemType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ItemType) Scan(value interface{}) error {
	if value == nil {
		*t = ItemTypeService
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ItemType(v)
	case int:
		*t = ItemType(v)
	}
	return nil
}
