package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// NotificationType classifies in-app notifications
type NotificationType int

const (
	NotificationGeneric          NotificationType = 0
	NotificationFirstInvoiceDue  NotificationType = 1
	NotificationInvoiceGenerated NotificationType = 2
	NotificationGenerationFailed NotificationType = 3
)

func (t NotificationType) String() string {
	names := [...]string{"Generic", "FirstInvoiceDue", "InvoiceGenerated", "GenerationFailed"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Generic"
	}
	return names[t]
}

func (t NotificationType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *NotificationType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = NotificationType(i)
		return nil
	}
	switch str {
	case "Generic":
		*t = NotificationGeneric
	case "FirstInvoiceDue":
		*t = NotificationFirstInvoiceDue
	case "InvoiceGenerated":
		*t = NotificationInvoiceGenerated
	case "GenerationFailed":
		*t = NotificationGenerationFailed
	}
	return nil
}

func (t NotificationType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *NotificationType) Scan(value interface{}) error {
	if value == nil {
		*t = NotificationGeneric
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = NotificationType(v)
	case int:
		*t = NotificationType(v)
	}
	return nil
}
