package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus is the journaled outcome of an order submission attempt.
type SaleStatus int

const (
	SaleStatusSubmitted SaleStatus = 0
	SaleStatusCompleted SaleStatus = 1
	SaleStatusFailed    SaleStatus = 2
)

func (s SaleStatus) String() string {
	return [...]string{"Submitted", "Completed", "Failed"}[s]
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Submitted":
		*s = SaleStatusSubmitted
	case "Completed":
		*s = SaleStatusCompleted
	case "Failed":
		*s = SaleStatusFailed
	}
	return nil
}

// ParseSaleStatus parses a status filter value such as "completed".
func ParseSaleStatus(str string) (SaleStatus, bool) {
	switch str {
	case "submitted", "Submitted":
		return SaleStatusSubmitted, true
	case "completed", "Completed":
		return SaleStatusCompleted, true
	case "failed", "Failed":
		return SaleStatusFailed, true
	}
	return SaleStatusSubmitted, false
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusSubmitted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
