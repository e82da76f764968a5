package enum

import "encoding/json"

// CheckoutStatus is the per-sale submission state machine. Only Idle accepts
// a new submit; Submitting rejects re-entrant submission.
type CheckoutStatus int

const (
	CheckoutIdle       CheckoutStatus = 0
	CheckoutSubmitting CheckoutStatus = 1
	CheckoutCompleted  CheckoutStatus = 2
	CheckoutFailed     CheckoutStatus = 3
)

func (s CheckoutStatus) String() string {
	return [...]string{"Idle", "Submitting", "Completed", "Failed"}[s]
}

func (s CheckoutStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CheckoutStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CheckoutStatus(i)
		return nil
	}
	switch str {
	case "Idle":
		*s = CheckoutIdle
	case "Submitting":
		*s = CheckoutSubmitting
	case "Completed":
		*s = CheckoutCompleted
	case "Failed":
		*s = CheckoutFailed
	}
	return nil
}
