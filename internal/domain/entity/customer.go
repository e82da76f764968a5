package entity

// Customer is a directory match attached to a sale. A checkout may instead
// carry freeform guest name/phone when no directory match was attached.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Tier  string `json:"tier,omitempty"`
}
