package request

// NewSaleRequest resets the session for the next sale. Confirm must be true
// when an unfinished cart would be discarded.
type NewSaleRequest struct {
	Confirm bool `json:"confirm"`
}
