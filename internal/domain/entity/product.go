package entity

// PosProduct is the read-only catalog view this terminal sells from. IDs are
// opaque strings owned by the catalog provider.
type PosProduct struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	BasePrice  int64            `json:"base_price"` // cents
	Image      string           `json:"image,omitempty"`
	Variants   []ProductVariant `json:"variants,omitempty"`
	BranchStock BranchStock     `json:"branch_stock"`
}

// ProductVariant is one attribute combination (size/colour etc.) with its own
// SKU, price modifier and stock count.
type ProductVariant struct {
	SKU           string `json:"sku"`
	Attributes    string `json:"attributes,omitempty"` // human label, e.g. "M / Navy"
	PriceModifier int64  `json:"price_modifier"`       // cents, may be negative
	Stock         int    `json:"stock"`
}

// BranchStock is the stock position of the product at this branch.
type BranchStock struct {
	InStock  int  `json:"in_stock"`
	LowStock bool `json:"low_stock"`
	Quantity int  `json:"quantity"`
}

// FindVariant returns the variant with the given SKU, or nil.
func (p *PosProduct) FindVariant(sku string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}
	return nil
}
