package entity

import "github.com/dokanlab/pos-terminal-api/internal/domain/enum"

// PaymentMethodConfig is the generic method configuration delivered by the
// payment-methods provider. ID may be absent on older backends.
type PaymentMethodConfig struct {
	ID           string           `json:"id,omitempty"`
	Type         enum.PaymentType `json:"type"`
	Provider     string           `json:"provider,omitempty"`
	Name         string           `json:"name"`
	WalletNumber string           `json:"wallet_number,omitempty"`
	IsActive     bool             `json:"is_active"`
}

// SelectableMethod is a resolved, selectable payment method. Unsupported
// (type, provider) pairs never make it into this shape.
type SelectableMethod struct {
	Key          string         `json:"key"`
	PosMethod    enum.PosMethod `json:"pos_method"`
	Name         string         `json:"name"`
	Provider     string         `json:"provider,omitempty"`
	WalletNumber string         `json:"wallet_number,omitempty"`
}

// PaymentSelection is the cashier's current method selection plus the
// captured proof-of-payment inputs. PosMethod is derived from the selected
// config, never set independently of a selection.
type PaymentSelection struct {
	SelectedKey     string         `json:"selected_key"`
	PosMethod       enum.PosMethod `json:"pos_method"`
	Reference       string         `json:"reference"`
	CashReceivedRaw string         `json:"cash_received_raw"`
}

// Clear wipes the selection and its captured inputs.
func (p *PaymentSelection) Clear() {
	*p = PaymentSelection{}
}
