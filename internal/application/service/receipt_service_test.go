package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokanlab/pos-terminal-api/internal/config"
	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
	"github.com/dokanlab/pos-terminal-api/pkg/printer"
)

func newReceiptFixture(t *testing.T) (*ReceiptService, *SessionManager, *fakeOrderGateway, uuid.UUID) {
	t.Helper()

	orders := &fakeOrderGateway{receipts: map[string]map[string]interface{}{}}
	sessions := NewSessionManager(time.Hour)
	session := sessions.Create("main", uuid.New(), "Asha")

	svc := NewReceiptService(
		sessions,
		orders,
		printer.NewNullPrinter(),
		config.BranchConfig{ID: "main", StoreName: "DokanLab Store", Address: "12 Bay Road", Phone: "0255501234"},
		config.VATConfig{Applicable: true, Rate: 0.075, SellerBIN: "BIN-556677"},
		config.PrinterConfig{Type: "none", PaperWidth: 32},
	)
	return svc, sessions, orders, session.ID
}

func TestNormalizeFieldPrecedence(t *testing.T) {
	svc, _, _, _ := newReceiptFixture(t)

	receipt := svc.Normalize(map[string]interface{}{
		"orderNumber": "INV-2031",
		"date":        "2026-08-30 14:05",
		"subtotal":    700.0,
		"discount":    100.0,
		"total":       600.0,
		"payment": map[string]interface{}{
			"method":    "bkash",
			"reference": "TRX901",
		},
		"items": []interface{}{
			map[string]interface{}{
				"name":      "Ceramic Mug",
				"quantity":  2.0,
				"unitPrice": 350.0,
				"total":     700.0,
			},
		},
	})

	assert.Equal(t, "INV-2031", receipt.OrderNumber)
	assert.Equal(t, "2026-08-30 14:05", receipt.Date)
	assert.Equal(t, 700.0, receipt.Subtotal)
	assert.Equal(t, 600.0, receipt.Total)
	assert.Equal(t, "bkash", receipt.Payment.Method)
	assert.Equal(t, "TRX901", receipt.Payment.Reference)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "Ceramic Mug", receipt.Items[0].Name)
	assert.Equal(t, "DokanLab Store", receipt.Header.StoreName)
}

func TestNormalizeAlternateFieldNames(t *testing.T) {
	svc, _, _, _ := newReceiptFixture(t)

	receipt := svc.Normalize(map[string]interface{}{
		"invoiceNo":        "SO-118",
		"createdAt":        "2026-08-30T14:05:00Z",
		"subTotal":         500.0,
		"grandTotal":       500.0,
		"paymentMethod":    "cash",
		"paymentReference": "",
		"items": []interface{}{
			map[string]interface{}{
				"productName": "Oxford Shirt",
				"qty":         1.0,
				"price":       500.0,
			},
		},
	})

	assert.Equal(t, "SO-118", receipt.OrderNumber)
	assert.Equal(t, 500.0, receipt.Subtotal)
	assert.Equal(t, 500.0, receipt.Total)
	assert.Equal(t, "cash", receipt.Payment.Method)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "Oxford Shirt", receipt.Items[0].Name)
	assert.Equal(t, 500.0, receipt.Items[0].UnitPrice)
	assert.Equal(t, 500.0, receipt.Items[0].Total, "line total falls back to qty x unit price")
}

func TestNormalizeDefaults(t *testing.T) {
	svc, _, _, _ := newReceiptFixture(t)

	receipt := svc.Normalize(map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"quantity": 1.0},
		},
	})

	assert.NotEmpty(t, receipt.Date, "missing date defaults to now")
	assert.Equal(t, "main", receipt.Branch, "missing branch falls back to config")
	assert.Equal(t, "Item", receipt.Items[0].Name)
	assert.Equal(t, 0.0, receipt.Subtotal)

	// VAT block falls back to configuration when absent from the payload.
	assert.True(t, receipt.VAT.Applicable)
	assert.Equal(t, 0.075, receipt.VAT.Rate)
	assert.Equal(t, "BIN-556677", receipt.VAT.SellerBIN)
}

func TestNormalizeVATFromPayload(t *testing.T) {
	svc, _, _, _ := newReceiptFixture(t)

	receipt := svc.Normalize(map[string]interface{}{
		"vat": map[string]interface{}{
			"applicable": true,
			"rate":       0.05,
			"amount":     30.0,
		},
	})

	assert.Equal(t, 0.05, receipt.VAT.Rate)
	assert.Equal(t, 30.0, receipt.VAT.Amount)
	assert.Equal(t, "BIN-556677", receipt.VAT.SellerBIN, "missing BIN filled from config")
}

func TestVariantLabelSanitization(t *testing.T) {
	svc, _, _, _ := newReceiptFixture(t)

	item := func(extra map[string]interface{}) map[string]interface{} {
		base := map[string]interface{}{"name": "Shirt", "quantity": 1.0, "unitPrice": 10.0}
		for k, v := range extra {
			base[k] = v
		}
		return map[string]interface{}{"items": []interface{}{base}}
	}

	t.Run("nested variant attributes win", func(t *testing.T) {
		receipt := svc.Normalize(item(map[string]interface{}{
			"variant":           map[string]interface{}{"attributes": "M / Navy"},
			"variantAttributes": "ignored",
			"variantSku":        "ignored-too",
		}))
		assert.Equal(t, "M / Navy", receipt.Items[0].VariantLabel)
	})

	t.Run("falls back to flat attributes then sku", func(t *testing.T) {
		receipt := svc.Normalize(item(map[string]interface{}{"variantAttributes": "L / White"}))
		assert.Equal(t, "L / White", receipt.Items[0].VariantLabel)

		receipt = svc.Normalize(item(map[string]interface{}{"variantSku": "OX-L"}))
		assert.Equal(t, "OX-L", receipt.Items[0].VariantLabel)
	})

	t.Run("identifier-shaped labels are dropped", func(t *testing.T) {
		for _, label := range []string{
			"64af0c2b9d1e8f0012ab34cd",
			"0c5a1f9e-3d42-4b7a-9c21-8e5f6a7b8c9d",
			"map[sku:OX-L]",
			"[object Object]",
			strings.Repeat("x", 49),
		} {
			receipt := svc.Normalize(item(map[string]interface{}{"variantAttributes": label}))
			assert.Equal(t, "", receipt.Items[0].VariantLabel, "label %q must not print", label)
		}
	})
}

func TestGetReceiptRequiresCompletedSale(t *testing.T) {
	svc, _, _, id := newReceiptFixture(t)

	_, err := svc.GetReceipt(context.Background(), id)
	require.Error(t, err)
}

func TestGetReceiptRecomputesCashFields(t *testing.T) {
	svc, sessions, orders, id := newReceiptFixture(t)

	orders.receipts["ord-77"] = map[string]interface{}{
		"orderNumber": "INV-2031",
		"total":       600.0,
		"payment":     map[string]interface{}{"method": "cash"},
	}
	require.NoError(t, sessions.With(id, func(s *entity.SaleSession) error {
		s.Checkout = entity.CheckoutState{Status: enum.CheckoutCompleted, OrderID: "ord-77", OrderNumber: "INV-2031"}
		s.Payment = entity.PaymentSelection{SelectedKey: "pm-cash", PosMethod: enum.PosMethodCash, CashReceivedRaw: "1000"}
		return nil
	}))

	receipt, err := svc.GetReceipt(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, receipt.CashReceived)
	assert.Equal(t, 400.0, receipt.Change)
	assert.Equal(t, 0.0, receipt.AmountDue)
}

func TestGetReceiptExactTenderHasNoChange(t *testing.T) {
	svc, sessions, orders, id := newReceiptFixture(t)

	// 0.29 sits just below the cent boundary as a float64; truncating
	// instead of rounding would report one cent of change on exact tender.
	orders.receipts["ord-79"] = map[string]interface{}{"total": 0.29}
	require.NoError(t, sessions.With(id, func(s *entity.SaleSession) error {
		s.Checkout = entity.CheckoutState{Status: enum.CheckoutCompleted, OrderID: "ord-79"}
		s.Payment = entity.PaymentSelection{SelectedKey: "pm-cash", PosMethod: enum.PosMethodCash, CashReceivedRaw: "0.29"}
		return nil
	}))

	receipt, err := svc.GetReceipt(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 0.29, receipt.CashReceived)
	assert.Equal(t, 0.0, receipt.Change)
	assert.Equal(t, 0.0, receipt.AmountDue)
}

func TestGetReceiptUnderpaidShowsAmountDue(t *testing.T) {
	svc, sessions, orders, id := newReceiptFixture(t)

	orders.receipts["ord-78"] = map[string]interface{}{"total": 600.0}
	require.NoError(t, sessions.With(id, func(s *entity.SaleSession) error {
		s.Checkout = entity.CheckoutState{Status: enum.CheckoutCompleted, OrderID: "ord-78"}
		s.Payment = entity.PaymentSelection{SelectedKey: "pm-cash", PosMethod: enum.PosMethodCash, CashReceivedRaw: "200"}
		return nil
	}))

	receipt, err := svc.GetReceipt(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 0.0, receipt.Change)
	assert.Equal(t, 400.0, receipt.AmountDue)
}

func TestPrintReceiptFormatsDocument(t *testing.T) {
	svc, sessions, orders, id := newReceiptFixture(t)

	orders.receipts["ord-77"] = map[string]interface{}{
		"orderNumber": "INV-2031",
		"total":       600.0,
		"items": []interface{}{
			map[string]interface{}{"name": "Ceramic Mug", "quantity": 2.0, "unitPrice": 300.0, "total": 600.0},
		},
	}
	require.NoError(t, sessions.With(id, func(s *entity.SaleSession) error {
		s.Checkout = entity.CheckoutState{Status: enum.CheckoutCompleted, OrderID: "ord-77"}
		s.Payment = entity.PaymentSelection{SelectedKey: "pm-bkash", PosMethod: enum.PosMethodBkash, Reference: "TRX901"}
		return nil
	}))

	receipt, err := svc.PrintReceipt(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "INV-2031", receipt.OrderNumber)
}

func TestPrinterStatus(t *testing.T) {
	svc, _, _, _ := newReceiptFixture(t)

	status := svc.Status()
	assert.False(t, status.Configured)
	assert.Equal(t, "none", status.Type)
}

func TestFormatReceiptContainsTotals(t *testing.T) {
	receipt := &entity.Receipt{
		Header:      entity.ReceiptHeader{StoreName: "DokanLab Store"},
		OrderNumber: "INV-2031",
		Date:        "2026-08-30 14:05",
		Items: []entity.ReceiptItem{
			{Name: "Ceramic Mug", Quantity: 2, UnitPrice: 300, Total: 600},
		},
		Subtotal: 600,
		Total:    600,
		Payment:  entity.ReceiptPayment{Method: "cash"},
	}

	data := FormatReceipt(receipt, 32)
	text := string(data)
	assert.Contains(t, text, "DokanLab Store")
	assert.Contains(t, text, "INV-2031")
	assert.Contains(t, text, "Ceramic Mug")
}
