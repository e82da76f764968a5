package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/dokanlab/pos-terminal-api/internal/config"
	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
	"github.com/dokanlab/pos-terminal-api/pkg/printer"
)

// maxVariantLabelLen is the longest variant label a receipt will show.
const maxVariantLabelLen = 48

// Internal identifier shapes that must never reach a printed receipt:
// 24-hex object ids, UUIDs, and stringified object references.
var (
	hexIDPattern  = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	uuidPattern   = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	objRefPattern = regexp.MustCompile(`\[object |ObjectId\(|map\[`)
)

// ReceiptService decodes the loosely-typed receipt payload into the strict
// display/print model and drives the terminal's receipt printer.
type ReceiptService struct {
	sessions    *SessionManager
	orders      repository.OrderGateway
	printer     printer.Printer
	branch      config.BranchConfig
	vat         config.VATConfig
	paperWidth  int
	printerType string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	sessions *SessionManager,
	orders repository.OrderGateway,
	p printer.Printer,
	branch config.BranchConfig,
	vat config.VATConfig,
	printerCfg config.PrinterConfig,
) *ReceiptService {
	return &ReceiptService{
		sessions:    sessions,
		orders:      orders,
		printer:     p,
		branch:      branch,
		vat:         vat,
		paperWidth:  printerCfg.PaperWidth,
		printerType: printerCfg.Type,
	}
}

// GetReceipt fetches and normalizes the receipt for a completed sale. The
// cash display fields are recomputed from the session-remembered cash
// received, since the receipt endpoint does not echo it back.
func (s *ReceiptService) GetReceipt(ctx context.Context, sessionID uuid.UUID) (*entity.Receipt, error) {
	var (
		orderID         string
		cashReceivedRaw string
		isCash          bool
	)
	err := s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if session.Checkout.Status != enum.CheckoutCompleted {
			return apperror.NewBadRequestError("Sale has no completed order")
		}
		orderID = session.Checkout.OrderID
		cashReceivedRaw = session.Payment.CashReceivedRaw
		isCash = session.Payment.PosMethod == enum.PosMethodCash
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload, err := s.orders.FetchReceipt(ctx, orderID)
	if err != nil {
		return nil, err
	}

	receipt := s.Normalize(payload)

	if isCash {
		received := ParseCashReceived(cashReceivedRaw)
		totalCents := int64(math.Round(receipt.Total * 100))
		receipt.CashReceived = float64(received) / 100
		receipt.Change = float64(Change(received, totalCents)) / 100
		receipt.AmountDue = float64(AmountDue(received, totalCents)) / 100
	}

	return receipt, nil
}

// PrintReceipt normalizes the receipt and sends it to the configured
// printer. With printer type "none" the formatted receipt is still returned.
func (s *ReceiptService) PrintReceipt(ctx context.Context, sessionID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.GetReceipt(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	data := FormatReceipt(receipt, s.paperWidth)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (order %s): %v", receipt.OrderNumber, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// Status returns printer connection status.
func (s *ReceiptService) Status() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Normalize decodes a receipt payload per the field-precedence table: for
// each field the first present name wins, missing numerics default to 0,
// a missing item name defaults to "Item". Backend versions disagree on
// field names, so every legacy spelling is tried in order.
func (s *ReceiptService) Normalize(payload map[string]interface{}) *entity.Receipt {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.branch.StoreName,
			Address:   s.branch.Address,
			Phone:     s.branch.Phone,
		},
		OrderNumber:    pickString(payload, "orderNumber", "invoiceNo", "orderId"),
		Date:           pickString(payload, "date", "createdAt"),
		Subtotal:       pickNumber(payload, "subtotal", "subTotal"),
		Discount:       pickNumber(payload, "discount"),
		DeliveryCharge: pickNumber(payload, "deliveryCharge", "delivery_charge"),
		Total:          pickNumber(payload, "total", "grandTotal"),
		Customer:       pickString(payload, "customerName", "customer"),
		Branch:         pickString(payload, "branch", "branchId"),
	}

	if receipt.Date == "" {
		receipt.Date = time.Now().Format("2006-01-02 15:04")
	}
	if receipt.Branch == "" {
		receipt.Branch = s.branch.ID
	}

	if vat, ok := payload["vat"].(map[string]interface{}); ok {
		receipt.VAT = entity.ReceiptVAT{
			Applicable: pickBool(vat, "applicable"),
			Rate:       pickNumber(vat, "rate"),
			Amount:     pickNumber(vat, "amount"),
			SellerBIN:  pickString(vat, "sellerBin", "seller_bin"),
		}
	} else {
		receipt.VAT = entity.ReceiptVAT{
			Applicable: s.vat.Applicable,
			Rate:       s.vat.Rate,
			SellerBIN:  s.vat.SellerBIN,
		}
	}
	if receipt.VAT.SellerBIN == "" {
		receipt.VAT.SellerBIN = s.vat.SellerBIN
	}

	if payment, ok := payload["payment"].(map[string]interface{}); ok {
		receipt.Payment = entity.ReceiptPayment{
			Method:    pickString(payment, "method"),
			Reference: pickString(payment, "reference"),
		}
	} else {
		receipt.Payment = entity.ReceiptPayment{
			Method:    pickString(payload, "paymentMethod"),
			Reference: pickString(payload, "paymentReference"),
		}
	}

	if rawItems, ok := payload["items"].([]interface{}); ok {
		for _, rawItem := range rawItems {
			item, ok := rawItem.(map[string]interface{})
			if !ok {
				continue
			}
			receipt.Items = append(receipt.Items, decodeReceiptItem(item))
		}
	}

	return receipt
}

func decodeReceiptItem(item map[string]interface{}) entity.ReceiptItem {
	decoded := entity.ReceiptItem{
		Name:      pickString(item, "name", "productName"),
		Quantity:  int(pickNumber(item, "quantity", "qty")),
		UnitPrice: pickNumber(item, "unitPrice", "price"),
		Total:     pickNumber(item, "total", "lineTotal"),
	}
	if decoded.Name == "" {
		decoded.Name = "Item"
	}
	if decoded.Total == 0 {
		decoded.Total = float64(decoded.Quantity) * decoded.UnitPrice
	}

	label := ""
	if variant, ok := item["variant"].(map[string]interface{}); ok {
		label = pickString(variant, "attributes")
	}
	if label == "" {
		label = pickString(item, "variantAttributes")
	}
	if label == "" {
		label = pickString(item, "variantSku")
	}
	decoded.VariantLabel = sanitizeVariantLabel(label)

	return decoded
}

// sanitizeVariantLabel discards labels that are too long for the paper or
// that look like internal identifiers rather than human attribute strings.
func sanitizeVariantLabel(label string) string {
	if len(label) > maxVariantLabelLen {
		return ""
	}
	if hexIDPattern.MatchString(label) || uuidPattern.MatchString(label) || objRefPattern.MatchString(label) {
		return ""
	}
	return label
}

func pickString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func pickNumber(m map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func pickBool(m map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		if v, ok := m[key].(bool); ok {
			return v
		}
	}
	return false
}

// FormatReceipt converts a normalized receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.VAT.SellerBIN != "" {
		doc.TextF("BIN: %s", r.VAT.SellerBIN)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Order:", r.OrderNumber).
		KeyValue("Date:", r.Date).
		KeyValue("Branch:", r.Branch)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}

	doc.Separator('-')
	for _, item := range r.Items {
		name := item.Name
		if item.VariantLabel != "" {
			name = fmt.Sprintf("%s (%s)", item.Name, item.VariantLabel)
		}
		doc.ItemLine(name, item.Quantity, money(item.UnitPrice), money(item.Total))
	}

	doc.Separator('-').
		KeyValue("Subtotal", money(r.Subtotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount", "-"+money(r.Discount))
	}
	if r.DeliveryCharge > 0 {
		doc.KeyValue("Delivery", money(r.DeliveryCharge))
	}
	if r.VAT.Applicable {
		doc.KeyValue(fmt.Sprintf("VAT (%.1f%%)", r.VAT.Rate*100), money(r.VAT.Amount))
	}

	doc.SetBold(true).
		KeyValue("TOTAL", money(r.Total)).
		SetBold(false).
		KeyValue("Paid by", r.Payment.Method)

	if r.Payment.Reference != "" {
		doc.KeyValue("Ref:", r.Payment.Reference)
	}
	if r.CashReceived > 0 {
		doc.KeyValue("Cash", money(r.CashReceived))
		if r.Change > 0 {
			doc.KeyValue("Change", money(r.Change))
		}
		if r.AmountDue > 0 {
			doc.KeyValue("Due", money(r.AmountDue))
		}
	}

	doc.Separator('-').
		SetAlign(printer.AlignCenter).
		Text("Thank you!").
		Barcode(r.OrderNumber).
		FeedLines(3).
		Cut()

	return doc.Bytes()
}

func money(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
