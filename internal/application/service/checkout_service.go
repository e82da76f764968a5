package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/internal/domain/enum"
	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

// CheckoutService validates cart and payment state, builds and submits the
// idempotent order, and coordinates barcode lookups into the cart.
type CheckoutService struct {
	sessions *SessionManager
	orders   repository.OrderGateway
	barcode  repository.BarcodeService
	records  repository.SaleRecordRepository
	events   repository.SaleEventPublisher // nil disables publishing
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	sessions *SessionManager,
	orders repository.OrderGateway,
	barcode repository.BarcodeService,
	records repository.SaleRecordRepository,
	events repository.SaleEventPublisher,
) *CheckoutService {
	return &CheckoutService{
		sessions: sessions,
		orders:   orders,
		barcode:  barcode,
		records:  records,
		events:   events,
	}
}

// Submit runs one submission attempt. Only an Idle (or previously Failed)
// sale accepts a submit; a submit already in flight is refused. On failure
// the cart and payment selection are left exactly as the cashier entered
// them so a retry requires no re-entry; a fresh attempt gets a fresh
// idempotency key, while transport-level retries inside the order gateway
// reuse the key of this attempt.
func (s *CheckoutService) Submit(ctx context.Context, sessionID uuid.UUID) (*entity.OrderResult, error) {
	var (
		req    *entity.CheckoutRequest
		record *entity.SaleRecord
	)

	err := s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		switch session.Checkout.Status {
		case enum.CheckoutSubmitting:
			return apperror.ErrSubmissionInProgress
		case enum.CheckoutCompleted:
			return apperror.ErrSaleAlreadyCompleted
		}

		if len(session.Cart.Items) == 0 {
			return apperror.ErrEmptyCart
		}
		if session.Payment.SelectedKey == "" {
			return apperror.ErrNoPaymentSelected
		}
		if session.Payment.PosMethod.NeedsReference() && session.Payment.Reference == "" {
			return apperror.ErrMissingPaymentReference
		}

		req = buildCheckoutRequest(session)
		record = buildSaleRecord(session, req)
		session.Checkout = entity.CheckoutState{Status: enum.CheckoutSubmitting}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if createErr := s.records.Create(ctx, record); createErr != nil {
		log.Printf("Warning: failed to journal sale attempt %s: %v", req.IdempotencyKey, createErr)
	}

	// Network call runs outside the session lock; the Submitting state
	// guards against a concurrent second submit.
	result, submitErr := s.orders.Submit(ctx, req)

	finalizeErr := s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if submitErr != nil {
			session.Checkout = entity.CheckoutState{
				Status:    enum.CheckoutFailed,
				LastError: submitErr.Error(),
			}
			return nil
		}
		session.Checkout = entity.CheckoutState{
			Status:      enum.CheckoutCompleted,
			OrderID:     result.OrderID,
			OrderNumber: result.OrderNumber,
		}
		return nil
	})
	if finalizeErr != nil {
		return nil, finalizeErr
	}

	if submitErr != nil {
		s.journalOutcome(ctx, record, enum.SaleStatusFailed, nil, submitErr)
		if apperror.IsAppError(submitErr) {
			return nil, submitErr
		}
		return nil, apperror.NewOrderSubmissionError(submitErr)
	}

	s.journalOutcome(ctx, record, enum.SaleStatusCompleted, result, nil)
	s.publishCompleted(record, result)
	return result, nil
}

// NewSale starts a brand-new sale: cart, discount, payment selection,
// customer and checkout state reset together. Discarding an unsold cart
// needs the caller's confirmation; after a completed order none is needed.
func (s *CheckoutService) NewSale(sessionID uuid.UUID, confirm Confirmer) error {
	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if session.Checkout.Status == enum.CheckoutSubmitting {
			return apperror.ErrSubmissionInProgress
		}
		discarding := len(session.Cart.Items) > 0 && session.Checkout.Status != enum.CheckoutCompleted
		if discarding && (confirm == nil || !confirm.Confirm("Discard the current sale?")) {
			return apperror.ErrConfirmationRequired
		}
		session.StartNewSale()
		return nil
	})
}

// LookupBarcode resolves a scanned code and adds the match to the cart. When
// scans overlap, only the most recently issued lookup's result may mutate
// the cart; a stale result is discarded so that a fast double-scan cannot
// silently add the wrong product.
func (s *CheckoutService) LookupBarcode(ctx context.Context, sessionID uuid.UUID, code string) error {
	var issued uint64
	err := s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		session.LookupSeq++
		issued = session.LookupSeq
		return nil
	})
	if err != nil {
		return err
	}

	match, err := s.barcode.Lookup(ctx, code)
	if err != nil {
		return err
	}
	if match == nil || match.Product == nil {
		return apperror.ErrBarcodeNotFound
	}

	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		if session.LookupSeq != issued {
			return apperror.ErrBarcodeScanSuperseded
		}
		return addLineItem(&session.Cart, match.Product, match.VariantSKU)
	})
}

// AttachCustomer links a directory customer to the sale, replacing any guest
// info. Passing nil with guest fields records a freeform guest instead.
func (s *CheckoutService) AttachCustomer(sessionID uuid.UUID, customer *entity.Customer, guestName, guestPhone string) error {
	return s.sessions.With(sessionID, func(session *entity.SaleSession) error {
		session.Customer = customer
		if customer != nil {
			session.GuestName = ""
			session.GuestPhone = ""
			return nil
		}
		session.GuestName = guestName
		session.GuestPhone = guestPhone
		return nil
	})
}

func buildCheckoutRequest(session *entity.SaleSession) *entity.CheckoutRequest {
	summary := ComputeSummary(session.Cart.Items, session.Cart.DiscountInput)

	items := make([]entity.CheckoutItem, 0, len(session.Cart.Items))
	for _, line := range session.Cart.Items {
		items = append(items, entity.CheckoutItem{
			ProductID:  line.ProductID,
			VariantSKU: line.VariantSKU,
			Quantity:   line.Quantity,
			UnitPrice:  float64(line.UnitPrice) / 100,
		})
	}

	req := &entity.CheckoutRequest{
		Items:          items,
		Discount:       float64(summary.Discount) / 100,
		BranchID:       session.BranchID,
		IdempotencyKey: uuid.New().String(),
		Source:         "pos",
		Payment: entity.CheckoutPayment{
			Method: session.Payment.PosMethod,
		},
	}

	if session.Payment.PosMethod == enum.PosMethodCash {
		received := float64(ParseCashReceived(session.Payment.CashReceivedRaw)) / 100
		req.Payment.CashReceived = &received
	} else {
		req.Payment.Reference = session.Payment.Reference
	}

	if session.Customer != nil {
		req.CustomerID = session.Customer.ID
	} else if session.GuestName != "" || session.GuestPhone != "" {
		req.GuestInfo = &entity.GuestInfo{
			CustomerName:  session.GuestName,
			CustomerPhone: session.GuestPhone,
		}
	}

	return req
}

func buildSaleRecord(session *entity.SaleSession, req *entity.CheckoutRequest) *entity.SaleRecord {
	summary := ComputeSummary(session.Cart.Items, session.Cart.DiscountInput)
	return &entity.SaleRecord{
		SessionID:      session.ID,
		BranchID:       session.BranchID,
		CashierID:      session.CashierID,
		IdempotencyKey: req.IdempotencyKey,
		Status:         enum.SaleStatusSubmitted,
		PaymentMethod:  req.Payment.Method.String(),
		ItemCount:      summary.ItemCount,
		Subtotal:       summary.Subtotal,
		Discount:       summary.Discount,
		Total:          summary.Total,
	}
}

func (s *CheckoutService) journalOutcome(ctx context.Context, record *entity.SaleRecord, status enum.SaleStatus, result *entity.OrderResult, cause error) {
	record.Status = status
	if result != nil {
		record.OrderID = &result.OrderID
		record.OrderNumber = &result.OrderNumber
	}
	if cause != nil {
		message := cause.Error()
		record.ErrorMessage = &message
	}
	if err := s.records.Update(ctx, record); err != nil {
		log.Printf("Warning: failed to journal sale outcome %s: %v", record.IdempotencyKey, err)
	}
}

func (s *CheckoutService) publishCompleted(record *entity.SaleRecord, result *entity.OrderResult) {
	if s.events == nil {
		return
	}
	event := repository.SaleCompletedEvent{
		OrderID:       result.OrderID,
		OrderNumber:   result.OrderNumber,
		BranchID:      record.BranchID,
		CashierID:     record.CashierID.String(),
		PaymentMethod: record.PaymentMethod,
		ItemCount:     record.ItemCount,
		Total:         float64(record.Total) / 100,
	}
	if err := s.events.PublishSaleCompleted(event); err != nil {
		log.Printf("Warning: failed to publish sale.completed for order %s: %v", result.OrderID, err)
	}
}
