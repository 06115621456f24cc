package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mt "github.com/ImmanuelNashville/Gospel-Culture-sub000/external/midtrans"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/cart"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/repository"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// CheckoutService turns a cart into a pending order and hands the buyer to
// the hosted payment page. The payment webhook finalizes the order, grants
// entitlements and clears the cart.
type CheckoutService struct {
	OrderRepo       *repository.OrderRepository
	PaymentRepo     *repository.PaymentRepository
	EntitlementRepo *repository.EntitlementRepository
	Cart            *CartService
	Snap            *snap.Client
	ServerKey       string
}

func NewCheckoutService(
	or *repository.OrderRepository,
	pr *repository.PaymentRepository,
	er *repository.EntitlementRepository,
	cs *CartService,
	snapClient *snap.Client,
	serverKey string,
) *CheckoutService {
	return &CheckoutService{
		OrderRepo:       or,
		PaymentRepo:     pr,
		EntitlementRepo: er,
		Cart:            cs,
		Snap:            snapClient,
		ServerKey:       serverKey,
	}
}

// Begin creates the order from the user's cart at its current adjusted
// prices and returns the hosted-checkout redirect URL.
func (s *CheckoutService) Begin(ctx context.Context, userID string) (string, error) {
	ownerID := "user:" + userID

	items, total, promoCode, err := s.Cart.PricedItems(ctx, ownerID)
	if err != nil {
		return "", err
	}

	// reject the whole checkout when anything is already owned
	courseIDs := make([]string, 0, len(items))
	titles := make(map[string]string, len(items))
	for _, it := range items {
		courseIDs = append(courseIDs, it.CourseID)
		titles[it.CourseID] = it.Title
	}
	ownedID, err := s.EntitlementRepo.ExistsAnyOwned(ctx, userID, courseIDs)
	if err != nil {
		return "", fmt.Errorf("ownership check failed: %w", err)
	}
	if ownedID != "" {
		return "", fmt.Errorf("checkout rejected: you already own '%s'", titles[ownedID])
	}

	orderID, err := s.OrderRepo.CreateWithItems(ctx, userID, total, promoCode, items)
	if err != nil {
		return "", err
	}

	externalRef := fmt.Sprintf("ORDER-%d-%s", orderID, uuid.NewString())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  externalRef,
			GrossAmt: total, // minor units end to end; charged must equal displayed
		},
	}
	resp, snapErr := s.Snap.CreateTransaction(req)
	if snapErr != nil {
		return "", snapErr
	}

	payload, _ := json.Marshal(resp)
	if _, err := s.PaymentRepo.CreatePending(ctx, orderID, total, "midtrans", externalRef, payload); err != nil {
		return "", err
	}

	s.Cart.dispatch(ownerID, false, []cart.Effect{{
		Kind:  cart.EffectTrackEvent,
		Event: model.Event{Name: model.EventCheckoutStarted, Price: total},
	}})

	return resp.RedirectURL, nil
}

// HandleNotification processes a midtrans webhook payload.
func (s *CheckoutService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	orderIDStr, ok := payload["order_id"].(string)
	if !ok {
		return errors.New("missing order_id")
	}

	// internal id is embedded in ORDER-{id}-UUID
	var orderID int64
	if _, err := fmt.Sscanf(orderIDStr, "ORDER-%d-", &orderID); err != nil {
		return errors.New("invalid order reference")
	}

	order, err := s.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.OrderStatus == "Paid" {
		// already processed
		return nil
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)

	if !mt.VerifySignature(orderIDStr, statusCode, grossAmount, signature, s.ServerKey) {
		return errors.New("invalid signature")
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	switch transactionStatus {
	case "settlement":
		return s.finalize(ctx, order, payload)
	case "capture":
		if fraudStatus == "accept" {
			return s.finalize(ctx, order, payload)
		}
	case "expire", "cancel", "deny":
		data, _ := json.Marshal(payload)
		return s.PaymentRepo.MarkFailed(ctx, orderID, data)
	}
	return nil
}

// finalize marks the order and payment paid and grants entitlements in one
// transaction, then clears the buyer's cart.
func (s *CheckoutService) finalize(ctx context.Context, order *model.Order, payload map[string]interface{}) error {
	items, err := s.OrderRepo.GetItems(ctx, order.OrderID)
	if err != nil {
		return err
	}
	courseIDs := make([]string, 0, len(items))
	for _, it := range items {
		courseIDs = append(courseIDs, it.CourseID)
	}

	data, _ := json.Marshal(payload)

	tx, err := s.OrderRepo.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.OrderRepo.MarkPaidTx(ctx, tx, order.OrderID); err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if err := s.PaymentRepo.MarkPaidTx(ctx, tx, order.OrderID, data); err != nil {
		return fmt.Errorf("mark payment paid: %w", err)
	}
	if err := s.EntitlementRepo.GrantTx(ctx, tx, order.UserID, courseIDs); err != nil {
		return fmt.Errorf("grant entitlements: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.Cart.ClearCart(ctx, "user:"+order.UserID)
	return nil
}
