package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guitarshop/cart-service/internal/adapter/email"
	"github.com/guitarshop/cart-service/internal/adapter/nats"
	"github.com/guitarshop/cart-service/internal/adapter/shopapi"
	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/platform/logger"
	"github.com/guitarshop/cart-service/internal/repository"
)

const natsSubjectCheckoutCompleted = "cart.checkout.completed"

// CheckoutService coordinates the two remote-triggered cart transitions:
// promo-code application and order submission. A failed remote call leaves
// the cart exactly as it was; no retry happens at this layer.
type CheckoutService interface {
	ApplyPromoCode(ctx context.Context, code string) (entity.CartState, error)
	SubmitOrder(ctx context.Context, receiptEmail string) (*entity.Order, error)
}

type checkoutService struct {
	cart      CartService
	shop      shopapi.Client
	archive   repository.OrderArchiveRepository // optional
	publisher nats.MessagePublisher             // optional
	emails    email.EmailSender                 // optional
	log       logger.Logger
}

func NewCheckoutService(
	cart CartService,
	shop shopapi.Client,
	archive repository.OrderArchiveRepository,
	publisher nats.MessagePublisher,
	emails email.EmailSender,
	log logger.Logger,
) CheckoutService {
	return &checkoutService{
		cart:      cart,
		shop:      shop,
		archive:   archive,
		publisher: publisher,
		emails:    emails,
		log:       log,
	}
}

// ApplyPromoCode validates the coupon remotely and, only on success, stores
// the code and applies the resolved percentage. The discount is recomputed
// from the current cart total, so a later coupon replaces an earlier one
// instead of stacking.
func (s *checkoutService) ApplyPromoCode(ctx context.Context, code string) (entity.CartState, error) {
	s.log.Infof("Validating promo code %q", code)

	discountPercent, err := s.shop.ValidateCoupon(ctx, code)
	if err != nil {
		s.log.Warnf("Promo code %q rejected: %v", code, err)
		return entity.CartState{}, fmt.Errorf("could not apply promo code: %w", err)
	}

	if _, err := s.cart.Apply(ctx, entity.SetCoupon{Code: code}); err != nil {
		return entity.CartState{}, fmt.Errorf("could not store coupon: %w", err)
	}
	state, err := s.cart.Apply(ctx, entity.ApplyPromo{DiscountPercent: discountPercent})
	if err != nil {
		return entity.CartState{}, fmt.Errorf("could not apply discount: %w", err)
	}

	s.log.Infof("Promo code %q applied: %.0f%% off, total with discount %.2f",
		code, discountPercent, state.TotalCartPriceWithDiscount)
	return state, nil
}

// SubmitOrder posts the current cart as an order. The cart is cleared only
// after the remote side confirms; archive, event and receipt are
// best-effort follow-ups that never undo a confirmed checkout.
func (s *checkoutService) SubmitOrder(ctx context.Context, receiptEmail string) (*entity.Order, error) {
	state := s.cart.State()

	order, err := entity.NewOrderFromCart(state)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Submitting order %s: %d items, total %.2f", order.ID, len(order.Items), order.TotalWithDiscount)

	if err := s.shop.CreateOrder(ctx, order); err != nil {
		s.log.Errorf("Order %s rejected by shop API: %v", order.ID, err)
		return nil, fmt.Errorf("could not submit order: %w", err)
	}

	if _, err := s.cart.Clear(ctx); err != nil {
		// The order is confirmed remotely; a failed clear must not fail the
		// checkout, but it leaves a stale snapshot worth shouting about.
		s.log.Errorf("Order %s confirmed but cart clear failed: %v", order.ID, err)
	}

	if s.archive != nil {
		if err := s.archive.Save(ctx, order); err != nil {
			s.log.Warnf("Failed to archive order %s: %v", order.ID, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, natsSubjectCheckoutCompleted, order); err != nil {
			s.log.Warnf("Failed to publish checkout event for order %s: %v", order.ID, err)
		}
	}
	if s.emails != nil && receiptEmail != "" {
		subject := fmt.Sprintf("Your guitar shop order %s", order.ID)
		if err := s.emails.Send(ctx, []string{receiptEmail}, subject, buildReceiptText(order)); err != nil {
			s.log.Warnf("Failed to send receipt for order %s: %v", order.ID, err)
		}
	}

	s.log.Infof("Order %s completed successfully", order.ID)
	return order, nil
}

func buildReceiptText(order *entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order: %s\nPlaced at: %s\n\nItems:\n", order.ID, order.CreatedAt.Format("2006-01-02 15:04"))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (x%d) @ %.2f = %.2f\n", item.ProductName, item.Quantity, item.PricePerUnit, item.TotalPrice)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.TotalAmount)
	if order.Discount > 0 {
		fmt.Fprintf(&b, "Discount (%.0f%%): -%.2f\nTotal to pay: %.2f\n",
			order.DiscountPercent, order.Discount, order.TotalWithDiscount)
	}
	return b.String()
}
