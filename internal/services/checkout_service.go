package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inkwell/internal/domain"
	"inkwell/internal/mail"
	"inkwell/internal/orderid"
	"inkwell/internal/pricing"
	"inkwell/internal/repos"
	"inkwell/internal/validate"
)

// CheckoutService turns an active cart into a placed order: totals are
// recomputed from live rows, the order plus its snapshots commit in
// one transaction with the cart clear, and notifications go out only
// after the commit.
type CheckoutService struct {
	Carts    *repos.CartRepo
	Orders   *repos.OrderRepo
	Gen      *orderid.Generator
	Notifier mail.Notifier

	FromEmail     string
	OperatorEmail string
}

func NewCheckoutService(carts *repos.CartRepo, orders *repos.OrderRepo, notifier mail.Notifier, fromEmail, operatorEmail string) *CheckoutService {
	return &CheckoutService{
		Carts:         carts,
		Orders:        orders,
		Gen:           orderid.New(orders.PublicIDExists),
		Notifier:      notifier,
		FromEmail:     fromEmail,
		OperatorEmail: operatorEmail,
	}
}

// PlacedOrder reports a successful checkout. NotifyErr carries a
// notification dispatch failure; the order itself is valid regardless.
type PlacedOrder struct {
	PublicID  string
	Total     decimal.Decimal
	NotifyErr error
}

// Place runs the checkout flow for a validated shipping form. An empty
// cart rejects before any mutation.
func (s *CheckoutService) Place(userID string, ship validate.Shipping) (PlacedOrder, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return PlacedOrder{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return PlacedOrder{}, err
	}
	if len(lines) == 0 {
		return PlacedOrder{}, ErrEmptyCart
	}

	// Totals come from the live cart rows, never a cached value.
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(pricing.LineTotal(pricing.Line{
			UnitPrice: l.Price, DiscountPct: l.DiscountPct, Qty: l.Qty,
		}))
	}
	deliveryCharge := pricing.DeliveryCharge(subtotal)

	publicID, err := s.Gen.Next()
	if err != nil {
		return PlacedOrder{}, err
	}

	order := domain.Order{
		ID:             uuid.NewString(),
		PublicID:       publicID,
		UserID:         userID,
		FullName:       ship.FullName,
		Email:          ship.Email,
		PhoneNumber:    ship.PhoneNumber,
		Address:        ship.Address,
		City:           ship.City,
		PostalCode:     ship.PostalCode,
		Country:        ship.Country,
		Status:         domain.StatusPending,
		DeliveryCharge: deliveryCharge,
		TotalPrice:     subtotal.Add(deliveryCharge),
	}

	items := make([]repos.OrderItemSnapshot, 0, len(lines))
	for _, l := range lines {
		pid := l.ProductID
		it := repos.OrderItemSnapshot{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: &pid,
			Quantity:  l.Qty,
			Price:     l.Price,
		}
		if l.DiscountPct > 0 {
			dp := pricing.FinalPrice(l.Price, l.DiscountPct)
			it.DiscountPrice = &dp
		}
		items = append(items, it)
	}

	if err := s.Orders.CreateWithItems(order, items, cartID); err != nil {
		return PlacedOrder{}, err
	}

	return PlacedOrder{
		PublicID:  publicID,
		Total:     order.TotalPrice,
		NotifyErr: s.notify(order),
	}, nil
}

// notify sends the customer receipt and the operator alert. The first
// failure is returned for logging; it never rolls back the order.
func (s *CheckoutService) notify(o domain.Order) error {
	if s.Notifier == nil {
		return nil
	}
	if err := s.Notifier.Send(mail.OrderConfirmation(o, s.FromEmail)); err != nil {
		return err
	}
	return s.Notifier.Send(mail.OperatorAlert(o, s.FromEmail, s.OperatorEmail))
}
