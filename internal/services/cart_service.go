package services

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"inkwell/internal/pricing"
	"inkwell/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts qty units of a product in the user's cart, merging into an
// existing line. Missing or unavailable products report ErrNotFound.
func (s *CartService) Add(userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !p.Available {
		return ErrNotFound
	}
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return err
	}
	return s.Carts.UpsertItem(cartID, productID, qty)
}

// Remove deletes a line; ErrNotFound when the product is not in the
// cart, leaving the cart unchanged.
func (s *CartService) Remove(userID, productID string) error {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return err
	}
	if err := s.Carts.DeleteItem(cartID, productID); err == sql.ErrNoRows {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return nil
}

// UpdateQuantity sets a line's quantity; zero or negative delegates to
// Remove.
func (s *CartService) UpdateQuantity(userID, productID string, qty int) error {
	if qty <= 0 {
		return s.Remove(userID, productID)
	}
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return err
	}
	if err := s.Carts.SetQty(cartID, productID, qty); err == sql.ErrNoRows {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return nil
}

// ViewLine is a cart line with its computed prices.
type ViewLine struct {
	repos.CartLine
	UnitFinal decimal.Decimal
	LineTotal decimal.Decimal
}

type CartView struct {
	Lines          []ViewLine
	Subtotal       decimal.Decimal
	DeliveryCharge decimal.Decimal
	Total          decimal.Decimal
	Count          int
}

// View recomputes every price from the live product rows; nothing is
// cached between requests.
func (s *CartService) View(userID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}

	cv := CartView{Subtotal: decimal.Zero}
	for _, l := range lines {
		pl := pricing.Line{UnitPrice: l.Price, DiscountPct: l.DiscountPct, Qty: l.Qty}
		vl := ViewLine{
			CartLine:  l,
			UnitFinal: pricing.FinalPrice(l.Price, l.DiscountPct),
			LineTotal: pricing.LineTotal(pl),
		}
		cv.Lines = append(cv.Lines, vl)
		cv.Subtotal = cv.Subtotal.Add(vl.LineTotal)
		cv.Count += l.Qty
	}
	cv.DeliveryCharge = pricing.DeliveryCharge(cv.Subtotal)
	cv.Total = cv.Subtotal.Add(cv.DeliveryCharge)
	return cv, nil
}

// Count backs the nav badge without loading full lines.
func (s *CartService) Count(userID string) (int, error) {
	return s.Carts.Count(userID)
}
