package handlers

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/domain"
	applog "inkwell/internal/log"
	"inkwell/internal/repos"
	"inkwell/internal/services"
	"inkwell/internal/validate"
)

var rePublicID = regexp.MustCompile(`^[A-Z0-9]{8}$`)

type OrderHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Auth     *services.AuthService
	Orders   *repos.OrderRepo
}

// CheckoutForm shows the shipping form, prefilled from the profile.
// An empty cart bounces straight back to the cart page.
func (h *OrderHandler) CheckoutForm(c *fiber.Ctx) error {
	u := currentUser(c)
	cv, err := h.Cart.View(u.ID)
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return fiber.ErrInternalServerError
	}
	if len(cv.Lines) == 0 {
		return render(c, "cart", fiber.Map{"Cart": cv, "Err": "Your cart is empty!"})
	}
	profile, err := h.Auth.Profile(u.ID)
	if err != nil {
		profile = domain.Profile{}
	}
	return render(c, "checkout", fiber.Map{"Cart": cv, "Profile": profile})
}

// Place validates the shipping form and runs the checkout flow.
// Validation failure re-renders the form with field errors before any
// mutation.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	u := currentUser(c)

	ship, fieldErrs := validate.ShippingForm(func(key string) string { return c.FormValue(key) })
	if fieldErrs != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "shipping", "fields": len(fieldErrs)})
		cv, err := h.Cart.View(u.ID)
		if err != nil {
			return fiber.ErrInternalServerError
		}
		c.Status(fiber.StatusBadRequest)
		return render(c, "checkout", fiber.Map{"Cart": cv, "Errors": fieldErrs})
	}

	placed, err := h.Checkout.Place(u.ID, ship)
	if err == services.ErrEmptyCart {
		cv, verr := h.Cart.View(u.ID)
		if verr != nil {
			return fiber.ErrInternalServerError
		}
		c.Status(fiber.StatusBadRequest)
		return render(c, "cart", fiber.Map{"Cart": cv, "Err": "Your cart is empty!"})
	}
	if err != nil {
		applog.Error(c, "order.place.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	if placed.NotifyErr != nil {
		// Advisory only; the order stands.
		applog.Error(c, "order.notify.fail", placed.NotifyErr, map[string]any{"order_id": placed.PublicID})
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": placed.PublicID,
		"total":    placed.Total.StringFixed(2),
	})
	return c.Redirect("/order/" + placed.PublicID)
}

// Confirmation shows one order; only its owner (or an admin) may see
// it.
func (h *OrderHandler) Confirmation(c *fiber.Ctx) error {
	publicID := c.Params("id")
	if !rePublicID.MatchString(publicID) {
		return notFound(c, "Order not found")
	}
	o, items, err := h.Orders.GetByPublicID(publicID)
	if err != nil {
		return notFound(c, "Order not found")
	}

	u := currentUser(c)
	if u.ID != o.UserID && u.Role != "ADMIN" {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": publicID})
		return notFound(c, "Order not found")
	}

	subtotal := o.TotalPrice.Sub(o.DeliveryCharge)
	return render(c, "order", fiber.Map{"Order": o, "Items": items, "Subtotal": subtotal})
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Orders.ListByUser(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "order_history", fiber.Map{"Orders": orders})
}
