package handlers

import (
	"github.com/gofiber/fiber/v2"

	"inkwell/internal/domain"
	applog "inkwell/internal/log"
	"inkwell/internal/services"
	"inkwell/internal/validate"
)

// CartHandler routes sit behind RequireUser; carts are strictly
// per-account.
type CartHandler struct {
	Cart *services.CartService
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	cv, err := h.Cart.View(u.ID)
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	u := currentUser(c)
	productID := c.FormValue("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing product_id")
	}
	qty := validate.Qty(c.FormValue("qty"))
	if qty < 1 {
		qty = 1
	}

	if err := h.Cart.Add(u.ID, productID, qty); err != nil {
		if err == services.ErrNotFound {
			return notFound(c, "This item is no longer available")
		}
		applog.Error(c, "cart.add", err, map[string]any{"product": productID})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "cart.add", map[string]any{"product": productID, "qty": qty})

	// Back to where the visitor was, like adding from a category page.
	back := c.Get("Referer")
	if back == "" {
		back = "/cart"
	}
	return c.Redirect(back)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	u := currentUser(c)
	productID := c.FormValue("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing product_id")
	}
	if err := h.Cart.Remove(u.ID, productID); err != nil {
		if err == services.ErrNotFound {
			return renderCartWithErr(c, h.Cart, u.ID, "Item not found in cart")
		}
		applog.Error(c, "cart.remove", err, map[string]any{"product": productID})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "cart.remove", map[string]any{"product": productID})
	return c.Redirect("/cart")
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	u := currentUser(c)
	productID := c.FormValue("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing product_id")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.UpdateQuantity(u.ID, productID, qty); err != nil {
		if err == services.ErrNotFound {
			return renderCartWithErr(c, h.Cart, u.ID, "Item not found in cart")
		}
		applog.Error(c, "cart.update", err, map[string]any{"product": productID})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "cart.update", map[string]any{"product": productID, "qty": qty})
	return c.Redirect("/cart")
}

// renderCartWithErr shows the cart page with a user-visible message;
// NotFound on a cart mutation is not fatal.
func renderCartWithErr(c *fiber.Ctx, cart *services.CartService, userID, msg string) error {
	cv, err := cart.View(userID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return render(c, "cart", fiber.Map{"Cart": cv, "Err": msg})
}
