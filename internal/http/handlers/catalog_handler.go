package handlers

import (
	"github.com/gofiber/fiber/v2"

	"inkwell/internal/domain"
	applog "inkwell/internal/log"
	"inkwell/internal/services"
	"inkwell/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Cart    *services.CartService
}

// cartCount is 0 for anonymous visitors; the badge only renders for
// logged-in users.
func (h *CatalogHandler) cartCount(c *fiber.Ctx) int {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return 0
	}
	n, err := h.Cart.Count(u.ID)
	if err != nil {
		return 0
	}
	return n
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "home.categories", err, nil)
		return fiber.ErrInternalServerError
	}
	featured, err := h.Catalog.Featured(4)
	if err != nil {
		applog.Error(c, "home.featured", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "home", fiber.Map{
		"Categories": cats,
		"Featured":   featured,
		"CartCount":  h.cartCount(c),
	})
}

func (h *CatalogHandler) CategoryDetail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return notFound(c, "Category not found")
	}
	cat, products, err := h.Catalog.CategoryDetail(slug, c.QueryInt("page", 1), 12)
	if err == services.ErrNotFound {
		return notFound(c, "Category not found")
	}
	if err != nil {
		applog.Error(c, "category.detail", err, map[string]any{"slug": slug})
		return fiber.ErrInternalServerError
	}
	return render(c, "category", fiber.Map{
		"Category":  cat,
		"Products":  products,
		"CartCount": h.cartCount(c),
	})
}

func (h *CatalogHandler) ProductDetail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "This item is no longer available")
	}
	p, err := h.Catalog.ProductBySlug(slug)
	if err == services.ErrNotFound {
		return notFound(c, "This item is no longer available")
	}
	if err != nil {
		applog.Error(c, "product.detail", err, map[string]any{"slug": slug})
		return fiber.ErrInternalServerError
	}
	return render(c, "product", fiber.Map{"P": p})
}
