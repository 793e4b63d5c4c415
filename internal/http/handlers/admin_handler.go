package handlers

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/domain"
	applog "inkwell/internal/log"
	"inkwell/internal/repos"
	"inkwell/internal/storage"
	"inkwell/internal/validate"
)

// AdminHandler covers the small back-office surface: order status,
// product stock, category management and media uploads.
type AdminHandler struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
	Cats   *repos.CategoryRepo
	Media  *storage.MediaStore
}

var validStatuses = map[string]bool{
	domain.StatusPending:    true,
	domain.StatusProcessing: true,
	domain.StatusCompleted:  true,
	domain.StatusCanceled:   true,
}

func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders})
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	publicID := c.Params("id")
	status := strings.ToLower(strings.TrimSpace(c.FormValue("status")))
	if !rePublicID.MatchString(publicID) || !validStatuses[status] {
		return c.Status(fiber.StatusBadRequest).SendString("invalid order or status")
	}
	if err := h.Orders.UpdateStatus(publicID, status); err != nil {
		applog.Error(c, "admin.orders.status", err, map[string]any{"order_id": publicID})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": publicID, "status": status})
	return c.Redirect("/admin/orders")
}

func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	products, err := h.Prods.ListAll()
	if err != nil {
		applog.Error(c, "admin.products.list", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "admin_products", fiber.Map{"Products": products})
}

// UpdateStock sets stock and availability for one product.
// Last-write-wins; there is no reservation.
func (h *AdminHandler) UpdateStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	stock, err := strconv.Atoi(strings.TrimSpace(c.FormValue("stock")))
	if err != nil || stock < 0 {
		return c.Status(fiber.StatusBadRequest).SendString("invalid stock")
	}
	available := c.FormValue("available") == "on" || c.FormValue("available") == "1"

	if err := h.Prods.UpdateStock(productID, stock, available); err != nil {
		applog.Error(c, "admin.stock.update", err, map[string]any{"product": productID})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "admin.stock.update", map[string]any{
		"product": productID, "stock": stock, "available": available,
	})
	return c.Redirect("/admin/products")
}

// UploadProductImage stores a product shot in object storage. Product
// keys are write-once; a second upload for the same product fails.
func (h *AdminHandler) UploadProductImage(c *fiber.Ctx) error {
	if h.Media == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("media storage not configured")
	}
	productID := c.Params("id")
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("missing image")
	}
	f, err := fh.Open()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	defer f.Close()

	name := productID + "/main" + strings.ToLower(filepath.Ext(fh.Filename))
	key, err := h.Media.Put(c.Context(), storage.PrefixProducts, name,
		fh.Header.Get("Content-Type"), f, fh.Size)
	if err == storage.ErrExists {
		return c.Status(fiber.StatusConflict).SendString("product image already uploaded")
	}
	if err != nil {
		applog.Error(c, "admin.media.product", err, map[string]any{"product": productID})
		return fiber.ErrInternalServerError
	}
	if err := h.Prods.SetImage(productID, key); err != nil {
		applog.Error(c, "admin.media.product.link", err, map[string]any{"product": productID})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "admin.media.product", map[string]any{"product": productID, "key": key})
	return c.Redirect("/admin/products")
}

// categoryRow is a category plus its resolved image address.
type categoryRow struct {
	domain.Category
	ImageURL string
}

func (h *AdminHandler) CategoriesPage(c *fiber.Ctx) error {
	cats, err := h.Cats.List()
	if err != nil {
		applog.Error(c, "admin.categories.list", err, nil)
		return fiber.ErrInternalServerError
	}
	rows := make([]categoryRow, 0, len(cats))
	for _, cat := range cats {
		row := categoryRow{Category: cat}
		if h.Media != nil && cat.ImagePath != "" {
			row.ImageURL = h.Media.URL(cat.ImagePath)
		}
		rows = append(rows, row)
	}
	return render(c, "admin_categories", fiber.Map{"Categories": rows})
}

// UpsertCategory creates a category or updates one in place, keyed by
// slug.
func (h *AdminHandler) UpsertCategory(c *fiber.Ctx) error {
	slug, okSlug := validate.Slug(c.FormValue("slug"))
	name, okName := validate.Text(c.FormValue("name"), 100)
	desc := strings.TrimSpace(c.FormValue("description"))
	if !okSlug || !okName || len(desc) > 500 {
		return c.Status(fiber.StatusBadRequest).SendString("invalid category")
	}
	cat := domain.Category{
		ID:          "cat-" + slug,
		Name:        name,
		Slug:        slug,
		Description: desc,
	}
	if err := h.Cats.Upsert(cat); err != nil {
		applog.Error(c, "admin.categories.upsert", err, map[string]any{"slug": slug})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "admin.categories.upsert", map[string]any{"slug": slug})
	return c.Redirect("/admin/categories")
}

// DeleteCategory removes a category; its products go with it.
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid category")
	}
	if err := h.Cats.Delete(slug); err != nil {
		applog.Error(c, "admin.categories.delete", err, map[string]any{"slug": slug})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"slug": slug})
	return c.Redirect("/admin/categories")
}

// UploadCategoryImage stores a category banner. Unlike product shots,
// banners may be replaced.
func (h *AdminHandler) UploadCategoryImage(c *fiber.Ctx) error {
	if h.Media == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("media storage not configured")
	}
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid category")
	}
	if _, err := h.Cats.BySlug(slug); err != nil {
		return notFound(c, "No such category")
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("missing image")
	}
	f, err := fh.Open()
	if err != nil {
		return fiber.ErrInternalServerError
	}
	defer f.Close()

	name := slug + strings.ToLower(filepath.Ext(fh.Filename))
	key, err := h.Media.Put(c.Context(), storage.PrefixCategories, name,
		fh.Header.Get("Content-Type"), f, fh.Size)
	if err != nil {
		applog.Error(c, "admin.media.category", err, map[string]any{"slug": slug})
		return fiber.ErrInternalServerError
	}
	if err := h.Cats.SetImage(slug, key); err != nil {
		applog.Error(c, "admin.media.category.link", err, map[string]any{"slug": slug})
		return fiber.ErrInternalServerError
	}
	applog.Audit(c, "admin.media.category", map[string]any{"slug": slug, "key": key})
	return c.Redirect("/admin/categories")
}
