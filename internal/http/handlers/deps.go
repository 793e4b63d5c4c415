package handlers

import (
	"github.com/jmoiron/sqlx"

	"inkwell/internal/config"
	"inkwell/internal/mail"
	"inkwell/internal/repos"
	"inkwell/internal/services"
	"inkwell/internal/storage"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	StockHandler   *StockHandler
	PagesHandler   *PagesHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, notifier mail.Notifier, media *storage.MediaStore) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	stockSvc := services.NewStockService(prodRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, orderRepo, notifier, cfg.FromEmail, cfg.AdminEmail)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc, Cart: cartSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Cart: cartSvc, Checkout: checkoutSvc, Auth: auth, Orders: orderRepo},
		StockHandler:   &StockHandler{Stock: stockSvc},
		PagesHandler:   &PagesHandler{Notifier: notifier, FromEmail: cfg.FromEmail, OperatorEmail: cfg.AdminEmail},
		AdminHandler:   &AdminHandler{Orders: orderRepo, Prods: prodRepo, Cats: catRepo, Media: media},
	}
}
