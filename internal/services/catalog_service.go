package services

import (
	"database/sql"

	"inkwell/internal/domain"
	"inkwell/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// Featured returns the newest available products for the home page.
func (s *CatalogService) Featured(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	return s.Prods.Featured(limit)
}

// CategoryDetail resolves a category by slug together with its
// available products.
func (s *CatalogService) CategoryDetail(slug string, page, pageSize int) (domain.Category, []domain.Product, error) {
	cat, err := s.Cats.BySlug(slug)
	if err == sql.ErrNoRows {
		return domain.Category{}, nil, ErrNotFound
	}
	if err != nil {
		return domain.Category{}, nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	products, err := s.Prods.ListAvailableByCategory(cat.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return domain.Category{}, nil, err
	}
	return cat, products, nil
}

// ProductBySlug resolves a product detail page. Unavailable products
// 404 like missing ones.
func (s *CatalogService) ProductBySlug(slug string) (domain.Product, error) {
	p, err := s.Prods.BySlug(slug)
	if err == sql.ErrNoRows {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	if !p.Available {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}
