package repos

import (
	"inkwell/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, slug, description, image_path,
  price, discount_pct, stock, available,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) BySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE slug = ?`, slug)
	return p, err
}

func (r *ProductRepo) ListAvailableByCategory(categoryID string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category_id = ? AND available = 1
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?
	`, categoryID, limit, offset)
	return out, err
}

// Featured returns the newest available products for the home page.
func (r *ProductRepo) Featured(limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE available = 1
	  ORDER BY created_at DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT ` + productCols + ` FROM products ORDER BY name`)
	return out, err
}

// Stock/availability updates are last-write-wins; there is no
// reservation or locking.
func (r *ProductRepo) UpdateStock(id string, stock int, available bool) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET stock = ?, available = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, stock, available, id)
	return err
}

func (r *ProductRepo) SetImage(id, imagePath string) error {
	_, err := r.db.Exec(`
	  UPDATE products SET image_path = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, imagePath, id)
	return err
}
