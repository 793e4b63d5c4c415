package repos

import (
	"inkwell/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, slug, description, image_path,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

func (r *CategoryRepo) BySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, description, image_path,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  WHERE slug = ?
	`, slug)
	return c, err
}

// Upsert creates or updates a category by slug. Deleting a category
// cascades to its products at the schema level.
func (r *CategoryRepo) Upsert(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, slug, description, image_path)
	  VALUES(?,?,?,?,?)
	  ON CONFLICT(slug) DO UPDATE SET
	    name = excluded.name,
	    description = excluded.description,
	    image_path = CASE WHEN excluded.image_path != '' THEN excluded.image_path ELSE categories.image_path END,
	    updated_at = CURRENT_TIMESTAMP
	`, c.ID, c.Name, c.Slug, c.Description, c.ImagePath)
	return err
}

func (r *CategoryRepo) SetImage(slug, imagePath string) error {
	_, err := r.db.Exec(`
	  UPDATE categories SET image_path = ?, updated_at = CURRENT_TIMESTAMP WHERE slug = ?
	`, imagePath, slug)
	return err
}

func (r *CategoryRepo) Delete(slug string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE slug = ?`, slug)
	return err
}
