package repos

import (
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"lojavirtual/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(name string, parentID *int64) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO categories(name,parent_id) VALUES(?,?)`, name, parentID)
	if err != nil {
		return 0, translate(err, "insert category")
	}
	return res.LastInsertId()
}

func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id,name,parent_id,created_at FROM categories WHERE id=?`, id)
	if err != nil {
		return domain.Category{}, notFound(err, "category by id")
	}
	return c, nil
}

func (r *CategoryRepo) Exists(id int64) (bool, error) {
	return exists(r.db, `SELECT COUNT(*) FROM categories WHERE id=?`, id)
}

func (r *CategoryRepo) NameTaken(name string) (bool, error) {
	return exists(r.db, `SELECT COUNT(*) FROM categories WHERE LOWER(name)=LOWER(?)`, name)
}

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
  SELECT id, name, parent_id, created_at
  FROM categories
  ORDER BY name
`)
	return out, pkgerrors.Wrap(err, "list categories")
}
