package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"lojavirtual/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = `id, owner_id, category_id, name, price, stock_quantity, description, created_at`

// Create writes the product with its photos and characteristics in one transaction
// and returns the generated id.
func (r *ProductRepo) Create(p domain.Product) (string, error) {
	p.ID = uuid.NewString()

	tx, err := r.db.Beginx()
	if err != nil {
		return "", pkgerrors.Wrap(err, "begin product tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO products(id, owner_id, category_id, name, price, stock_quantity, description)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.OwnerID, p.CategoryID, p.Name, p.Price.StringFixed(2), p.StockQuantity, p.Description); err != nil {
		return "", translate(err, "insert product")
	}
	for i, ph := range p.Photos {
		if _, err := tx.Exec(`INSERT INTO product_photos(product_id, position, url) VALUES(?, ?, ?)`,
			p.ID, i, ph.URL); err != nil {
			return "", translate(err, "insert product photo")
		}
	}
	for _, ch := range p.Characteristics {
		if _, err := tx.Exec(`INSERT INTO product_characteristics(product_id, name, value) VALUES(?, ?, ?)`,
			p.ID, ch.Name, ch.Value); err != nil {
			return "", translate(err, "insert product characteristic")
		}
	}
	if err := tx.Commit(); err != nil {
		return "", pkgerrors.Wrap(err, "commit product tx")
	}
	return p.ID, nil
}

// Get loads the product with photos (in upload order) and characteristics.
func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	if err := r.db.Get(&p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, notFound(err, "product by id")
	}
	p.Photos = []domain.Photo{}
	if err := r.db.Select(&p.Photos, `
	  SELECT product_id, position, url FROM product_photos
	  WHERE product_id = ? ORDER BY position
	`, id); err != nil {
		return domain.Product{}, pkgerrors.Wrap(err, "product photos")
	}
	p.Characteristics = []domain.Characteristic{}
	if err := r.db.Select(&p.Characteristics, `
	  SELECT product_id, name, value FROM product_characteristics
	  WHERE product_id = ? ORDER BY name
	`, id); err != nil {
		return domain.Product{}, pkgerrors.Wrap(err, "product characteristics")
	}
	return p, nil
}

func (r *ProductRepo) Exists(id string) (bool, error) {
	return exists(r.db, `SELECT COUNT(*) FROM products WHERE id = ?`, id)
}

func (r *ProductRepo) Stock(id string) (int, error) {
	var qty int
	if err := r.db.Get(&qty, `SELECT stock_quantity FROM products WHERE id = ?`, id); err != nil {
		return 0, notFound(err, "product stock")
	}
	return qty, nil
}

// decrementStock subtracts by units only if enough stock exists; false when it did not.
func decrementStock(tx *sqlx.Tx, productID string, by int) (bool, error) {
	res, err := tx.Exec(`
		UPDATE products
		SET stock_quantity = stock_quantity - ?
		WHERE id = ? AND stock_quantity >= ?
	`, by, productID, by)
	if err != nil {
		return false, pkgerrors.Wrap(err, "decrement stock")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, pkgerrors.Wrap(err, "decrement stock rows")
	}
	return n > 0, nil
}
