package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	ParentID  *int64 `db:"parent_id"`
	CreatedAt string `db:"created_at"`
}

type Product struct {
	ID            string          `db:"id"`
	OwnerID       int64           `db:"owner_id"`
	CategoryID    int64           `db:"category_id"`
	Name          string          `db:"name"`
	Price         decimal.Decimal `db:"price"`
	StockQuantity int             `db:"stock_quantity"`
	Description   string          `db:"description"`
	CreatedAt     string          `db:"created_at"`

	Photos          []Photo          `db:"-"`
	Characteristics []Characteristic `db:"-"`
}

// Photo is an uploaded product image; Position keeps submission order.
type Photo struct {
	ProductID string `db:"product_id"`
	Position  int    `db:"position"`
	URL       string `db:"url"`
}

type Characteristic struct {
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Value     string `db:"value"`
}

type Opinion struct {
	ID          int64  `db:"id"`
	ProductID   string `db:"product_id"`
	UserID      int64  `db:"user_id"`
	Rating      int    `db:"rating"`
	Title       string `db:"title"`
	Description string `db:"description"`
	CreatedAt   string `db:"created_at"`
}

type Question struct {
	ID        int64  `db:"id"`
	ProductID string `db:"product_id"`
	UserID    int64  `db:"user_id"`
	Title     string `db:"title"`
	CreatedAt string `db:"created_at"`
}
