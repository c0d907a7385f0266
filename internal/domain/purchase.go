package domain

import "strings"

type PaymentGateway string

const (
	GatewayPayPal    PaymentGateway = "PAYPAL"
	GatewayPagSeguro PaymentGateway = "PAGSEGURO"
)

// ParseGateway accepts the gateway name in any letter case.
func ParseGateway(s string) (PaymentGateway, bool) {
	switch g := PaymentGateway(strings.ToUpper(strings.TrimSpace(s))); g {
	case GatewayPayPal, GatewayPagSeguro:
		return g, true
	}
	return "", false
}

type PurchaseStatus string

const (
	PurchasePending PurchaseStatus = "PENDING"
	PurchasePaid    PurchaseStatus = "PAID"
	PurchaseFailed  PurchaseStatus = "FAILED"
)

// Terminal reports whether no further transition is allowed.
func (s PurchaseStatus) Terminal() bool {
	return s == PurchasePaid || s == PurchaseFailed
}

type Purchase struct {
	ID        int64          `db:"id"`
	BuyerID   int64          `db:"buyer_id"`
	ProductID string         `db:"product_id"`
	Quantity  int            `db:"quantity"`
	Gateway   PaymentGateway `db:"gateway"`
	Status    PurchaseStatus `db:"status"`
	PaymentID string         `db:"payment_id"`
	Version   int            `db:"version"`
	CreatedAt string         `db:"created_at"`
	UpdatedAt string         `db:"updated_at"`
}

// PaymentTransaction records one gateway callback. Applied is false when the
// purchase was already terminal and the callback changed nothing.
type PaymentTransaction struct {
	ID            int64          `db:"id"`
	PurchaseID    int64          `db:"purchase_id"`
	PaymentID     string         `db:"payment_id"`
	GatewayStatus string         `db:"gateway_status"`
	Outcome       PurchaseStatus `db:"outcome"`
	Applied       bool           `db:"applied"`
	CreatedAt     string         `db:"created_at"`
}
