package repos

import (
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"lojavirtual/internal/domain"
)

type PurchaseRepo struct{ db *sqlx.DB }

func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

const purchaseSelect = `
  SELECT id, buyer_id, product_id, quantity, gateway, status,
         COALESCE(payment_id, '') AS payment_id, version,
         created_at, COALESCE(updated_at, '') AS updated_at
  FROM purchases WHERE id = ?`

// Create records a PENDING purchase. Stock is untouched until payment succeeds.
func (r *PurchaseRepo) Create(buyerID int64, productID string, qty int, gw domain.PaymentGateway) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO purchases(buyer_id, product_id, quantity, gateway, status)
	  VALUES(?, ?, ?, ?, ?)
	`, buyerID, productID, qty, string(gw), string(domain.PurchasePending))
	if err != nil {
		return 0, translate(err, "insert purchase")
	}
	return res.LastInsertId()
}

func (r *PurchaseRepo) Get(id int64) (domain.Purchase, error) {
	return getPurchase(r.db, id)
}

func (r *PurchaseRepo) Exists(id int64) (bool, error) {
	return exists(r.db, `SELECT COUNT(*) FROM purchases WHERE id = ?`, id)
}

// Settlement is the result of applying one gateway callback.
type Settlement struct {
	Purchase domain.Purchase
	// Applied is false when the purchase was already terminal or lost a concurrent race.
	Applied bool
	// StockShort is set when a successful payment could not be honoured for lack of stock.
	StockShort bool
}

// Settle moves a PENDING purchase to outcome and records the callback in the
// payment ledger, all in one transaction. A PAID outcome decrements stock; when
// stock is short the purchase is settled FAILED instead. Terminal purchases are
// never changed, so redelivered callbacks are no-ops.
func (r *PurchaseRepo) Settle(purchaseID int64, paymentID, gatewayStatus string, outcome domain.PurchaseStatus) (Settlement, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return Settlement{}, pkgerrors.Wrap(err, "begin settle tx")
	}
	defer func() { _ = tx.Rollback() }()

	p, err := getPurchase(tx, purchaseID)
	if err != nil {
		return Settlement{}, err
	}

	if p.Status.Terminal() {
		if err := insertLedger(tx, purchaseID, paymentID, gatewayStatus, outcome, false); err != nil {
			return Settlement{}, err
		}
		if err := tx.Commit(); err != nil {
			return Settlement{}, pkgerrors.Wrap(err, "commit settle tx")
		}
		return Settlement{Purchase: p}, nil
	}

	var out Settlement
	if outcome == domain.PurchasePaid {
		ok, err := decrementStock(tx, p.ProductID, p.Quantity)
		if err != nil {
			return Settlement{}, err
		}
		if !ok {
			outcome = domain.PurchaseFailed
			out.StockShort = true
		}
	}

	res, err := tx.Exec(`
	  UPDATE purchases
	  SET status = ?, payment_id = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status = ? AND version = ?
	`, string(outcome), paymentID, p.ID, string(domain.PurchasePending), p.Version)
	if err != nil {
		return Settlement{}, pkgerrors.Wrap(err, "update purchase status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Settlement{}, pkgerrors.Wrap(err, "update purchase rows")
	}
	if n == 0 {
		// another settlement won; undo the stock change and report the winner's state
		_ = tx.Rollback()
		if err := insertLedger(r.db, purchaseID, paymentID, gatewayStatus, outcome, false); err != nil {
			return Settlement{}, err
		}
		cur, err := r.Get(purchaseID)
		if err != nil {
			return Settlement{}, err
		}
		return Settlement{Purchase: cur}, nil
	}

	if err := insertLedger(tx, purchaseID, paymentID, gatewayStatus, outcome, true); err != nil {
		return Settlement{}, err
	}
	if err := tx.Commit(); err != nil {
		return Settlement{}, pkgerrors.Wrap(err, "commit settle tx")
	}

	p.Status = outcome
	p.PaymentID = paymentID
	p.Version++
	out.Purchase = p
	out.Applied = true
	return out, nil
}

// Ledger lists every callback received for the purchase, oldest first.
func (r *PurchaseRepo) Ledger(purchaseID int64) ([]domain.PaymentTransaction, error) {
	out := []domain.PaymentTransaction{}
	err := r.db.Select(&out, `
	  SELECT id, purchase_id, payment_id, gateway_status, outcome, applied, created_at
	  FROM payment_transactions WHERE purchase_id = ? ORDER BY id
	`, purchaseID)
	return out, pkgerrors.Wrap(err, "payment ledger")
}

func getPurchase(q sqlx.Queryer, id int64) (domain.Purchase, error) {
	var p domain.Purchase
	if err := sqlx.Get(q, &p, purchaseSelect, id); err != nil {
		return domain.Purchase{}, notFound(err, "purchase by id")
	}
	return p, nil
}

func insertLedger(ex sqlx.Execer, purchaseID int64, paymentID, gatewayStatus string, outcome domain.PurchaseStatus, applied bool) error {
	_, err := ex.Exec(`
	  INSERT INTO payment_transactions(purchase_id, payment_id, gateway_status, outcome, applied)
	  VALUES(?, ?, ?, ?, ?)
	`, purchaseID, paymentID, gatewayStatus, string(outcome), applied)
	return pkgerrors.Wrap(err, "insert payment transaction")
}
