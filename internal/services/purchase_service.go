package services

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"lojavirtual/internal/domain"
	"lojavirtual/internal/repos"
	"lojavirtual/internal/validate"
)

// MsgStockExceeded is reported as an object-level violation, without a field.
const MsgStockExceeded = "A quantidade solicitada excede o estoque disponível"

type PurchaseService struct {
	Users     *repos.UserRepo
	Prods     *repos.ProductRepo
	Purchases *repos.PurchaseRepo
	Mail      Mailer
	Logger    func() *zap.Logger
	// ConfirmURL is where gateways send buyers back after payment.
	ConfirmURL string
}

func NewPurchaseService(users *repos.UserRepo, prods *repos.ProductRepo, purchases *repos.PurchaseRepo,
	mail Mailer, logger func() *zap.Logger, publicBaseURL string) *PurchaseService {
	return &PurchaseService{
		Users:      users,
		Prods:      prods,
		Purchases:  purchases,
		Mail:       mail,
		Logger:     logger,
		ConfirmURL: strings.TrimRight(publicBaseURL, "/") + "/api/purchases/confirm-payment",
	}
}

type Initiated struct {
	PurchaseID int64
	PaymentURL string
}

// Initiate records a PENDING purchase and returns where to send the buyer to pay.
// Stock is only checked here; it is reserved when the payment is confirmed.
func (s *PurchaseService) Initiate(ctx context.Context, p domain.Principal, req NewPurchaseRequest) (Initiated, error) {
	gw, vs := req.Validate()
	var prod domain.Product
	if !vs.Has("productId") {
		ok, err := vs.Registered("productId", func() (bool, error) { return s.Prods.Exists(req.ProductID) })
		if err != nil {
			return Initiated{}, err
		}
		if ok {
			if prod, err = s.Prods.Get(req.ProductID); err != nil {
				return Initiated{}, err
			}
		}
	}
	if err := vs.Err(); err != nil {
		return Initiated{}, err
	}
	if req.Quantity > prod.StockQuantity {
		return Initiated{}, validate.Violations{{Message: MsgStockExceeded}}
	}

	buyer, err := registeredUser(s.Users, p)
	if err != nil {
		return Initiated{}, err
	}

	id, err := s.Purchases.Create(buyer.ID, prod.ID, req.Quantity, gw)
	if err != nil {
		return Initiated{}, err
	}
	gateway, _ := GatewayFor(gw)

	if owner, err := s.Users.ByID(prod.OwnerID); err == nil {
		notify(ctx, s.Mail, s.Logger, Email{
			To:      owner.Email,
			Subject: "Nova compra de " + prod.Name,
			Body:    fmt.Sprintf("%s iniciou a compra de %d unidade(s) via %s", buyer.Email, req.Quantity, gw),
		})
	}
	return Initiated{PurchaseID: id, PaymentURL: gateway.PaymentURL(id, s.ConfirmURL)}, nil
}

// ConfirmPayment applies a gateway callback. Callbacks for purchases that are
// already PAID or FAILED change nothing and still succeed.
func (s *PurchaseService) ConfirmPayment(req PaymentConfirmationRequest) (repos.Settlement, error) {
	vs := req.Validate()
	var purchase domain.Purchase
	if req.PurchaseID != nil {
		ok, err := vs.Registered("purchaseId", func() (bool, error) { return s.Purchases.Exists(*req.PurchaseID) })
		if err != nil {
			return repos.Settlement{}, err
		}
		if ok {
			if purchase, err = s.Purchases.Get(*req.PurchaseID); err != nil {
				return repos.Settlement{}, err
			}
		}
	}
	if err := vs.Err(); err != nil {
		return repos.Settlement{}, err
	}

	gateway, ok := GatewayFor(purchase.Gateway)
	if !ok {
		return repos.Settlement{}, pkgerrors.Errorf("purchase %d has unknown gateway %q", purchase.ID, purchase.Gateway)
	}
	outcome := gateway.Outcome(req.Status)
	return s.Purchases.Settle(purchase.ID, strings.TrimSpace(req.PaymentID), req.Status, outcome)
}

type PaymentView struct {
	PaymentID     string `json:"paymentId"`
	GatewayStatus string `json:"gatewayStatus"`
	Outcome       string `json:"outcome"`
	Applied       bool   `json:"applied"`
	ReceivedAt    string `json:"receivedAt"`
}

type PurchaseDetails struct {
	ID        int64         `json:"id"`
	ProductID string        `json:"productId"`
	Quantity  int           `json:"quantity"`
	Gateway   string        `json:"paymentGateway"`
	Status    string        `json:"status"`
	PaymentID string        `json:"paymentId,omitempty"`
	Payments  []PaymentView `json:"payments"`
}

// Details shows a purchase and every gateway callback received for it.
// Purchases of other buyers are reported as domain.ErrNotFound.
func (s *PurchaseService) Details(p domain.Principal, id int64) (PurchaseDetails, error) {
	buyer, err := registeredUser(s.Users, p)
	if err != nil {
		return PurchaseDetails{}, err
	}
	purchase, err := s.Purchases.Get(id)
	if err != nil {
		return PurchaseDetails{}, err
	}
	if purchase.BuyerID != buyer.ID {
		return PurchaseDetails{}, pkgerrors.Wrapf(domain.ErrNotFound, "purchase %d", id)
	}
	ledger, err := s.Purchases.Ledger(id)
	if err != nil {
		return PurchaseDetails{}, err
	}

	d := PurchaseDetails{
		ID:        purchase.ID,
		ProductID: purchase.ProductID,
		Quantity:  purchase.Quantity,
		Gateway:   string(purchase.Gateway),
		Status:    string(purchase.Status),
		PaymentID: purchase.PaymentID,
		Payments:  make([]PaymentView, 0, len(ledger)),
	}
	for _, tx := range ledger {
		d.Payments = append(d.Payments, PaymentView{
			PaymentID:     tx.PaymentID,
			GatewayStatus: tx.GatewayStatus,
			Outcome:       string(tx.Outcome),
			Applied:       tx.Applied,
			ReceivedAt:    tx.CreatedAt,
		})
	}
	return d, nil
}
