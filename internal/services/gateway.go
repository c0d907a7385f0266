package services

import (
	"strconv"
	"strings"

	"lojavirtual/internal/domain"
)

// Gateway knows how to send a buyer to an external payment provider and how
// to read the status token it reports back.
type Gateway interface {
	PaymentURL(purchaseID int64, redirectURL string) string
	Outcome(status string) domain.PurchaseStatus
}

type payPal struct{}

func (payPal) PaymentURL(id int64, redirectURL string) string {
	return "paypal.com/" + strconv.FormatInt(id, 10) + "?redirectUrl=" + redirectURL
}

// PayPal reports "1" for success and "0" for failure.
func (payPal) Outcome(status string) domain.PurchaseStatus {
	if strings.TrimSpace(status) == "1" {
		return domain.PurchasePaid
	}
	return domain.PurchaseFailed
}

type pagSeguro struct{}

func (pagSeguro) PaymentURL(id int64, redirectURL string) string {
	return "pagseguro.com?returnId=" + strconv.FormatInt(id, 10) + "&redirectUrl=" + redirectURL
}

// PagSeguro has been seen sending both spellings.
func (pagSeguro) Outcome(status string) domain.PurchaseStatus {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "SUCESSO", "SUCESS":
		return domain.PurchasePaid
	}
	return domain.PurchaseFailed
}

func GatewayFor(g domain.PaymentGateway) (Gateway, bool) {
	switch g {
	case domain.GatewayPayPal:
		return payPal{}, true
	case domain.GatewayPagSeguro:
		return pagSeguro{}, true
	}
	return nil, false
}
