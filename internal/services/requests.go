package services

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"lojavirtual/internal/domain"
	"lojavirtual/internal/validate"
)

var minPrice = decimal.RequireFromString("0.01")

type NewUserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// bcrypt rejects longer passwords.
const maxPasswordBytes = 72

// Validate also returns the trimmed login, which is what gets checked for
// uniqueness and stored.
func (r NewUserRequest) Validate() (string, validate.Violations) {
	var vs validate.Violations
	login, ok := validate.Email(r.Login)
	if validate.Blank(r.Login) {
		vs.Add("login", validate.MsgNotEmpty)
	} else if !ok {
		vs.Add("login", validate.MsgEmail)
	}
	if vs.Check(validate.LengthBetween(r.Password, 6, math.MaxInt32), "password",
		"tamanho deve ser entre 6 e 2147483647") {
		vs.Check(len(r.Password) <= maxPasswordBytes, "password", "não deve exceder 72 bytes")
	}
	return login, vs
}

type NewCategoryRequest struct {
	Name          string `json:"name"`
	SuperCategory *int64 `json:"superCategory"`
}

func (r NewCategoryRequest) Validate() validate.Violations {
	var vs validate.Violations
	vs.Check(!validate.Blank(r.Name), "name", validate.MsgNotEmpty)
	return vs
}

type CharacteristicRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type NewProductRequest struct {
	Name            string                  `json:"name"`
	Price           *decimal.Decimal        `json:"price"`
	StockQuantity   *int                    `json:"stockQuantity"`
	Photos          []string                `json:"photos"`
	Characteristics []CharacteristicRequest `json:"characteristics"`
	Description     string                  `json:"description"`
	CategoryID      *int64                  `json:"categoryId"`
}

func (r NewProductRequest) Validate() validate.Violations {
	var vs validate.Violations
	vs.Check(!validate.Blank(r.Name), "name", validate.MsgMustNotBlank)

	switch {
	case r.Price == nil:
		vs.Add("price", validate.MsgMustNotNull)
	case r.Price.LessThan(minPrice):
		vs.Add("price", validate.MinMessage("0.01"))
	}

	switch {
	case r.StockQuantity == nil:
		vs.Add("stockQuantity", validate.MsgMustNotNull)
	case *r.StockQuantity < 0:
		vs.Add("stockQuantity", validate.MinMessage("0"))
	}

	vs.Check(len(r.Photos) >= 1, "photos", validate.SizeMessage(1, math.MaxInt32))
	for _, p := range r.Photos {
		if validate.Blank(p) {
			vs.Add("photos", validate.MsgMustNotBlank)
			break
		}
	}

	vs.Check(len(r.Characteristics) >= 3, "characteristics", validate.SizeMessage(3, math.MaxInt32))
	seen := make(map[string]struct{}, len(r.Characteristics))
	for _, ch := range r.Characteristics {
		if validate.Blank(ch.Name) || validate.Blank(ch.Value) {
			vs.Add("characteristics", "name and value must not be blank")
			break
		}
		key := strings.ToLower(strings.TrimSpace(ch.Name))
		if _, dup := seen[key]; dup {
			vs.Add("characteristics", "names must be unique")
			break
		}
		seen[key] = struct{}{}
	}

	vs.Check(validate.LengthBetween(r.Description, 0, 1000), "description", validate.LengthMessage(0, 1000))
	vs.Check(r.CategoryID != nil, "categoryId", validate.MsgMustNotNull)
	return vs
}

type NewOpinionRequest struct {
	Rating      int    `json:"rating"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProductID   string `json:"productId"`
}

func (r NewOpinionRequest) Validate() validate.Violations {
	var vs validate.Violations
	vs.Check(!validate.Blank(r.Title), "title", validate.MsgMustNotBlank)
	vs.Check(validate.Between(r.Rating, 1, 5), "rating", validate.RangeMessage(1, 5))
	vs.Check(validate.LengthBetween(r.Description, 0, 500), "description", validate.LengthMessage(0, 500))
	vs.Check(!validate.Blank(r.ProductID), "productId", validate.MsgMustNotNull)
	return vs
}

type NewQuestionRequest struct {
	Title string `json:"title"`
}

func (r NewQuestionRequest) Validate() validate.Violations {
	var vs validate.Violations
	vs.Check(!validate.Blank(r.Title), "title", validate.MsgNotBlank)
	return vs
}

type NewPurchaseRequest struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	PaymentGateway string `json:"paymentGateway"`
}

// Validate also returns the parsed gateway, zero when invalid.
func (r NewPurchaseRequest) Validate() (domain.PaymentGateway, validate.Violations) {
	var vs validate.Violations
	vs.Check(!validate.Blank(r.ProductID), "productId", validate.MsgMustNotNull)
	vs.Check(r.Quantity >= 1, "quantity", validate.MinMessage("1"))

	var gw domain.PaymentGateway
	if validate.Blank(r.PaymentGateway) {
		vs.Add("paymentGateway", validate.MsgMustNotNull)
	} else if g, ok := domain.ParseGateway(r.PaymentGateway); ok {
		gw = g
	} else {
		vs.Add("paymentGateway", "must be one of PAYPAL, PAGSEGURO")
	}
	return gw, vs
}

type PaymentConfirmationRequest struct {
	PurchaseID *int64 `json:"purchaseId"`
	PaymentID  string `json:"paymentId"`
	Status     string `json:"status"`
}

func (r PaymentConfirmationRequest) Validate() validate.Violations {
	var vs validate.Violations
	vs.Check(!validate.Blank(r.Status), "status", validate.MsgNotBlank)
	vs.Check(!validate.Blank(r.PaymentID), "paymentId", validate.MsgNotBlank)
	vs.Check(r.PurchaseID != nil, "purchaseId", validate.MsgMustNotNull)
	return vs
}
