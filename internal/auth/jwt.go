// Package auth verifies bearer tokens issued by the external authorization
// server and turns them into a domain.Principal.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"lojavirtual/internal/domain"
)

var ErrInvalidToken = errors.New("invalid bearer token")

// Claims follows the OAuth2 resource-server convention: scopes arrive either as a
// space separated "scope" string or as a "scp" array.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Scope string   `json:"scope,omitempty"`
	Scp   []string `json:"scp,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Verify checks signature (HS256), expiry and issuer, then extracts the principal.
// Tokens without an exp claim are rejected.
func (v *Verifier) Verify(raw string) (domain.Principal, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return domain.Principal{}, errors.Wrapf(ErrInvalidToken, "%v", err)
	}
	if claims.ExpiresAt == nil {
		return domain.Principal{}, errors.Wrap(ErrInvalidToken, "missing exp")
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return domain.Principal{}, errors.Wrapf(ErrInvalidToken, "unexpected issuer %q", claims.Issuer)
	}

	scopes := append(strings.Fields(claims.Scope), claims.Scp...)
	email := claims.Email
	if email == "" {
		email = claims.Subject
	}
	return domain.NewPrincipal(email, scopes...), nil
}

// Issue signs a token for local development and tests.
func (v *Verifier) Issue(email string, scopes []string, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		Email: email,
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}
