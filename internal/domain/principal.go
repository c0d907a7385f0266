package domain

import "strings"

// OAuth2 scopes guarding the API.
const (
	ScopeUsersWrite      = "users:write"
	ScopeUsersRead       = "users:read"
	ScopeCategoriesWrite = "categories:write"
	ScopeCategoriesRead  = "categories:read"
	ScopeProductsWrite   = "products:write"
	ScopeProductsRead    = "products:read"
	ScopePurchaseWrite   = "purchase:write"
)

// Principal is the authenticated caller as asserted by a verified bearer token.
type Principal struct {
	Email  string
	Scopes map[string]struct{}
}

func NewPrincipal(email string, scopes ...string) Principal {
	p := Principal{Email: strings.TrimSpace(email), Scopes: make(map[string]struct{}, len(scopes))}
	for _, s := range scopes {
		if s = strings.TrimSpace(s); s != "" {
			p.Scopes[s] = struct{}{}
		}
	}
	return p
}

func (p Principal) HasScope(scope string) bool {
	_, ok := p.Scopes[scope]
	return ok
}
