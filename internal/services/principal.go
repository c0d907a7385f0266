package services

import (
	"errors"

	pkgerrors "github.com/pkg/errors"

	"lojavirtual/internal/domain"
	"lojavirtual/internal/repos"
)

// registeredUser maps the token principal onto a stored user.
func registeredUser(users *repos.UserRepo, p domain.Principal) (*domain.User, error) {
	if p.Email == "" {
		return nil, domain.ErrUnknownPrincipal
	}
	u, err := users.ByEmail(p.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, pkgerrors.Wrap(domain.ErrUnknownPrincipal, p.Email)
	}
	return u, err
}
