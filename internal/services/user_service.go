package services

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"lojavirtual/internal/domain"
	"lojavirtual/internal/repos"
	"lojavirtual/internal/validate"
)

type UserService struct {
	Users *repos.UserRepo
	Cost  int // bcrypt cost; zero means bcrypt.DefaultCost
}

func NewUserService(users *repos.UserRepo) *UserService {
	return &UserService{Users: users}
}

// Register validates the request and stores the user with a bcrypt hash of the password.
func (s *UserService) Register(req NewUserRequest) (int64, error) {
	login, vs := req.Validate()
	if !vs.Has("login") {
		if _, err := vs.Unique("login", func() (bool, error) { return s.Users.EmailTaken(login) }); err != nil {
			return 0, err
		}
	}
	if err := vs.Err(); err != nil {
		return 0, err
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "hash password")
	}
	id, err := s.Users.Create(login, string(hash))
	if errors.Is(err, domain.ErrDuplicate) {
		// lost a race with a concurrent registration
		return 0, validate.Violations{{Field: "login", Message: "login " + validate.MsgRegistered}}
	}
	return id, err
}

func (s *UserService) List() ([]domain.User, error) {
	return s.Users.List()
}
