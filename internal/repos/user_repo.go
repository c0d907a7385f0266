package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"lojavirtual/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Create(email, hash string) (int64, error) {
	res, err := r.DB.Exec(`INSERT INTO users(email,password_hash) VALUES(?,?)`, email, hash)
	if err != nil {
		return 0, translate(err, "insert user")
	}
	return res.LastInsertId()
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,password_hash,created_at FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, notFound(err, "user by email")
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,password_hash,created_at FROM users WHERE id=?`, id)
	if err != nil {
		return nil, notFound(err, "user by id")
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(email string) (bool, error) {
	return exists(r.DB, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email)
}

func (r *UserRepo) List() ([]domain.User, error) {
	out := []domain.User{}
	err := r.DB.Select(&out, `SELECT id,email,password_hash,created_at FROM users ORDER BY email`)
	return out, pkgerrors.Wrap(err, "list users")
}

func exists(q sqlx.Queryer, query string, args ...any) (bool, error) {
	var n int
	if err := sqlx.Get(q, &n, query, args...); err != nil {
		return false, pkgerrors.Wrap(err, "exists")
	}
	return n > 0, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return pkgerrors.Wrap(domain.ErrNotFound, op)
	}
	return pkgerrors.Wrap(err, op)
}
