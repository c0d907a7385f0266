package repos

import (
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"lojavirtual/internal/domain"
)

// ReviewRepo stores opinions and questions, both immutable once written.
type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) CreateOpinion(o domain.Opinion) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO opinions(product_id, user_id, rating, title, description)
	  VALUES(?, ?, ?, ?, ?)
	`, o.ProductID, o.UserID, o.Rating, o.Title, o.Description)
	if err != nil {
		return 0, translate(err, "insert opinion")
	}
	return res.LastInsertId()
}

func (r *ReviewRepo) OpinionsByProduct(productID string) ([]domain.Opinion, error) {
	out := []domain.Opinion{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, user_id, rating, title, description, created_at
	  FROM opinions WHERE product_id = ? ORDER BY id
	`, productID)
	return out, pkgerrors.Wrap(err, "opinions by product")
}

func (r *ReviewRepo) CreateQuestion(q domain.Question) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO questions(product_id, user_id, title) VALUES(?, ?, ?)`,
		q.ProductID, q.UserID, q.Title)
	if err != nil {
		return 0, translate(err, "insert question")
	}
	return res.LastInsertId()
}

func (r *ReviewRepo) QuestionsByProduct(productID string) ([]domain.Question, error) {
	out := []domain.Question{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, user_id, title, created_at
	  FROM questions WHERE product_id = ? ORDER BY id
	`, productID)
	return out, pkgerrors.Wrap(err, "questions by product")
}
