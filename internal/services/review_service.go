package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"lojavirtual/internal/domain"
	"lojavirtual/internal/repos"
)

// ReviewService handles opinions and questions about products.
type ReviewService struct {
	Users   *repos.UserRepo
	Prods   *repos.ProductRepo
	Reviews *repos.ReviewRepo
	Mail    Mailer
	Logger  func() *zap.Logger
}

func NewReviewService(users *repos.UserRepo, prods *repos.ProductRepo, reviews *repos.ReviewRepo,
	mail Mailer, logger func() *zap.Logger) *ReviewService {
	return &ReviewService{Users: users, Prods: prods, Reviews: reviews, Mail: mail, Logger: logger}
}

func (s *ReviewService) CreateOpinion(p domain.Principal, req NewOpinionRequest) (int64, error) {
	vs := req.Validate()
	if !vs.Has("productId") {
		if _, err := vs.Registered("productId", func() (bool, error) { return s.Prods.Exists(req.ProductID) }); err != nil {
			return 0, err
		}
	}
	if err := vs.Err(); err != nil {
		return 0, err
	}

	author, err := registeredUser(s.Users, p)
	if err != nil {
		return 0, err
	}
	return s.Reviews.CreateOpinion(domain.Opinion{
		ProductID:   req.ProductID,
		UserID:      author.ID,
		Rating:      req.Rating,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	})
}

// AskQuestion stores a question about productID and notifies the product owner.
// An unknown product yields domain.ErrNotFound.
func (s *ReviewService) AskQuestion(ctx context.Context, p domain.Principal, productID string, req NewQuestionRequest) (int64, error) {
	prod, err := s.Prods.Get(productID)
	if err != nil {
		return 0, err
	}
	if err := req.Validate().Err(); err != nil {
		return 0, err
	}
	asker, err := registeredUser(s.Users, p)
	if err != nil {
		return 0, err
	}

	id, err := s.Reviews.CreateQuestion(domain.Question{
		ProductID: productID,
		UserID:    asker.ID,
		Title:     strings.TrimSpace(req.Title),
	})
	if err != nil {
		return 0, err
	}

	if owner, err := s.Users.ByID(prod.OwnerID); err == nil {
		notify(ctx, s.Mail, s.Logger, Email{
			To:      owner.Email,
			Subject: "Nova pergunta sobre " + prod.Name,
			Body:    fmt.Sprintf("%s perguntou: %s", asker.Email, strings.TrimSpace(req.Title)),
		})
	}
	return id, nil
}

// Questions lists questions for an existing product.
func (s *ReviewService) Questions(productID string) ([]QuestionView, error) {
	ok, err := s.Prods.Exists(productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	qs, err := s.Reviews.QuestionsByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]QuestionView, 0, len(qs))
	for _, q := range qs {
		out = append(out, QuestionView{ID: q.ID, Title: q.Title, CreatedAt: q.CreatedAt})
	}
	return out, nil
}
