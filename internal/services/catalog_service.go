package services

import (
	"context"
	"errors"
	"strings"

	"lojavirtual/internal/domain"
	"lojavirtual/internal/repos"
	"lojavirtual/internal/validate"
)

type CatalogService struct {
	Users   *repos.UserRepo
	Cats    *repos.CategoryRepo
	Prods   *repos.ProductRepo
	Reviews *repos.ReviewRepo
	Photos  PhotoUploader
}

func NewCatalogService(users *repos.UserRepo, cats *repos.CategoryRepo, prods *repos.ProductRepo,
	reviews *repos.ReviewRepo, photos PhotoUploader) *CatalogService {
	return &CatalogService{Users: users, Cats: cats, Prods: prods, Reviews: reviews, Photos: photos}
}

func (s *CatalogService) CreateCategory(req NewCategoryRequest) (int64, error) {
	vs := req.Validate()
	if !vs.Has("name") {
		if _, err := vs.Unique("name", func() (bool, error) { return s.Cats.NameTaken(req.Name) }); err != nil {
			return 0, err
		}
	}
	if req.SuperCategory != nil {
		if _, err := vs.Registered("superCategory", func() (bool, error) { return s.Cats.Exists(*req.SuperCategory) }); err != nil {
			return 0, err
		}
	}
	if err := vs.Err(); err != nil {
		return 0, err
	}

	id, err := s.Cats.Create(strings.TrimSpace(req.Name), req.SuperCategory)
	if errors.Is(err, domain.ErrDuplicate) {
		return 0, validate.Violations{{Field: "name", Message: "name " + validate.MsgRegistered}}
	}
	return id, err
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// CreateProduct validates, resolves the owner from the principal, uploads the
// photos and stores the product with its children atomically.
func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Principal, req NewProductRequest) (string, error) {
	vs := req.Validate()
	if req.CategoryID != nil {
		if _, err := vs.Registered("categoryId", func() (bool, error) { return s.Cats.Exists(*req.CategoryID) }); err != nil {
			return "", err
		}
	}
	if err := vs.Err(); err != nil {
		return "", err
	}

	owner, err := registeredUser(s.Users, p)
	if err != nil {
		return "", err
	}

	urls, err := s.Photos.Upload(ctx, req.Photos)
	if err != nil {
		return "", err
	}

	prod := domain.Product{
		OwnerID:       owner.ID,
		CategoryID:    *req.CategoryID,
		Name:          strings.TrimSpace(req.Name),
		Price:         req.Price.Round(2),
		StockQuantity: *req.StockQuantity,
		Description:   req.Description,
	}
	for i, u := range urls {
		prod.Photos = append(prod.Photos, domain.Photo{Position: i, URL: u})
	}
	for _, ch := range req.Characteristics {
		prod.Characteristics = append(prod.Characteristics, domain.Characteristic{
			Name:  strings.TrimSpace(ch.Name),
			Value: strings.TrimSpace(ch.Value),
		})
	}
	return s.Prods.Create(prod)
}

type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CharacteristicView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type OpinionView struct {
	ID          int64  `json:"id"`
	Rating      int    `json:"rating"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type QuestionView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

type ProductDetails struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Price           string               `json:"price"`
	StockQuantity   int                  `json:"stockQuantity"`
	Description     string               `json:"description"`
	Category        CategoryRef          `json:"category"`
	Photos          []string             `json:"photos"`
	Characteristics []CharacteristicView `json:"characteristics"`
	Opinions        []OpinionView        `json:"opinions"`
	AverageRating   float64              `json:"averageRating"`
	TotalOpinions   int                  `json:"totalOpinions"`
	Questions       []QuestionView       `json:"questions"`
}

// ProductDetails assembles the public product page. Missing products return domain.ErrNotFound.
func (s *CatalogService) ProductDetails(id string) (ProductDetails, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return ProductDetails{}, err
	}
	cat, err := s.Cats.Get(p.CategoryID)
	if err != nil {
		return ProductDetails{}, err
	}
	ops, err := s.Reviews.OpinionsByProduct(id)
	if err != nil {
		return ProductDetails{}, err
	}
	qs, err := s.Reviews.QuestionsByProduct(id)
	if err != nil {
		return ProductDetails{}, err
	}

	d := ProductDetails{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price.StringFixed(2),
		StockQuantity:   p.StockQuantity,
		Description:     p.Description,
		Category:        CategoryRef{ID: cat.ID, Name: cat.Name},
		Photos:          make([]string, 0, len(p.Photos)),
		Characteristics: make([]CharacteristicView, 0, len(p.Characteristics)),
		Opinions:        make([]OpinionView, 0, len(ops)),
		TotalOpinions:   len(ops),
		Questions:       make([]QuestionView, 0, len(qs)),
	}
	for _, ph := range p.Photos {
		d.Photos = append(d.Photos, ph.URL)
	}
	for _, ch := range p.Characteristics {
		d.Characteristics = append(d.Characteristics, CharacteristicView{Name: ch.Name, Value: ch.Value})
	}
	sum := 0
	for _, o := range ops {
		sum += o.Rating
		d.Opinions = append(d.Opinions, OpinionView{ID: o.ID, Rating: o.Rating, Title: o.Title, Description: o.Description})
	}
	if len(ops) > 0 {
		d.AverageRating = float64(sum) / float64(len(ops))
	}
	for _, q := range qs {
		d.Questions = append(d.Questions, QuestionView{ID: q.ID, Title: q.Title, CreatedAt: q.CreatedAt})
	}
	return d, nil
}
