package handlers

import (
	"lojavirtual/internal/auth"
	"lojavirtual/internal/config"
	applog "lojavirtual/internal/log"
	"lojavirtual/internal/repos"
	"lojavirtual/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Verifier        *auth.Verifier
	UserHandler     *UserHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	ReviewHandler   *ReviewHandler
	PurchaseHandler *PurchaseHandler
}

// NewDeps wires repositories into services and services into handlers.
// Photos go to Cloudinary when CLOUDINARY_URL is set.
func NewDeps(db *sqlx.DB, cfg config.Config) (*Deps, error) {
	userRepo := repos.NewUserRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	purchaseRepo := repos.NewPurchaseRepo(db)

	var photos services.PhotoUploader = services.FakeUploader{BaseURL: cfg.PhotoBaseURL}
	if cfg.CloudinaryURL != "" {
		cld, err := services.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			return nil, err
		}
		photos = cld
	}
	mail := services.LogMailer{Logger: applog.L}

	userSvc := services.NewUserService(userRepo)
	catalogSvc := services.NewCatalogService(userRepo, catRepo, prodRepo, reviewRepo, photos)
	reviewSvc := services.NewReviewService(userRepo, prodRepo, reviewRepo, mail, applog.L)
	purchaseSvc := services.NewPurchaseService(userRepo, prodRepo, purchaseRepo, mail, applog.L, cfg.PublicBaseURL)

	return &Deps{
		Verifier:        auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		UserHandler:     &UserHandler{Users: userSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		ReviewHandler:   &ReviewHandler{Reviews: reviewSvc},
		PurchaseHandler: &PurchaseHandler{Purchases: purchaseSvc},
	}, nil
}
