package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
	audit        *AuditRecorder
	idGen        IDGenerator
	clock        Clock
}

func NewFavoriteUsecase(
	favoriteRepo repo.FavoriteRepository,
	productRepo repo.ProductRepository,
	audit *AuditRecorder,
	idGen IDGenerator,
	clock Clock,
) *FavoriteUsecase {
	return &FavoriteUsecase{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
		audit:        audit,
		idGen:        idGen,
		clock:        clock,
	}
}

type FavoriteListOutput struct {
	Items   []model.Product `json:"items"`
	Page    int             `json:"-"`
	PerPage int             `json:"-"`
	Total   int64           `json:"-"`
}

func (u *FavoriteUsecase) List(ctx context.Context, userID string, page int, perPage int) (FavoriteListOutput, error) {
	if userID == "" {
		return FavoriteListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page, perPage = normalizePagination(page, perPage)

	items, total, err := u.favoriteRepo.ListProducts(ctx, userID, page, perPage)
	if err != nil {
		return FavoriteListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return FavoriteListOutput{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// Add は冪等：既にあれば既存行をそのまま返す。
func (u *FavoriteUsecase) Add(ctx context.Context, userID string, productID string) (model.Favorite, error) {
	if userID == "" {
		return model.Favorite{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return model.Favorite{}, NewHTTPError(http.StatusBadRequest, "Product not found")
		}
		return model.Favorite{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing, err := u.favoriteRepo.Find(ctx, userID, productID)
	if err == nil {
		return existing, nil
	}
	if err != repo.ErrNotFound {
		return model.Favorite{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	fav, err := u.favoriteRepo.Create(ctx, model.Favorite{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: u.clock.Now(),
	})
	if err != nil {
		return model.Favorite{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit.Record(ctx, &userID, model.AuditActionFavoriteAdd, "favorites",
		map[string]interface{}{"product_id": productID})

	return fav, nil
}

func (u *FavoriteUsecase) Remove(ctx context.Context, userID string, productID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.favoriteRepo.Remove(ctx, userID, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Not Found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit.Record(ctx, &userID, model.AuditActionFavoriteRemove, "favorites",
		map[string]interface{}{"product_id": productID})

	return nil
}
