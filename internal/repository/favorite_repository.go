package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type FavoriteRepository interface {
	// お気に入りの商品を結合して一覧
	ListProducts(ctx context.Context, userID string, page int, perPage int) ([]model.Product, int64, error)

	Find(ctx context.Context, userID string, productID string) (model.Favorite, error)
	Create(ctx context.Context, fav model.Favorite) (model.Favorite, error)
	Remove(ctx context.Context, userID string, productID string) error
}
