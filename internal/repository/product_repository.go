package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索。page/per_pageは正規化済みの値を渡す。
type ProductListQuery struct {
	Page      int
	PerPage   int
	Q         string
	MinPrice  *int64
	MaxPrice  *int64
	SortBy    string // created_at / price / name
	SortOrder string // asc / desc
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) (model.Product, error)
	Delete(ctx context.Context, id string) error
}
