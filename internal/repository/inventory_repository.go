package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// products.stockはOrder Engineと在庫調整の共有リソース。
// どちらも行ロック→相対更新の順を守る。
type InventoryRepository interface {
	// 商品行をFOR UPDATEで取得（トランザクション内で使う）
	FindForUpdate(ctx context.Context, productID string) (model.Product, error)

	// 在庫が足りるときだけ相対減算（stock = stock - qty）
	DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error)

	// 相対加算（stock = stock + delta、deltaは負も可）
	AdjustStock(ctx context.Context, productID string, delta int64) (model.Product, error)

	// 在庫がしきい値以下の商品一覧
	ListLowStock(ctx context.Context, threshold int64, page int, perPage int) ([]model.Product, int64, error)
}
