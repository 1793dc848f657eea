package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// checkout用の結合行。products行はFOR UPDATEでロック済みの値。
type CheckoutLine struct {
	ProductID string
	Quantity  int64
	Price     int64
	Stock     int64
}

// カート表示用の結合行。
type CartLine struct {
	CartItemID string
	Quantity   int64
	Product    model.Product
}

type CartRepository interface {
	// 商品情報付きでカートを一覧
	ListWithProducts(ctx context.Context, userID string, page int, perPage int) ([]CartLine, int64, error)

	// (user, product)で1行。既存行は数量を置き換える。
	Upsert(ctx context.Context, item model.CartItem) (model.CartItem, error)
	Remove(ctx context.Context, userID string, productID string) error

	// checkout用：cart_items×productsをproduct_id昇順で読み、
	// 対象のproducts行に排他ロックをかける（トランザクション内で使う）
	ListForCheckout(ctx context.Context, userID string) ([]CheckoutLine, error)

	// ユーザーのカート行を全削除
	Clear(ctx context.Context, userID string) error
}
