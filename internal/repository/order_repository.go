package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// 注文一覧の絞り込み。UserIDがnilなら全ユーザー（管理者向け）。
type OrderListFilter struct {
	UserID    *string
	Status    string
	Page      int
	PerPage   int
	SortOrder string // asc / desc
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)

	// ユーザー所有の注文を1件取得（他人の注文はErrNotFound）
	FindByIDForUser(ctx context.Context, userID string, orderID string) (model.Order, error)
	// 管理者向け：所有者を問わず取得
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	// 支払い遷移用：注文行をFOR UPDATEで取得（トランザクション内で使う）
	FindForUpdate(ctx context.Context, userID string, orderID string) (model.Order, error)

	// unpaid→paidの確定（paid_at/updated_atも更新）
	MarkPaid(ctx context.Context, orderID string, paidAt time.Time) error
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error)

	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
}
