package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 管理者向けの注文操作。一覧・取得はユーザー向けと同じ読み取り経路を
// user_id絞り込みなしで使うだけ。
type AdminOrderUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	audit      *AuditRecorder
}

func NewAdminOrderUsecase(
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	audit *AuditRecorder,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		orders:     orders,
		orderItems: orderItems,
		audit:      audit,
	}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// 注文一覧（全ユーザー横断）
func (u *AdminOrderUsecase) List(ctx context.Context, in OrderListInput) (OrderListOutput, error) {
	page, perPage := normalizePagination(in.Page, in.PerPage)

	items, total, err := u.orders.List(ctx, repo.OrderListFilter{
		UserID:    nil,
		Status:    in.Status,
		Page:      page,
		PerPage:   perPage,
		SortOrder: in.SortOrder,
	})
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return OrderListOutput{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// 注文を所有者を問わず1件取得
func (u *AdminOrderUsecase) Get(ctx context.Context, orderID string) (OrderWithItems, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderWithItems{}, NewHTTPError(http.StatusNotFound, "Not Found")
	}
	if err != nil {
		return OrderWithItems{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderWithItems{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return OrderWithItems{Order: o, Items: items}, nil
}

// ステータス更新。状態機の追加ガードは無し（支払い遷移だけがOrder Engineの不変条件）。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorUserID string, orderID string, in AdminUpdateOrderStatusInput) (model.Order, error) {
	newStatus := strings.TrimSpace(in.Status)
	if !isValidOrderStatus(newStatus) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Invalid order status")
	}

	o, err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatus(newStatus))
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Not Found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit.Record(ctx, &actorUserID, model.AuditActionOrderStatusUpdate, "orders",
		map[string]interface{}{"order_id": o.ID, "status": string(o.Status)})

	return o, nil
}

func isValidOrderStatus(s string) bool {
	switch model.OrderStatus(s) {
	case model.OrderStatusPending,
		model.OrderStatusPaid,
		model.OrderStatusShipped,
		model.OrderStatusCompleted,
		model.OrderStatusCancelled:
		return true
	}
	return false
}
