package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// OrderUsecaseはcheckoutと支払い遷移の本体。
// 在庫の検証・減算は必ず1トランザクション内で、products行ロックの後に行う。
type OrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	audit      *AuditRecorder
	idGen      IDGenerator
	clock      Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	audit *AuditRecorder,
	idGen IDGenerator,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		orders:     orders,
		orderItems: orderItems,
		audit:      audit,
		idGen:      idGen,
		clock:      clock,
	}
}

type OrderWithItems struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

type OrderListInput struct {
	Page      int
	PerPage   int
	Status    string
	SortOrder string // asc / desc
}

type OrderListOutput struct {
	Items   []model.Order `json:"items"`
	Page    int           `json:"-"`
	PerPage int           `json:"-"`
	Total   int64         `json:"-"`
}

// Checkoutはカートを注文に変換する。
//  1. cart_items×productsをproduct_id昇順＋FOR UPDATEで取得
//  2. 数量・在庫を検証して合計を整数で積算
//  3. Order＋OrderItems（価格スナップショット）を作成
//  4. 在庫を相対減算、カートを全削除
//
// 途中で失敗したら全体をrollbackする（部分的な注文・減算は残らない）。
func (u *OrderUsecase) Checkout(ctx context.Context, userID string) (OrderWithItems, error) {
	if userID == "" {
		return OrderWithItems{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderWithItems

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//ロック付きでカートを読む。在庫の検証はこのロック後の値に対して行う。
		lines, err := r.Carts().ListForCheckout(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "Cart is empty")
		}

		var totalAmount int64 = 0
		for _, ln := range lines {
			if ln.Quantity <= 0 {
				return NewHTTPError(http.StatusBadRequest, "Cart has invalid quantity")
			}
			if ln.Stock < ln.Quantity {
				return NewHTTPError(http.StatusBadRequest, "Insufficient stock for product "+ln.ProductID)
			}
			totalAmount += ln.Price * ln.Quantity
		}

		now := u.clock.Now()
		orderID := u.idGen.NewID()

		order, err := r.Orders().Create(ctx, model.Order{
			ID:            orderID,
			UserID:        userID,
			TotalAmount:   totalAmount,
			Status:        model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusUnpaid,
			InvoiceNumber: buildInvoiceNumber(orderID, u.clock),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細は価格・数量をスナップショット
		items := make([]model.OrderItem, 0, len(lines))
		for _, ln := range lines {
			items = append(items, model.OrderItem{
				ID:        u.idGen.NewID(),
				OrderID:   order.ID,
				ProductID: ln.ProductID,
				Quantity:  ln.Quantity,
				Price:     ln.Price,
				CreatedAt: now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫は相対減算（stock = stock - qty）。アプリ側で読み戻して書かない。
		for _, ln := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ln.ProductID, ln.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "Insufficient stock for product "+ln.ProductID)
			}
		}

		//カートを空にする
		if err := r.Carts().Clear(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderWithItems{Order: order, Items: items}
		return nil
	})

	if err != nil {
		return OrderWithItems{}, err
	}

	//commit後のベストエフォート
	u.audit.Record(ctx, &userID, model.AuditActionCheckout, "orders",
		map[string]interface{}{"order_id": out.Order.ID})

	return out, nil
}

// PayOrderはunpaid→paidの一度きりの遷移。
// 再実行は400で拒否する（黙って成功にはしない）。
func (u *OrderUsecase) PayOrder(ctx context.Context, userID string, orderID string) (OrderWithItems, error) {
	if userID == "" {
		return OrderWithItems{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderWithItems{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderWithItems

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文行をロックしてから状態を見る
		o, err := r.Orders().FindForUpdate(ctx, userID, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Not Found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.PaymentStatus == model.PaymentStatusPaid {
			return NewHTTPError(http.StatusBadRequest, "Order already paid")
		}

		now := u.clock.Now()
		if err := r.Orders().MarkPaid(ctx, o.ID, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.PaymentStatus = model.PaymentStatusPaid
		o.Status = model.OrderStatusPaid
		o.PaidAt = &now
		o.UpdatedAt = now

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderWithItems{Order: o, Items: items}
		return nil
	})

	if err != nil {
		return OrderWithItems{}, err
	}

	u.audit.Record(ctx, &userID, model.AuditActionOrderPaid, "orders",
		map[string]interface{}{"order_id": out.Order.ID})

	return out, nil
}

// GetOrderはユーザー所有の注文を1件返す。読み取りだけなのでトランザクションは張らない。
func (u *OrderUsecase) GetOrder(ctx context.Context, userID string, orderID string) (OrderWithItems, error) {
	if userID == "" {
		return OrderWithItems{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	o, err := u.orders.FindByIDForUser(ctx, userID, orderID)
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

// ListOrdersはユーザー自身の注文一覧。
func (u *OrderUsecase) ListOrders(ctx context.Context, userID string, in OrderListInput) (OrderListOutput, error) {
	if userID == "" {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page, perPage := normalizePagination(in.Page, in.PerPage)

	items, total, err := u.orders.List(ctx, repo.OrderListFilter{
		UserID:    &userID,
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

// 請求書番号：INV-日付(UTC)-注文IDの先頭8文字。
// 一意制約はかけない（UUID由来で衝突は無視できる前提）。
func buildInvoiceNumber(orderID string, clock Clock) string {
	date := clock.Now().UTC().Format("20060102")
	short := orderID
	if len(short) > 8 {
		short = short[:8]
	}
	return "INV-" + date + "-" + short
}
