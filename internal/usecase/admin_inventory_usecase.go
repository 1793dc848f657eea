package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 在庫調整と在庫少レポート。
// products.stockはOrder Engineと共有のため、調整もロック→相対更新で行う。
type AdminInventoryUsecase struct {
	tx        repo.TransactionManager
	inventory repo.InventoryRepository
	audit     *AuditRecorder
}

func NewAdminInventoryUsecase(
	tx repo.TransactionManager,
	inventory repo.InventoryRepository,
	audit *AuditRecorder,
) *AdminInventoryUsecase {
	return &AdminInventoryUsecase{
		tx:        tx,
		inventory: inventory,
		audit:     audit,
	}
}

type LowStockInput struct {
	Threshold *int64
	Page      int
	PerPage   int
}

type LowStockOutput struct {
	Items   []model.Product `json:"items"`
	Page    int             `json:"-"`
	PerPage int             `json:"-"`
	Total   int64           `json:"-"`
}

type AdjustInventoryInput struct {
	Delta int64
}

// 在庫がしきい値以下の商品一覧（デフォルトしきい値5）
func (u *AdminInventoryUsecase) ListLowStock(ctx context.Context, in LowStockInput) (LowStockOutput, error) {
	threshold := int64(5)
	if in.Threshold != nil {
		threshold = *in.Threshold
	}

	page, perPage := normalizePagination(in.Page, in.PerPage)

	items, total, err := u.inventory.ListLowStock(ctx, threshold, page, perPage)
	if err != nil {
		return LowStockOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LowStockOutput{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// Adjust は在庫の相対調整。checkoutと同じロック規律：
// 行ロック→検証→相対更新。負になる調整は400で拒否する。
func (u *AdminInventoryUsecase) Adjust(ctx context.Context, actorUserID string, productID string, in AdjustInventoryInput) (model.Product, error) {
	if in.Delta == 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "delta must not be 0")
	}

	var updated model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Inventory().FindForUpdate(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Not Found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if p.Stock+in.Delta < 0 {
			return NewHTTPError(http.StatusBadRequest, "stock cannot be negative")
		}

		//ロック保持中の相対更新
		updated, err = r.Inventory().AdjustStock(ctx, productID, in.Delta)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}

	u.audit.Record(ctx, &actorUserID, model.AuditActionInventoryAdjust, "products",
		map[string]interface{}{"product_id": updated.ID, "delta": in.Delta})

	return updated, nil
}
