package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// カート明細を商品情報付きで一覧（新しい順）
func (r *CartGormRepository) ListWithProducts(ctx context.Context, userID string, page int, perPage int) ([]repo.CartLine, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []repo.CartLine{}, 0, err
	}

	type row struct {
		CartItemID string
		Quantity   int64
		model.Product
	}

	var rows []row
	offset := (page - 1) * perPage
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id AS cart_item_id, cart_items.quantity AS quantity, products.*").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at desc").
		Limit(perPage).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return []repo.CartLine{}, 0, err
	}

	lines := make([]repo.CartLine, 0, len(rows))
	for _, rw := range rows {
		lines = append(lines, repo.CartLine{
			CartItemID: rw.CartItemID,
			Quantity:   rw.Quantity,
			Product:    rw.Product,
		})
	}
	return lines, total, nil
}

// (user, product)で1行。既存行は数量を置き換える。
func (r *CartGormRepository) Upsert(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.CartItem

		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			First(&existing).Error

		if findErr == nil {
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", existing.ID).
				Update("quantity", item.Quantity)
			if res.Error != nil {
				return res.Error
			}
			existing.Quantity = item.Quantity
			item = existing
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		//無い場合は新規作成
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 商品単位で1行削除
func (r *CartGormRepository) Remove(ctx context.Context, userID string, productID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// checkout用：cart_items×productsをproduct_id昇順で読み、
// 行にFOR UPDATEをかける。ロック順を安定させるためのソート。
func (r *CartGormRepository) ListForCheckout(ctx context.Context, userID string) ([]repo.CheckoutLine, error) {
	var rows []repo.CheckoutLine

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.product_id AS product_id, cart_items.quantity AS quantity, products.price AS price, products.stock AS stock").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.product_id asc").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scan(&rows).Error
	if err != nil {
		return []repo.CheckoutLine{}, err
	}
	return rows, nil
}

// ユーザーのカート行を全削除
func (r *CartGormRepository) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
