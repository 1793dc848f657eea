package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

// お気に入りの商品を結合して一覧（追加の新しい順）
func (r *FavoriteGormRepository) ListProducts(ctx context.Context, userID string, page int, perPage int) ([]model.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	var products []model.Product
	offset := (page - 1) * perPage
	err := r.db.WithContext(ctx).
		Table("favorites").
		Select("products.*").
		Joins("JOIN products ON products.id = favorites.product_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at desc").
		Limit(perPage).
		Offset(offset).
		Scan(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *FavoriteGormRepository) Find(ctx context.Context, userID string, productID string) (model.Favorite, error) {
	var f model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&f).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Favorite{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Favorite{}, err
	}
	return f, nil
}

func (r *FavoriteGormRepository) Create(ctx context.Context, fav model.Favorite) (model.Favorite, error) {
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return model.Favorite{}, err
	}
	return fav, nil
}

func (r *FavoriteGormRepository) Remove(ctx context.Context, userID string, productID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
