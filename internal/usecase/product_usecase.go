package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	audit       *AuditRecorder
	idGen       IDGenerator
	clock       Clock
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	audit *AuditRecorder,
	idGen IDGenerator,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		audit:       audit,
		idGen:       idGen,
		clock:       clock,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page      int
	PerPage   int
	Q         string
	MinPrice  *int64
	MaxPrice  *int64
	SortBy    string
	SortOrder string
}

type ProductListOutput struct {
	Items   []model.Product `json:"items"`
	Page    int             `json:"-"`
	PerPage int             `json:"-"`
	Total   int64           `json:"-"`
}

type CreateProductInput struct {
	Name        string
	Description *string
	Price       int64
	Stock       int64
}

// 部分更新：nilのフィールドは現状維持。
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	Stock       *int64
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	page, perPage := normalizePagination(in.Page, in.PerPage)

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:      page,
		PerPage:   perPage,
		Q:         in.Q,
		MinPrice:  in.MinPrice,
		MaxPrice:  in.MaxPrice,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id string) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Not Found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 管理者向け：商品作成
func (u *ProductUsecase) Create(ctx context.Context, actorUserID string, in CreateProductInput) (model.Product, error) {
	if in.Name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid stock")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		ID:          u.idGen.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   u.clock.Now(),
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit.Record(ctx, &actorUserID, model.AuditActionProductCreate, "products",
		map[string]interface{}{"product_id": p.ID})

	return p, nil
}

// 管理者向け：部分更新
func (u *ProductUsecase) Update(ctx context.Context, actorUserID string, id string, in UpdateProductInput) (model.Product, error) {
	existing, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Not Found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		existing.Name = *in.Name
	}
	if in.Description != nil {
		existing.Description = in.Description
	}
	if in.Price != nil {
		existing.Price = *in.Price
	}
	if in.Stock != nil {
		existing.Stock = *in.Stock
	}

	p, err := u.productRepo.Update(ctx, existing)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit.Record(ctx, &actorUserID, model.AuditActionProductUpdate, "products",
		map[string]interface{}{"product_id": p.ID})

	return p, nil
}

// 管理者向け：商品削除
func (u *ProductUsecase) Delete(ctx context.Context, actorUserID string, id string) error {
	if err := u.productRepo.Delete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Not Found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit.Record(ctx, &actorUserID, model.AuditActionProductDelete, "products",
		map[string]interface{}{"product_id": id})

	return nil
}
