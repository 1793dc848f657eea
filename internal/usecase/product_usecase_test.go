package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProductUsecaseForTest(pRepo *ProductRepoMock, auditRepo *AuditRepoMock) *ProductUsecase {
	return NewProductUsecase(pRepo, newTestAudit(auditRepo),
		&seqIDGen{prefix: "prod"}, &fixedClock{t: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)})
}

func TestProductUsecase_List_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecaseForTest(pRepo, new(AuditRepoMock))

	q := repo.ProductListQuery{Page: 1, PerPage: 20, Q: "coffee", SortBy: "price", SortOrder: "asc"}
	pRepo.On("List", mock.Anything, q).Return([]model.Product{{ID: "p-1", Name: "Coffee"}}, int64(1), nil)

	out, err := uc.List(context.Background(), ListProductsInput{Q: "coffee", SortBy: "price", SortOrder: "asc"})
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.PerPage)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 1, len(out.Items))

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_List_ClampsPerPage(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecaseForTest(pRepo, new(AuditRepoMock))

	pRepo.On("List", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.Page == 1 && q.PerPage == 100
	})).Return([]model.Product{}, int64(0), nil)

	_, err := uc.List(context.Background(), ListProductsInput{Page: 0, PerPage: 9999})
	assert.NoError(t, err)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_Get_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecaseForTest(pRepo, new(AuditRepoMock))

	pRepo.On("FindByID", mock.Anything, "missing").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Get(context.Background(), "missing")
	assertHTTPError(t, err, http.StatusNotFound, "Not Found")
}

func TestProductUsecase_Create_Validation(t *testing.T) {
	uc := newProductUsecaseForTest(new(ProductRepoMock), new(AuditRepoMock))

	_, err := uc.Create(context.Background(), "admin-1", CreateProductInput{Name: "", Price: 1, Stock: 1})
	assertHTTPError(t, err, http.StatusBadRequest, "name is required")

	_, err = uc.Create(context.Background(), "admin-1", CreateProductInput{Name: "X", Price: -1, Stock: 1})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid price")

	_, err = uc.Create(context.Background(), "admin-1", CreateProductInput{Name: "X", Price: 1, Stock: -1})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid stock")
}

func TestProductUsecase_Create_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	auditRepo := new(AuditRepoMock)
	uc := newProductUsecaseForTest(pRepo, auditRepo)

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Coffee" && p.Price == 500 && p.Stock == 10
	})).Return(model.Product{ID: "p-1", Name: "Coffee", Price: 500, Stock: 10}, nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionProductCreate
	})).Return(nil)

	p, err := uc.Create(context.Background(), "admin-1", CreateProductInput{Name: "Coffee", Price: 500, Stock: 10})
	assert.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)

	pRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

// nilのフィールドは現状維持
func TestProductUsecase_Update_Partial(t *testing.T) {
	pRepo := new(ProductRepoMock)
	auditRepo := new(AuditRepoMock)
	uc := newProductUsecaseForTest(pRepo, auditRepo)

	pRepo.On("FindByID", mock.Anything, "p-1").Return(model.Product{
		ID: "p-1", Name: "Coffee", Price: 500, Stock: 10,
	}, nil)

	newPrice := int64(600)
	pRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.ID == "p-1" && p.Name == "Coffee" && p.Price == 600 && p.Stock == 10
	})).Return(model.Product{ID: "p-1", Name: "Coffee", Price: 600, Stock: 10}, nil)

	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := uc.Update(context.Background(), "admin-1", "p-1", UpdateProductInput{Price: &newPrice})
	assert.NoError(t, err)
	assert.Equal(t, int64(600), p.Price)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_Update_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecaseForTest(pRepo, new(AuditRepoMock))

	pRepo.On("FindByID", mock.Anything, "missing").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Update(context.Background(), "admin-1", "missing", UpdateProductInput{})
	assertHTTPError(t, err, http.StatusNotFound, "Not Found")
}

func TestProductUsecase_Delete_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	auditRepo := new(AuditRepoMock)
	uc := newProductUsecaseForTest(pRepo, auditRepo)

	pRepo.On("Delete", mock.Anything, "p-1").Return(nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionProductDelete
	})).Return(nil)

	err := uc.Delete(context.Background(), "admin-1", "p-1")
	assert.NoError(t, err)

	pRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestProductUsecase_Delete_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUsecaseForTest(pRepo, new(AuditRepoMock))

	pRepo.On("Delete", mock.Anything, "missing").Return(repo.ErrNotFound)

	err := uc.Delete(context.Background(), "admin-1", "missing")
	assertHTTPError(t, err, http.StatusNotFound, "Not Found")
}
