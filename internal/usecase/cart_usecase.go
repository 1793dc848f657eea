package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// Order Engineはカートを読むだけ。ここは表示と編集だけを持つ。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
	audit       *AuditRecorder
	idGen       IDGenerator
	clock       Clock
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
	audit *AuditRecorder,
	idGen IDGenerator,
	clock Clock,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		audit:       audit,
		idGen:       idGen,
		clock:       clock,
	}
}

type CartItemOutput struct {
	ID       string        `json:"id"`
	Product  model.Product `json:"product"`
	Quantity int64         `json:"quantity"`
}

type CartListOutput struct {
	Items   []CartItemOutput `json:"items"`
	Page    int              `json:"-"`
	PerPage int              `json:"-"`
	Total   int64            `json:"-"`
}

type AddToCartInput struct {
	ProductID string
	Quantity  int64
}

// GetCart はカートを商品情報付きで返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID string, page int, perPage int) (CartListOutput, error) {
	if userID == "" {
		return CartListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page, perPage = normalizePagination(page, perPage)

	lines, total, err := u.cartRepo.ListWithProducts(ctx, userID, page, perPage)
	if err != nil {
		return CartListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]CartItemOutput, 0, len(lines))
	for _, ln := range lines {
		items = append(items, CartItemOutput{
			ID:       ln.CartItemID,
			Product:  ln.Product,
			Quantity: ln.Quantity,
		})
	}

	return CartListOutput{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// AddToCart はカートに追加。同一商品は数量を置き換える。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, in AddToCartInput) (model.CartItem, error) {
	if userID == "" {
		return model.CartItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Quantity <= 0 {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0")
	}

	// 商品チェック
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "product not found")
		}
		return model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartRepo.Upsert(ctx, model.CartItem{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CreatedAt: u.clock.Now(),
	})
	if err != nil {
		return model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit.Record(ctx, &userID, model.AuditActionCartUpdate, "cart_items",
		map[string]interface{}{"product_id": in.ProductID, "quantity": in.Quantity})

	return item, nil
}

// RemoveFromCart は商品単位で1行削除。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID string, productID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.cartRepo.Remove(ctx, userID, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Not Found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit.Record(ctx, &userID, model.AuditActionCartRemove, "cart_items",
		map[string]interface{}{"product_id": productID})

	return nil
}
