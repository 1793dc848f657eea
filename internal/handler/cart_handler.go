package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// /cart, /cart/:product_id を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.DELETE("/:product_id", h.removeFromCart)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID, queryInt(c, "page", 0), queryInt(c, "per_page", 0))
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", out, NewMeta(out.Page, out.PerPage, out.Total))
}

func (h *CartHandler) addToCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid body", ErrorData{Error: "invalid body"}, EmptyMeta())
	}

	item, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddToCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", item, nil)
}

func (h *CartHandler) removeFromCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	if err := h.uc.RemoveFromCart(c.Request().Context(), userID, c.Param("product_id")); err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Removed from cart", map[string]interface{}{}, EmptyMeta())
}
