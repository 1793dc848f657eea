package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /ordersのHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// checkout/payはボディを受けるが中身は使わない（決済ゲートウェイは対象外）。
type CheckoutRequest struct {
	Note *string `json:"note"`
}

type PayOrderRequest struct {
	Method *string `json:"method"`
}

// /orders配下を登録
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("/checkout", h.checkout)
	g.GET("/:id", h.get)
	g.POST("/:id/pay", h.pay)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	out, err := h.uc.ListOrders(c.Request().Context(), userID, usecase.OrderListInput{
		Page:      queryInt(c, "page", 0),
		PerPage:   queryInt(c, "per_page", 0),
		Status:    c.QueryParam("status"),
		SortOrder: c.QueryParam("sort_order"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Ok", out, NewMeta(out.Page, out.PerPage, out.Total))
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	var req CheckoutRequest
	_ = c.Bind(&req)

	out, err := h.uc.Checkout(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Checkout success", out, EmptyMeta())
}

func (h *OrderHandler) get(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	out, err := h.uc.GetOrder(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", out, EmptyMeta())
}

func (h *OrderHandler) pay(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	var req PayOrderRequest
	_ = c.Bind(&req)

	out, err := h.uc.PayOrder(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Payment recorded", out, EmptyMeta())
}
