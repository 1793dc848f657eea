package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/ordersのHTTP
type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

// DI
func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// /admin/orders配下を登録
func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.OrderListInput{
		Page:      queryInt(c, "page", 0),
		PerPage:   queryInt(c, "per_page", 0),
		Status:    c.QueryParam("status"),
		SortOrder: c.QueryParam("sort_order"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Orders", out, NewMeta(out.Page, out.PerPage, out.Total))
}

func (h *AdminOrderHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Order found", out, EmptyMeta())
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid body", ErrorData{Error: "invalid body"}, EmptyMeta())
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), userID, c.Param("id"), usecase.AdminUpdateOrderStatusInput{
		Status: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Order updated", order, EmptyMeta())
}
