package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/inventoryのHTTP
type AdminInventoryHandler struct {
	uc *usecase.AdminInventoryUsecase
}

// DI
func NewAdminInventoryHandler(uc *usecase.AdminInventoryUsecase) *AdminInventoryHandler {
	return &AdminInventoryHandler{uc: uc}
}

type AdjustInventoryRequest struct {
	Delta int64 `json:"delta"`
}

// /admin/inventory配下を登録
func (h *AdminInventoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/inventory")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/low-stock", h.listLowStock)
	g.PATCH("/:id", h.adjust)
}

func (h *AdminInventoryHandler) listLowStock(c echo.Context) error {
	out, err := h.uc.ListLowStock(c.Request().Context(), usecase.LowStockInput{
		Threshold: queryInt64Ptr(c, "threshold"),
		Page:      queryInt(c, "page", 0),
		PerPage:   queryInt(c, "per_page", 0),
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Low stock", out, NewMeta(out.Page, out.PerPage, out.Total))
}

func (h *AdminInventoryHandler) adjust(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	var req AdjustInventoryRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid body", ErrorData{Error: "invalid body"}, EmptyMeta())
	}

	product, err := h.uc.Adjust(c.Request().Context(), userID, c.Param("id"), usecase.AdjustInventoryInput{
		Delta: req.Delta,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Inventory updated", product, EmptyMeta())
}
