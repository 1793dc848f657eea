package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /favoritesのHTTP
type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

// DI
func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

type AddFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

// /favorites, /favorites/:product_id を登録
func (h *FavoriteHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/favorites")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("", h.add)
	g.DELETE("/:product_id", h.remove)
}

func (h *FavoriteHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	out, err := h.uc.List(c.Request().Context(), userID, queryInt(c, "page", 0), queryInt(c, "per_page", 0))
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", out, NewMeta(out.Page, out.PerPage, out.Total))
}

func (h *FavoriteHandler) add(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid body", ErrorData{Error: "invalid body"}, EmptyMeta())
	}

	fav, err := h.uc.Add(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Added to favorites", fav, EmptyMeta())
}

func (h *FavoriteHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Unauthorized", ErrorData{Error: "unauthorized"}, EmptyMeta())
	}

	if err := h.uc.Remove(c.Request().Context(), userID, c.Param("product_id")); err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Removed from favorites", map[string]interface{}{}, EmptyMeta())
}
