package server

import (
	"storefront/internal/config"

	"github.com/labstack/echo/v4"
)

// 全ルートを登録する。認可は各ハンドラのRegisterRoutes側でグループに付ける。
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Favorite.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminInventory.RegisterRoutes(e, cfg)
}
