package server

import (
	"net/http"
	"time"

	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ルーティングに必要なハンドラ一式。
type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Product        *handler.ProductHandler
	Cart           *handler.CartHandler
	Favorite       *handler.FavoriteHandler
	Order          *handler.OrderHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminInventory *handler.AdminInventoryHandler
}

// Newはechoを組み立てる。起動はしない（テストから直接使えるように）。
func New(logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger(logger))

	// 未定義ルートもenvelopeで返す
	echo.NotFoundHandler = func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"message": "Not Found",
			"data":    map[string]string{"error": "Not Found"},
			"meta":    map[string]interface{}{"page": nil, "per_page": nil, "total": nil},
		})
	}

	return e
}

// 1リクエスト1行のアクセスログ。
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			logger.Info("request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
			)

			return nil
		}
	}
}
