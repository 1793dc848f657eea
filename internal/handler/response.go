package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ページング情報。非ページングのレスポンスでは全フィールドnull。
type Meta struct {
	Page    *int64 `json:"page"`
	PerPage *int64 `json:"per_page"`
	Total   *int64 `json:"total"`
}

func NewMeta(page int, perPage int, total int64) *Meta {
	p := int64(page)
	pp := int64(perPage)
	return &Meta{Page: &p, PerPage: &pp, Total: &total}
}

func EmptyMeta() *Meta {
	return &Meta{}
}

// 成功も失敗も同じ形で返す：{message, data, meta}
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta"`
}

func respond(c echo.Context, status int, message string, data interface{}, meta *Meta) error {
	return c.JSON(status, Envelope{
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

type ErrorData struct {
	Error string `json:"error"`
}

// usecaseのHTTPErrorをそのままステータスに変換。それ以外は500。
func writeError(c echo.Context, err error) error {
	if he, ok := usecase.AsHTTPError(err); ok {
		return respond(c, he.Status, he.Message, ErrorData{Error: he.Message}, EmptyMeta())
	}
	return respond(c, http.StatusInternalServerError, "Internal Server Error",
		ErrorData{Error: "Internal Server Error"}, EmptyMeta())
}
