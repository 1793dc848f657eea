package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// BASE_URLの先の起動済みサーバーに対して叩くブラックボックステスト。
// 管理者はseed済み（ADMIN_EMAIL / ADMIN_PASSWORD）であること。

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// 全レスポンス共通の形
type Envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *MetaDTO        `json:"meta"`
}

type MetaDTO struct {
	Page    *int64 `json:"page"`
	PerPage *int64 `json:"per_page"`
	Total   *int64 `json:"total"`
}

type ErrorData struct {
	Error string `json:"error"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginData struct {
	Token string `json:"token"`
}

type ProductDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"`
	Stock       int64   `json:"stock"`
}

type ProductListData struct {
	Items []ProductDTO `json:"items"`
}

type CartItemDTO struct {
	ID       string     `json:"id"`
	Product  ProductDTO `json:"product"`
	Quantity int64      `json:"quantity"`
}

type CartListData struct {
	Items []CartItemDTO `json:"items"`
}

type OrderDTO struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	TotalAmount   int64  `json:"total_amount"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	InvoiceNumber string `json:"invoice_number"`
	PaidAt        *string `json:"paid_at"`
}

type OrderItemDTO struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
}

type OrderWithItemsData struct {
	Order OrderDTO       `json:"order"`
	Items []OrderItemDTO `json:"items"`
}

type OrderListData struct {
	Items []OrderDTO `json:"items"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type AdjustInventoryRequest struct {
	Delta int64 `json:"delta"`
}

type AddFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

// authzはログインが返すtoken（"Bearer ..."形式）をそのまま渡す。
func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	authz string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecodeEnvelope(t *testing.T, body []byte) Envelope {
	t.Helper()
	var v Envelope
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(Envelope) failed: %v body=%s", err, string(body))
	}
	return v
}

// envelopeのdataを指定の型へデコード
func mustDecodeData(t *testing.T, body []byte, out interface{}) Envelope {
	t.Helper()
	env := mustDecodeEnvelope(t, body)
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("json.Unmarshal(data) failed: %v data=%s", err, string(env.Data))
	}
	return env
}

func mustDecodeErrorData(t *testing.T, body []byte) ErrorData {
	t.Helper()
	var v ErrorData
	mustDecodeData(t, body, &v)
	return v
}

func uniqueEmail(prefix string) string {
	return prefix + "-" + time.Now().Format("150405.000000000") + "@example.com"
}

// 新規ユーザーを登録してログインし、tokenを返す
func registerAndLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := uniqueEmail("e2e-user")
	reg, _ := json.Marshal(RegisterRequest{Email: email, Password: "password123"})

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/register", "", reg)
	requireStatus(t, resp, http.StatusOK, body)

	return login(t, c, ctx, email, "password123")
}

func login(t *testing.T, c *TestClient, ctx context.Context, email string, password string) string {
	t.Helper()

	b, _ := json.Marshal(LoginRequest{Email: email, Password: password})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", b)
	requireStatus(t, resp, http.StatusOK, body)

	var data LoginData
	mustDecodeData(t, body, &data)
	if !strings.HasPrefix(data.Token, "Bearer ") {
		t.Fatalf("token is not Bearer form: %q", data.Token)
	}
	return data.Token
}

func adminLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password123"
	}

	return login(t, c, ctx, email, password)
}

// 商品を作成して返す（admin）
func createProduct(t *testing.T, c *TestClient, ctx context.Context, adminToken string, name string, price int64, stock int64) ProductDTO {
	t.Helper()

	b, _ := json.Marshal(CreateProductRequest{
		Name:        name,
		Description: "e2e test product",
		Price:       price,
		Stock:       stock,
	})

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/products", adminToken, b)
	requireStatus(t, resp, http.StatusOK, body)

	var p ProductDTO
	mustDecodeData(t, body, &p)
	if p.ID == "" {
		t.Fatalf("created product has empty id: body=%s", string(body))
	}
	return p
}

func getProduct(t *testing.T, c *TestClient, ctx context.Context, productID string) ProductDTO {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/products/"+productID, "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	var p ProductDTO
	mustDecodeData(t, body, &p)
	return p
}

func addToCart(t *testing.T, c *TestClient, ctx context.Context, token string, productID string, qty int64) {
	t.Helper()

	b, _ := json.Marshal(AddToCartRequest{ProductID: productID, Quantity: qty})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/cart", token, b)
	requireStatus(t, resp, http.StatusOK, body)
}

func checkout(t *testing.T, c *TestClient, ctx context.Context, token string) OrderWithItemsData {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/orders/checkout", token, []byte(`{}`))
	requireStatus(t, resp, http.StatusOK, body)

	var data OrderWithItemsData
	mustDecodeData(t, body, &data)
	return data
}
