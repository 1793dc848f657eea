package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// 注文。checkoutで(pending, unpaid)として一度だけ作成される。
// payment_statusのunpaid→paidは一度きり（再実行は400）。
type Order struct {
	ID            string        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string        `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`
	InvoiceNumber string        `gorm:"type:varchar(40);not null" json:"invoice_number"`
	PaidAt        *time.Time    `json:"paid_at"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
