package model

import "time"

// 監査ログの操作種別。
type AuditAction string

const (
	AuditActionUserRegister      AuditAction = "user_register"
	AuditActionUserLogin         AuditAction = "user_login"
	AuditActionProductCreate     AuditAction = "product_create"
	AuditActionProductUpdate     AuditAction = "product_update"
	AuditActionProductDelete     AuditAction = "product_delete"
	AuditActionCartUpdate        AuditAction = "cart_update"
	AuditActionCartRemove        AuditAction = "cart_remove"
	AuditActionFavoriteAdd       AuditAction = "favorite_add"
	AuditActionFavoriteRemove    AuditAction = "favorite_remove"
	AuditActionCheckout          AuditAction = "checkout"
	AuditActionOrderPaid         AuditAction = "order_paid"
	AuditActionOrderStatusUpdate AuditAction = "order_status_update"
	AuditActionInventoryAdjust   AuditAction = "inventory_adjust"
)

// 監査ログ。「誰が」「何を」「どの資源に」を残す。
// ベストエフォート：保存失敗は警告ログのみで業務結果には影響させない。
type AuditLog struct {
	ID        string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *string     `gorm:"type:uuid;index" json:"user_id"`
	Action    AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`
	Resource  *string     `gorm:"type:varchar(50)" json:"resource"`
	Metadata  string      `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
