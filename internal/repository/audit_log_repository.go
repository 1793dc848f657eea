package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 監査ログの保存の約束。
// 呼び出し側はトランザクションcommit後にベストエフォートで呼ぶ。
type AuditLogRepository interface {
	//監査ログを1件保存
	Create(ctx context.Context, log model.AuditLog) error
}
