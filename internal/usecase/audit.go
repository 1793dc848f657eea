package usecase

import (
	"context"
	"encoding/json"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// AuditRecorderは監査ログのベストエフォート書き込み。
// 失敗は警告ログのみ。業務トランザクションのcommit後に呼ぶこと。
type AuditRecorder struct {
	auditRepo repo.AuditLogRepository
	idGen     IDGenerator
	clock     Clock
	logger    *zap.Logger
}

func NewAuditRecorder(
	auditRepo repo.AuditLogRepository,
	idGen IDGenerator,
	clock Clock,
	logger *zap.Logger,
) *AuditRecorder {
	return &AuditRecorder{
		auditRepo: auditRepo,
		idGen:     idGen,
		clock:     clock,
		logger:    logger,
	}
}

func (a *AuditRecorder) Record(
	ctx context.Context,
	userID *string,
	action model.AuditAction,
	resource string,
	metadata map[string]interface{},
) {
	meta, err := json.Marshal(metadata)
	if err != nil {
		a.logger.Warn("audit log failed",
			zap.String("action", string(action)),
			zap.Error(err))
		return
	}

	log := model.AuditLog{
		ID:        a.idGen.NewID(),
		UserID:    userID,
		Action:    action,
		Resource:  &resource,
		Metadata:  string(meta),
		CreatedAt: a.clock.Now(),
	}

	if err := a.auditRepo.Create(ctx, log); err != nil {
		a.logger.Warn("audit log failed",
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
