package reader

import (
	"context"

	"Gigbell/internal/modules/notification/domain/entity"
	"Gigbell/internal/modules/notification/domain/repository"
	userEntity "Gigbell/internal/modules/user/domain/entity"

	"gorm.io/gorm"
)

type recipientReaderImpl struct {
	db *gorm.DB
}

func NewRecipientReader(db *gorm.DB) repository.RecipientReader {
	return &recipientReaderImpl{db: db}
}

func (r *recipientReaderImpl) ListPushTargets(ctx context.Context, userIDs []int64) ([]entity.PushTarget, error) {
	if len(userIDs) == 0 {
		return []entity.PushTarget{}, nil
	}
	var users []userEntity.User
	err := r.db.WithContext(ctx).
		Select("id, alarm_enabled, push_token").
		Where("id IN ? AND alarm_enabled = ? AND push_token IS NOT NULL AND push_token <> ''", userIDs, true).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.PushTarget, 0, len(users))
	for i := range users {
		if !users[i].CanReceivePush() {
			continue
		}
		out = append(out, entity.PushTarget{UserID: users[i].ID, Token: *users[i].PushToken})
	}
	return out, nil
}
