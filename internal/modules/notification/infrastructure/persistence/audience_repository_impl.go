package persistence

import (
	"context"
	"errors"
	"fmt"

	"AeroComply/internal/modules/notification/domain/entity"
	"AeroComply/internal/modules/notification/domain/repository"

	"gorm.io/gorm"
)

type audienceRepositoryImpl struct {
	db *gorm.DB
}

func NewAudienceRepository(db *gorm.DB) repository.AudienceRepository {
	return &audienceRepositoryImpl{db: db}
}

func (r *audienceRepositoryImpl) ListRecipients(ctx context.Context, aircraftID *string) (*entity.Audience, error) {
	out := &entity.Audience{}
	if aircraftID == nil || *aircraftID == "" {
		return out, nil
	}

	var aircraft entity.Aircraft
	err := r.db.WithContext(ctx).Where("id = ?", *aircraftID).Take(&aircraft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, nil
		}
		return nil, fmt.Errorf("load aircraft %s: %w", *aircraftID, err)
	}
	if aircraft.OrgID == "" {
		return out, nil
	}
	out.OrgID = aircraft.OrgID

	var members []entity.OrgMember
	if err := r.db.WithContext(ctx).
		Where("org_id = ?", aircraft.OrgID).
		Order("user_id ASC").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list members of org %s: %w", aircraft.OrgID, err)
	}
	out.Recipients = make([]entity.Recipient, 0, len(members))
	for _, m := range members {
		out.Recipients = append(out.Recipients, entity.Recipient{UserID: m.UserID, Email: m.Email})
	}
	return out, nil
}
