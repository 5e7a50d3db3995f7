package service

import (
	"context"
	"errors"
	"strings"

	"AeroComply/internal/modules/notification/application/dto/request"
	"AeroComply/internal/modules/notification/domain/entity"
	"AeroComply/internal/modules/notification/domain/repository"
	"AeroComply/pkg/xerr"
	"AeroComply/pkg/zlog"

	"go.uber.org/zap"
)

type PreferenceService interface {
	// GetPreferences 首次读取时写入默认偏好
	GetPreferences(ctx context.Context, userID string) (*entity.NotificationPreferences, error)
	ReplacePreferences(ctx context.Context, userID string, req request.UpdatePreferencesRequest) (*entity.NotificationPreferences, error)
}

type preferenceServiceImpl struct {
	prefRepo repository.PreferenceRepository
}

func NewPreferenceService(prefRepo repository.PreferenceRepository) PreferenceService {
	return &preferenceServiceImpl{prefRepo: prefRepo}
}

func (s *preferenceServiceImpl) GetPreferences(ctx context.Context, userID string) (*entity.NotificationPreferences, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, xerr.New(xerr.Unauthorized, "未登录")
	}
	prefs, err := s.prefRepo.Get(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, repository.ErrPreferenceNotFound) {
		zlog.Error("load notification preferences failed", zap.String("user_id", userID), zap.Error(err))
		return nil, xerr.ErrServerError
	}

	prefs = entity.DefaultPreferences(userID)
	if err := s.prefRepo.Save(ctx, prefs); err != nil {
		zlog.Error("create default notification preferences failed", zap.String("user_id", userID), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	zlog.Info("default notification preferences created", zap.String("user_id", userID))
	return prefs, nil
}

func (s *preferenceServiceImpl) ReplacePreferences(ctx context.Context, userID string, req request.UpdatePreferencesRequest) (*entity.NotificationPreferences, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, xerr.New(xerr.Unauthorized, "未登录")
	}
	prefs := &entity.NotificationPreferences{
		UserID:             userID,
		MandatoryDirective: req.MandatoryDirective,
		DefectCritical:     req.DefectCritical,
		DefectMajor:        req.DefectMajor,
		DefectMinor:        req.DefectMinor,
		AogWorkOrder:       req.AogWorkOrder,
		LifeLimitCritical:  req.LifeLimitCritical,
		LandingGearDue:     req.LandingGearDue,
		MaintenanceDue:     req.MaintenanceDue,
		CertificateExpiry:  req.CertificateExpiry,
		PersonnelExpiry:    req.PersonnelExpiry,
		EmailEnabled:       req.EmailEnabled,
		PushEnabled:        req.PushEnabled,
		RealtimeEnabled:    req.RealtimeEnabled,
	}
	if err := s.prefRepo.Save(ctx, prefs); err != nil {
		zlog.Error("save notification preferences failed", zap.String("user_id", userID), zap.Error(err))
		return nil, xerr.ErrServerError
	}
	return prefs, nil
}
