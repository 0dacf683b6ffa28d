package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/model"
	"ppa-connect/backend/internal/repository"
	pkgerrors "ppa-connect/backend/pkg/errors"
)

var ErrAlreadySubscribed = errors.New("该邮箱已订阅")

// MarketplaceService 集市预告业务接口（集市上线前的占位页）
type MarketplaceService interface {
	Subscribe(ctx context.Context, email string) error
	// SubmitFeedback userID 为空表示匿名反馈
	SubmitFeedback(ctx context.Context, userID, message, ipAddress string) error
	Stats(ctx context.Context) (*dto.MarketplaceStatsResponse, error)
}

type marketplaceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMarketplaceService 创建 MarketplaceService 实例
func NewMarketplaceService(repo *repository.Repository, logger *zap.Logger) MarketplaceService {
	return &marketplaceService{repo: repo, logger: logger}
}

func (s *marketplaceService) Subscribe(ctx context.Context, email string) error {
	sub := &model.MarketplaceSubscription{
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
	if err := s.repo.Marketplace.CreateSubscription(ctx, sub); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return ErrAlreadySubscribed
		}
		return err
	}
	return nil
}

func (s *marketplaceService) SubmitFeedback(ctx context.Context, userID, message, ipAddress string) error {
	fb := &model.MarketplaceFeedback{Feedback: message}
	if userID != "" {
		fb.UserID = &userID
	}
	if ipAddress != "" {
		fb.IPAddress = &ipAddress
	}
	return s.repo.Marketplace.CreateFeedback(ctx, fb)
}

func (s *marketplaceService) Stats(ctx context.Context) (*dto.MarketplaceStatsResponse, error) {
	subs, err := s.repo.Marketplace.CountSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := s.repo.Marketplace.CountFeedback(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MarketplaceStatsResponse{Subscribers: subs, Feedback: feedback}, nil
}
