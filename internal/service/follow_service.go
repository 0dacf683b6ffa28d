package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/model"
	"ppa-connect/backend/internal/repository"
	pkgerrors "ppa-connect/backend/pkg/errors"
)

var ErrSelfFollow = errors.New("不能关注自己")

// FollowService 关注关系业务接口
type FollowService interface {
	// Toggle 切换关注状态：未关注则建立，已关注则取消
	Toggle(ctx context.Context, followerID, targetID string) (*dto.ToggleResponse, error)
}

type followService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewFollowService 创建 FollowService 实例
func NewFollowService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) FollowService {
	return &followService{repo: repo, notifier: notifier, logger: logger}
}

func (s *followService) Toggle(ctx context.Context, followerID, targetID string) (*dto.ToggleResponse, error) {
	if followerID == targetID {
		return nil, ErrSelfFollow
	}

	target, err := s.repo.User.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	_, err = s.repo.Follow.Get(ctx, followerID, targetID)
	switch {
	case err == nil:
		if err := s.repo.Follow.Delete(ctx, followerID, targetID); err != nil {
			return nil, err
		}
		return &dto.ToggleResponse{Active: false}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		follow := &model.Follow{FollowerID: followerID, FollowedID: targetID}
		if err := s.repo.Follow.Create(ctx, follow); err != nil {
			// 并发重复关注按已关注处理
			if pkgerrors.IsUniqueViolation(err) {
				return &dto.ToggleResponse{Active: true}, nil
			}
			return nil, err
		}
		s.notifyFollowed(ctx, followerID, target)
		return &dto.ToggleResponse{Active: true}, nil
	default:
		return nil, err
	}
}

func (s *followService) notifyFollowed(ctx context.Context, followerID string, target *model.User) {
	if target.Profile != nil && !target.Profile.NotifyFollow {
		return
	}

	follower, err := s.repo.User.GetByID(ctx, followerID)
	if err != nil {
		s.logger.Error("查询关注者失败", zap.String("user_id", followerID), zap.Error(err))
		return
	}

	message := fmt.Sprintf("%s 关注了你", follower.Username)
	url := "/users/" + followerID
	if err := s.notifier.Deliver(ctx, target.UserID, model.NotificationTypeFollow, message, []string{url}); err != nil {
		s.logger.Error("投递关注通知失败", zap.String("user_id", target.UserID), zap.Error(err))
	}
}
