package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/repository"
)

var ErrProfilePrivate = errors.New("该用户资料未公开")

// UserService 用户资料业务接口
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateNotifyPrefs(ctx context.Context, userID string, req *dto.UpdateNotifyPrefsRequest) error
	// GetPublicProfile 他人视角查看资料，is_public 为 false 时拒绝
	GetPublicProfile(ctx context.Context, viewerID, targetID string) (*dto.PublicProfileResponse, error)
	// TouchLastSeen 刷新在线活跃时间，由活跃度中间件异步调用
	TouchLastSeen(ctx context.Context, userID string)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Profile == nil {
		return nil, ErrUserNotFound
	}

	followers, err := s.repo.Follow.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.repo.Follow.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := user.Profile
	return &dto.ProfileResponse{
		UserID:            userID,
		Username:          user.Username,
		Bio:               p.Bio,
		TwitterURL:        p.TwitterURL,
		FacebookURL:       p.FacebookURL,
		IsPublic:          p.IsPublic,
		IsOnline:          p.IsOnline(time.Now()),
		NotifyFollow:      p.NotifyFollow,
		NotifyRating:      p.NotifyRating,
		NotifyLeaderboard: p.NotifyLeaderboard,
		NotifyPost:        p.NotifyPost,
		Followers:         followers,
		Following:         following,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.repo.User.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.TwitterURL != nil {
		profile.TwitterURL = *req.TwitterURL
	}
	if req.FacebookURL != nil {
		profile.FacebookURL = *req.FacebookURL
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}

	if err := s.repo.User.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *userService) UpdateNotifyPrefs(ctx context.Context, userID string, req *dto.UpdateNotifyPrefsRequest) error {
	profile, err := s.repo.User.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if req.NotifyFollow != nil {
		profile.NotifyFollow = *req.NotifyFollow
	}
	if req.NotifyRating != nil {
		profile.NotifyRating = *req.NotifyRating
	}
	if req.NotifyLeaderboard != nil {
		profile.NotifyLeaderboard = *req.NotifyLeaderboard
	}
	if req.NotifyPost != nil {
		profile.NotifyPost = *req.NotifyPost
	}

	return s.repo.User.SaveProfile(ctx, profile)
}

func (s *userService) GetPublicProfile(ctx context.Context, viewerID, targetID string) (*dto.PublicProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Profile == nil || (!user.Profile.IsPublic && viewerID != targetID) {
		return nil, ErrProfilePrivate
	}

	followers, err := s.repo.Follow.CountFollowers(ctx, targetID)
	if err != nil {
		return nil, err
	}
	following, err := s.repo.Follow.CountFollowing(ctx, targetID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != "" && viewerID != targetID {
		if _, err := s.repo.Follow.Get(ctx, viewerID, targetID); err == nil {
			isFollowing = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	p := user.Profile
	return &dto.PublicProfileResponse{
		UserID:      targetID,
		Username:    user.Username,
		Bio:         p.Bio,
		TwitterURL:  p.TwitterURL,
		FacebookURL: p.FacebookURL,
		IsOnline:    p.IsOnline(time.Now()),
		Followers:   followers,
		Following:   following,
		IsFollowing: isFollowing,
	}, nil
}

func (s *userService) TouchLastSeen(ctx context.Context, userID string) {
	if err := s.repo.User.TouchLastSeen(ctx, userID, time.Now()); err != nil {
		s.logger.Warn("刷新活跃时间失败", zap.String("user_id", userID), zap.Error(err))
	}
}
