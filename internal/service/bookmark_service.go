package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/model"
	"ppa-connect/backend/internal/repository"
	pkgerrors "ppa-connect/backend/pkg/errors"
)

// BookmarkService 收藏业务接口
type BookmarkService interface {
	// Toggle 切换收藏状态
	Toggle(ctx context.Context, userID, postingID string) (*dto.ToggleResponse, error)
	List(ctx context.Context, userID string, page *dto.PaginationRequest) ([]dto.BookmarkResponse, int64, error)
}

type bookmarkService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBookmarkService 创建 BookmarkService 实例
func NewBookmarkService(repo *repository.Repository, logger *zap.Logger) BookmarkService {
	return &bookmarkService{repo: repo, logger: logger}
}

func (s *bookmarkService) Toggle(ctx context.Context, userID, postingID string) (*dto.ToggleResponse, error) {
	if _, err := s.repo.Posting.GetByID(ctx, postingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}

	_, err := s.repo.Bookmark.Get(ctx, userID, postingID)
	switch {
	case err == nil:
		if err := s.repo.Bookmark.Delete(ctx, userID, postingID); err != nil {
			return nil, err
		}
		return &dto.ToggleResponse{Active: false}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		bookmark := &model.Bookmark{UserID: userID, PostingID: postingID}
		if err := s.repo.Bookmark.Create(ctx, bookmark); err != nil {
			if pkgerrors.IsUniqueViolation(err) {
				return &dto.ToggleResponse{Active: true}, nil
			}
			return nil, err
		}
		return &dto.ToggleResponse{Active: true}, nil
	default:
		return nil, err
	}
}

func (s *bookmarkService) List(ctx context.Context, userID string, page *dto.PaginationRequest) ([]dto.BookmarkResponse, int64, error) {
	bookmarks, total, err := s.repo.Bookmark.ListByUser(ctx, userID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		item := dto.BookmarkResponse{
			BookmarkID: b.BookmarkID,
			CreatedAt:  b.CreatedAt.Format(time.RFC3339),
		}
		if b.Posting != nil {
			item.Posting = &dto.PostingResponse{
				PostingID:              b.Posting.PostingID,
				PostedBy:               b.Posting.PostedBy,
				Name:                   b.Posting.Name,
				State:                  b.Posting.State,
				LGA:                    b.Posting.LGA,
				Sector:                 b.Posting.Sector,
				Stipend:                b.Posting.Stipend,
				AccommodationAvailable: b.Posting.AccommodationAvailable,
				Description:            b.Posting.Description,
				Contact:                b.Posting.Contact,
				Address:                b.Posting.Address,
				Verified:               b.Posting.Verified,
				VerificationStatus:     b.Posting.VerificationStatus,
				Bookmarked:             true,
				CreatedAt:              b.Posting.CreatedAt.Format(time.RFC3339),
			}
			if b.Posting.Owner != nil {
				item.Posting.OwnerName = b.Posting.Owner.Username
			}
		}
		items = append(items, item)
	}
	return items, total, nil
}
