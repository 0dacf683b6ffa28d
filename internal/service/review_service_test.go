package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/model"
	"ppa-connect/backend/internal/repository"
)

type reviewFixture struct {
	svc      ReviewService
	users    *mockUserRepo
	postings *mockPostingRepo
	reviews  *mockReviewRepo
	notifs   *mockNotificationRepo
}

func setupReviewTest(t *testing.T) *reviewFixture {
	t.Helper()
	users := newMockUserRepo()
	postings := newMockPostingRepo()
	reviews := newMockReviewRepo()
	notifs := newMockNotificationRepo()

	repo := &repository.Repository{
		User:         users,
		Posting:      postings,
		Review:       reviews,
		Notification: notifs,
	}

	notifier := NewNotificationService(repo, nil, zap.NewNop())
	svc := NewReviewService(repo, notifier, zap.NewNop())

	// 固定种子：owner-1 的一个岗位
	p := &model.Posting{
		PostingID: "posting-1",
		PostedBy:  "owner-1",
		Name:      "实习岗位 A",
		Address:   "1 Broad Street",
	}
	if err := postings.Create(context.Background(), p); err != nil {
		t.Fatalf("种子岗位创建失败: %v", err)
	}

	return &reviewFixture{svc: svc, users: users, postings: postings, reviews: reviews, notifs: notifs}
}

func TestSubmitReview_Success(t *testing.T) {
	f := setupReviewTest(t)
	ctx := context.Background()

	comment := "不错"
	resp, err := f.svc.Submit(ctx, "user-1", "posting-1", &dto.SubmitReviewRequest{Rating: 4, Comment: &comment})
	if err != nil {
		t.Fatalf("Submit 应成功，但返回错误: %v", err)
	}
	if resp.Rating != 4 || resp.Comment == nil || *resp.Comment != "不错" {
		t.Errorf("响应应回显评价内容，实际评分 %d", resp.Rating)
	}
}

func TestSubmitReview_OwnPostRejected(t *testing.T) {
	f := setupReviewTest(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, "owner-1", "posting-1", &dto.SubmitReviewRequest{Rating: 5})
	if !errors.Is(err, ErrReviewOwnPost) {
		t.Errorf("评价自己的岗位应返回 ErrReviewOwnPost，实际: %v", err)
	}
}

func TestSubmitReview_ResubmitOverwrites(t *testing.T) {
	f := setupReviewTest(t)
	ctx := context.Background()

	first, second := "一般", "改观了"
	if _, err := f.svc.Submit(ctx, "user-1", "posting-1", &dto.SubmitReviewRequest{Rating: 2, Comment: &first}); err != nil {
		t.Fatalf("首次提交应成功: %v", err)
	}
	resp, err := f.svc.Submit(ctx, "user-1", "posting-1", &dto.SubmitReviewRequest{Rating: 5, Comment: &second})
	if err != nil {
		t.Fatalf("重复提交应覆盖旧评价: %v", err)
	}
	if resp.Rating != 5 {
		t.Errorf("覆盖后评分应为 5，实际 %d", resp.Rating)
	}
	if len(f.reviews.reviews) != 1 {
		t.Errorf("同一用户同一岗位应只有 1 条评价，实际 %d 条", len(f.reviews.reviews))
	}
}

func TestSubmitReview_NotifiesOwner(t *testing.T) {
	f := setupReviewTest(t)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, "user-1", "posting-1", &dto.SubmitReviewRequest{Rating: 4}); err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	found := 0
	for _, n := range f.notifs.notifications {
		if n.UserID == "owner-1" && n.Type == model.NotificationTypeRating {
			found++
		}
	}
	if found != 1 {
		t.Errorf("岗位主应收到 1 条评价通知，实际 %d 条", found)
	}
}

func TestSubmitReview_RespectsNotifyPreference(t *testing.T) {
	f := setupReviewTest(t)
	ctx := context.Background()

	f.users.profiles["owner-1"] = &model.UserProfile{UserID: "owner-1", NotifyRating: false}

	if _, err := f.svc.Submit(ctx, "user-1", "posting-1", &dto.SubmitReviewRequest{Rating: 4}); err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	for _, n := range f.notifs.notifications {
		if n.UserID == "owner-1" && n.Type == model.NotificationTypeRating {
			t.Fatal("岗位主已关闭评价通知，不应投递")
		}
	}
}

func TestDeleteReview_CrossUserReturnsNotFound(t *testing.T) {
	f := setupReviewTest(t)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, "user-1", "posting-1", &dto.SubmitReviewRequest{Rating: 4})
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	if err := f.svc.Delete(ctx, "user-2", resp.ReviewID, false); !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("删除他人评价应返回 ErrReviewNotFound，实际: %v", err)
	}
	if err := f.svc.Delete(ctx, "admin-1", resp.ReviewID, true); err != nil {
		t.Errorf("管理员应可删除任意评价: %v", err)
	}
}
