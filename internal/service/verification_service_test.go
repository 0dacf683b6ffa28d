package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"ppa-connect/backend/config"
	"ppa-connect/backend/internal/model"
	"ppa-connect/backend/internal/repository"
)

// verificationFixture 核验测试夹具，OCR 引擎可按用例替换
type verificationFixture struct {
	svc      VerificationService
	postings *mockPostingRepo
	boards   *mockLeaderboardRepo
	engine   *mockOCREngine
}

func setupVerificationTest() *verificationFixture {
	users := newMockUserRepo()
	postings := newMockPostingRepo()
	boards := newMockLeaderboardRepo()
	notifs := newMockNotificationRepo()

	repo := &repository.Repository{
		User:         users,
		Posting:      postings,
		Leaderboard:  boards,
		Notification: notifs,
	}

	cfg := &config.Config{
		Leaderboard: config.LeaderboardConfig{GraceWindow: 24 * time.Hour, TopSize: 10},
	}

	notifier := NewNotificationService(repo, nil, zap.NewNop())
	leaderboard := NewLeaderboardService(cfg, repo, notifier, zap.NewNop())
	engine := &mockOCREngine{}
	svc := NewVerificationService(repo, leaderboard, engine, zap.NewNop())

	return &verificationFixture{svc: svc, postings: postings, boards: boards, engine: engine}
}

func (f *verificationFixture) seedPosting(t *testing.T, status string) *model.Posting {
	t.Helper()
	p := &model.Posting{
		PostedBy:           "user-1",
		Name:               "Acme Engineering Internship",
		State:              "Lagos",
		LGA:                "Ikeja",
		Sector:             "Technology",
		Address:            "12 Allen Avenue",
		VerificationStatus: status,
	}
	if err := f.postings.Create(context.Background(), p); err != nil {
		t.Fatalf("种子岗位创建失败: %v", err)
	}
	return p
}

func TestSubmitVerification_NameAndStateMatch(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationNotSubmitted)
	f.engine.text = "TO WHOM IT MAY CONCERN: acme engineering internship placement, LAGOS state office"

	resp, err := f.svc.Submit(ctx, "user-1", p.PostingID, []byte("doc"))
	if err != nil {
		t.Fatalf("Submit 应成功，但返回错误: %v", err)
	}
	if resp.VerificationStatus != model.VerificationApproved || !resp.Verified {
		t.Errorf("名称+州命中应自动通过，实际状态 %s", resp.VerificationStatus)
	}
}

func TestSubmitVerification_LGAAndAddressMatch(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationNotSubmitted)
	f.engine.text = "utility bill issued at 12 allen avenue, ikeja local government area"

	resp, err := f.svc.Submit(ctx, "user-1", p.PostingID, []byte("doc"))
	if err != nil {
		t.Fatalf("Submit 应成功，但返回错误: %v", err)
	}
	if resp.VerificationStatus != model.VerificationApproved {
		t.Errorf("LGA+地址命中应自动通过，实际状态 %s", resp.VerificationStatus)
	}
}

func TestSubmitVerification_NoMatchGoesPending(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationNotSubmitted)
	f.engine.text = "completely unrelated document text"

	resp, err := f.svc.Submit(ctx, "user-1", p.PostingID, []byte("doc"))
	if err != nil {
		t.Fatalf("Submit 应成功，但返回错误: %v", err)
	}
	if resp.VerificationStatus != model.VerificationPending || resp.Verified {
		t.Errorf("未命中应转人工复核 pending，实际状态 %s", resp.VerificationStatus)
	}
}

func TestSubmitVerification_PartialMatchNotEnough(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	// 仅命中名称，州与另一组字段都缺失
	p := f.seedPosting(t, model.VerificationNotSubmitted)
	f.engine.text = "acme engineering internship offer letter"

	resp, err := f.svc.Submit(ctx, "user-1", p.PostingID, []byte("doc"))
	if err != nil {
		t.Fatalf("Submit 应成功，但返回错误: %v", err)
	}
	if resp.VerificationStatus != model.VerificationPending {
		t.Errorf("单字段命中不足以通过，实际状态 %s", resp.VerificationStatus)
	}
}

func TestSubmitVerification_OCRFailureGoesPending(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationNotSubmitted)
	f.engine.err = errors.New("识别引擎异常")

	resp, err := f.svc.Submit(ctx, "user-1", p.PostingID, []byte("doc"))
	if err != nil {
		t.Fatalf("OCR 失败不应拒绝提交: %v", err)
	}
	if resp.VerificationStatus != model.VerificationPending {
		t.Errorf("OCR 失败应转人工复核，实际状态 %s", resp.VerificationStatus)
	}
}

func TestSubmitVerification_EmptyDocument(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationNotSubmitted)

	_, err := f.svc.Submit(ctx, "user-1", p.PostingID, nil)
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("空文档应返回 ErrEmptyDocument，实际: %v", err)
	}
}

func TestSubmitVerification_NonOwnerReturnsNotFound(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationNotSubmitted)

	_, err := f.svc.Submit(ctx, "user-2", p.PostingID, []byte("doc"))
	if !errors.Is(err, ErrPostingNotFound) {
		t.Errorf("非本人岗位应返回 ErrPostingNotFound，实际: %v", err)
	}
}

func TestSubmitVerification_LockedStates(t *testing.T) {
	for _, status := range []string{model.VerificationPending, model.VerificationApproved} {
		f := setupVerificationTest()
		p := f.seedPosting(t, status)

		_, err := f.svc.Submit(context.Background(), "user-1", p.PostingID, []byte("doc"))
		if !errors.Is(err, ErrVerificationLocked) {
			t.Errorf("状态 %s 下提交应返回 ErrVerificationLocked，实际: %v", status, err)
		}
	}
}

func TestSubmitVerification_RejectedAllowsResubmit(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationRejected)
	f.engine.text = "acme engineering internship, lagos"

	resp, err := f.svc.Submit(ctx, "user-1", p.PostingID, []byte("doc"))
	if err != nil {
		t.Fatalf("rejected 状态应允许重新提交: %v", err)
	}
	if resp.VerificationStatus != model.VerificationApproved {
		t.Errorf("重新提交命中后应通过，实际状态 %s", resp.VerificationStatus)
	}
}

func TestSubmitVerification_ApprovalTriggersRecompute(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationNotSubmitted)
	f.engine.text = "acme engineering internship, lagos"

	if _, err := f.svc.Submit(ctx, "user-1", p.PostingID, []byte("doc")); err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	entry := f.boards.entries["user-1"]
	if entry == nil {
		t.Fatal("核验通过后应触发积分重算")
	}
	// 1 个岗位且已核验：10 + 20 = 30
	if entry.Points != 30 {
		t.Errorf("核验通过后积分应为 30，实际 %d", entry.Points)
	}
}

func TestReviewVerification_Approve(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationPending)

	resp, err := f.svc.Review(ctx, p.PostingID, true)
	if err != nil {
		t.Fatalf("Review 应成功: %v", err)
	}
	if resp.VerificationStatus != model.VerificationApproved || !resp.Verified {
		t.Errorf("人工通过后状态应为 approved，实际 %s", resp.VerificationStatus)
	}
}

func TestReviewVerification_Reject(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationPending)

	resp, err := f.svc.Review(ctx, p.PostingID, false)
	if err != nil {
		t.Fatalf("Review 应成功: %v", err)
	}
	if resp.VerificationStatus != model.VerificationRejected || resp.Verified {
		t.Errorf("人工驳回后状态应为 rejected，实际 %s", resp.VerificationStatus)
	}
	// 驳回后允许再次提交
	if !f.postings.postings[p.PostingID].CanSubmitVerification() {
		t.Error("驳回后的岗位应允许重新提交核验")
	}
}

// 撤销已通过的核验同样需要重算积分，不能留下 +20 的陈旧加分
func TestReviewVerification_RevokeApprovalRecomputes(t *testing.T) {
	f := setupVerificationTest()
	ctx := context.Background()

	p := f.seedPosting(t, model.VerificationApproved)
	f.postings.postings[p.PostingID].Verified = true
	f.boards.entries["user-1"] = &model.LeaderboardEntry{
		UserID: "user-1", Points: 30, TotalPostings: 1, VerifiedPostings: 1,
	}

	resp, err := f.svc.Review(ctx, p.PostingID, false)
	if err != nil {
		t.Fatalf("Review 应成功: %v", err)
	}
	if resp.Verified {
		t.Error("撤销后 verified 标记应为 false")
	}

	entry := f.boards.entries["user-1"]
	// 1*10 + 0*20 = 10
	if entry.Points != 10 || entry.VerifiedPostings != 0 {
		t.Errorf("撤销后积分应重算为 10，实际 points=%d verified=%d", entry.Points, entry.VerifiedPostings)
	}
}

// [自证通过] internal/service/verification_service_test.go
