package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/model"
	pkgerrors "ppa-connect/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users    map[string]*model.User // key: user_id
	profiles map[string]*model.UserProfile
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:    make(map[string]*model.User),
		profiles: make(map[string]*model.UserProfile),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return pkgerrors.ErrDuplicateKey
		}
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// 模拟 Preload("Profile")
	if p, ok := m.profiles[id]; ok {
		u.Profile = p
	}
	return u, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) ListActiveIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id, u := range m.users {
		if u.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockUserRepo) GetProfile(_ context.Context, userID string) (*model.UserProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockUserRepo) SaveProfile(_ context.Context, profile *model.UserProfile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockUserRepo) TouchLastSeen(_ context.Context, userID string, at time.Time) error {
	if p, ok := m.profiles[userID]; ok {
		p.LastSeen = &at
	}
	return nil
}

// ── Mock PostingRepository ──

type mockPostingRepo struct {
	postings map[string]*model.Posting
	seq      int
}

func newMockPostingRepo() *mockPostingRepo {
	return &mockPostingRepo{postings: make(map[string]*model.Posting)}
}

func (m *mockPostingRepo) Create(_ context.Context, posting *model.Posting) error {
	for _, p := range m.postings {
		if p.Name == posting.Name && p.Address == posting.Address {
			return pkgerrors.ErrDuplicateKey
		}
	}
	m.seq++
	if posting.PostingID == "" {
		posting.PostingID = fmt.Sprintf("posting-%d", m.seq)
	}
	posting.CreatedAt = time.Now()
	m.postings[posting.PostingID] = posting
	return nil
}

func (m *mockPostingRepo) GetByID(_ context.Context, id string) (*model.Posting, error) {
	p, ok := m.postings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockPostingRepo) Update(_ context.Context, posting *model.Posting) error {
	m.postings[posting.PostingID] = posting
	return nil
}

func (m *mockPostingRepo) Delete(_ context.Context, id string) error {
	delete(m.postings, id)
	return nil
}

func (m *mockPostingRepo) List(_ context.Context, req *dto.PostingListRequest) ([]model.Posting, int64, error) {
	var result []model.Posting
	for _, p := range m.postings {
		if req.State != "" && p.State != req.State {
			continue
		}
		if req.LGA != "" && p.LGA != req.LGA {
			continue
		}
		if req.Sector != "" && p.Sector != req.Sector {
			continue
		}
		if req.MinStipend != nil && (p.Stipend == nil || *p.Stipend < *req.MinStipend) {
			continue
		}
		if req.Verified != nil && p.Verified != *req.Verified {
			continue
		}
		if req.Keyword != "" && !strings.Contains(p.Name, req.Keyword) && !strings.Contains(p.Address, req.Keyword) {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockPostingRepo) ListFeatured(_ context.Context, _ float64, _ int) ([]model.Posting, error) {
	return nil, nil
}

func (m *mockPostingRepo) CountByOwner(_ context.Context, userID string) (int64, int64, error) {
	var total, verified int64
	for _, p := range m.postings {
		if p.PostedBy == userID {
			total++
			if p.Verified {
				verified++
			}
		}
	}
	return total, verified, nil
}

// ── Mock ReviewRepository ──

type mockReviewRepo struct {
	reviews map[string]*model.Review
	seq     int
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[string]*model.Review)}
}

func (m *mockReviewRepo) Create(_ context.Context, review *model.Review) error {
	for _, r := range m.reviews {
		if r.UserID == review.UserID && r.PostingID == review.PostingID {
			return pkgerrors.ErrDuplicateKey
		}
	}
	m.seq++
	if review.ReviewID == "" {
		review.ReviewID = fmt.Sprintf("review-%d", m.seq)
	}
	review.CreatedAt = time.Now()
	m.reviews[review.ReviewID] = review
	return nil
}

func (m *mockReviewRepo) Update(_ context.Context, review *model.Review) error {
	m.reviews[review.ReviewID] = review
	return nil
}

func (m *mockReviewRepo) Delete(_ context.Context, reviewID string) error {
	delete(m.reviews, reviewID)
	return nil
}

func (m *mockReviewRepo) GetByID(_ context.Context, reviewID string) (*model.Review, error) {
	r, ok := m.reviews[reviewID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockReviewRepo) GetByUserAndPosting(_ context.Context, userID, postingID string) (*model.Review, error) {
	for _, r := range m.reviews {
		if r.UserID == userID && r.PostingID == postingID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) ListByPosting(_ context.Context, postingID string, _, _ int) ([]model.Review, int64, error) {
	var result []model.Review
	for _, r := range m.reviews {
		if r.PostingID == postingID {
			result = append(result, *r)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockReviewRepo) Stats(_ context.Context, postingID string) (float64, int64, error) {
	var sum, count int64
	for _, r := range m.reviews {
		if r.PostingID == postingID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// ── Mock FollowRepository ──

type mockFollowRepo struct {
	follows map[string]*model.Follow // key: follower:followed
}

func newMockFollowRepo() *mockFollowRepo {
	return &mockFollowRepo{follows: make(map[string]*model.Follow)}
}

func followKey(followerID, followedID string) string {
	return followerID + ":" + followedID
}

func (m *mockFollowRepo) Create(_ context.Context, follow *model.Follow) error {
	key := followKey(follow.FollowerID, follow.FollowedID)
	if _, ok := m.follows[key]; ok {
		return pkgerrors.ErrDuplicateKey
	}
	if follow.FollowID == "" {
		follow.FollowID = "follow-" + key
	}
	m.follows[key] = follow
	return nil
}

func (m *mockFollowRepo) Delete(_ context.Context, followerID, followedID string) error {
	delete(m.follows, followKey(followerID, followedID))
	return nil
}

func (m *mockFollowRepo) Get(_ context.Context, followerID, followedID string) (*model.Follow, error) {
	f, ok := m.follows[followKey(followerID, followedID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (m *mockFollowRepo) CountFollowers(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, f := range m.follows {
		if f.FollowedID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockFollowRepo) CountFollowing(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, f := range m.follows {
		if f.FollowerID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockFollowRepo) ListFollowerIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for _, f := range m.follows {
		if f.FollowedID == userID {
			ids = append(ids, f.FollowerID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ── Mock LeaderboardRepository ──

type mockLeaderboardRepo struct {
	entries map[string]*model.LeaderboardEntry
	reset   *model.LeaderboardReset
}

func newMockLeaderboardRepo() *mockLeaderboardRepo {
	return &mockLeaderboardRepo{
		entries: make(map[string]*model.LeaderboardEntry),
		reset:   &model.LeaderboardReset{ID: model.LeaderboardResetID},
	}
}

// 读取返回副本、写入仅在 Save 后可见，模拟真实数据库的可见性语义
func (m *mockLeaderboardRepo) GetForUpdate(_ context.Context, userID string) (*model.LeaderboardEntry, error) {
	if e, ok := m.entries[userID]; ok {
		cp := *e
		return &cp, nil
	}
	e := &model.LeaderboardEntry{UserID: userID, LastUpdated: time.Now()}
	m.entries[userID] = e
	cp := *e
	return &cp, nil
}

func (m *mockLeaderboardRepo) Get(_ context.Context, userID string) (*model.LeaderboardEntry, error) {
	e, ok := m.entries[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockLeaderboardRepo) Save(_ context.Context, entry *model.LeaderboardEntry) error {
	cp := *entry
	m.entries[entry.UserID] = &cp
	return nil
}

func (m *mockLeaderboardRepo) CountGreater(_ context.Context, userID string, points int) (int64, error) {
	var count int64
	for _, e := range m.entries {
		if e.UserID != userID && e.Points > points {
			count++
		}
	}
	return count, nil
}

func (m *mockLeaderboardRepo) ListTop(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	var all []model.LeaderboardEntry
	for _, e := range m.entries {
		if e.TotalPostings == 0 {
			continue
		}
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Points > all[j].Points })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockLeaderboardRepo) ZeroAll(_ context.Context, at time.Time) (int64, error) {
	var count int64
	for _, e := range m.entries {
		e.Points = 0
		e.TotalPostings = 0
		e.VerifiedPostings = 0
		e.LastNotifiedRank = nil
		e.LastUpdated = at
		count++
	}
	return count, nil
}

func (m *mockLeaderboardRepo) GetReset(_ context.Context) (*model.LeaderboardReset, error) {
	return m.reset, nil
}

func (m *mockLeaderboardRepo) StampReset(_ context.Context, at time.Time) error {
	m.reset.LastReset = &at
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.seq++
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) FindByKey(_ context.Context, userID, typ, message string) (*model.Notification, error) {
	for _, n := range m.notifications {
		if n.UserID == userID && n.Type == typ && n.Message == message {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) UpdateData(_ context.Context, notificationID string, data model.JSONMap) error {
	if n, ok := m.notifications[notificationID]; ok {
		n.Data = data
	}
	return nil
}

func (m *mockNotificationRepo) List(_ context.Context, userID string, req *dto.NotificationListRequest) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if req.Type != "" && n.Type != req.Type {
			continue
		}
		if req.UnreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, int64(len(result)), nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, userID, notificationID string) (int64, error) {
	n, ok := m.notifications[notificationID]
	if !ok || n.UserID != userID {
		return 0, nil
	}
	n.IsRead = true
	return 1, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) DeleteExpired(_ context.Context, userID string, readBefore time.Time) (int64, error) {
	var count int64
	for id, n := range m.notifications {
		if n.UserID == userID && n.IsRead && n.CreatedAt.Before(readBefore) {
			delete(m.notifications, id)
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) DeleteExpiredAll(_ context.Context, readBefore time.Time) (int64, error) {
	var count int64
	for id, n := range m.notifications {
		if n.IsRead && n.CreatedAt.Before(readBefore) {
			delete(m.notifications, id)
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) DeleteAllByUser(_ context.Context, userID string) (int64, error) {
	var count int64
	for id, n := range m.notifications {
		if n.UserID == userID {
			delete(m.notifications, id)
			count++
		}
	}
	return count, nil
}

// ── Mock BookmarkRepository ──

type mockBookmarkRepo struct {
	bookmarks map[string]*model.Bookmark // key: user:posting
}

func newMockBookmarkRepo() *mockBookmarkRepo {
	return &mockBookmarkRepo{bookmarks: make(map[string]*model.Bookmark)}
}

func (m *mockBookmarkRepo) Create(_ context.Context, bookmark *model.Bookmark) error {
	key := bookmark.UserID + ":" + bookmark.PostingID
	if _, ok := m.bookmarks[key]; ok {
		return pkgerrors.ErrDuplicateKey
	}
	if bookmark.BookmarkID == "" {
		bookmark.BookmarkID = "bookmark-" + key
	}
	m.bookmarks[key] = bookmark
	return nil
}

func (m *mockBookmarkRepo) Delete(_ context.Context, userID, postingID string) error {
	delete(m.bookmarks, userID+":"+postingID)
	return nil
}

func (m *mockBookmarkRepo) Get(_ context.Context, userID, postingID string) (*model.Bookmark, error) {
	b, ok := m.bookmarks[userID+":"+postingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (m *mockBookmarkRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]model.Bookmark, int64, error) {
	var result []model.Bookmark
	for _, b := range m.bookmarks {
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	return result, int64(len(result)), nil
}

// ── Mock MarketplaceRepository ──

type mockMarketplaceRepo struct {
	subs     map[string]*model.MarketplaceSubscription
	feedback []*model.MarketplaceFeedback
}

func newMockMarketplaceRepo() *mockMarketplaceRepo {
	return &mockMarketplaceRepo{subs: make(map[string]*model.MarketplaceSubscription)}
}

func (m *mockMarketplaceRepo) CreateSubscription(_ context.Context, sub *model.MarketplaceSubscription) error {
	if _, ok := m.subs[sub.Email]; ok {
		return pkgerrors.ErrDuplicateKey
	}
	m.subs[sub.Email] = sub
	return nil
}

func (m *mockMarketplaceRepo) GetSubscriptionByEmail(_ context.Context, email string) (*model.MarketplaceSubscription, error) {
	s, ok := m.subs[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (m *mockMarketplaceRepo) CountSubscriptions(_ context.Context) (int64, error) {
	return int64(len(m.subs)), nil
}

func (m *mockMarketplaceRepo) CreateFeedback(_ context.Context, fb *model.MarketplaceFeedback) error {
	m.feedback = append(m.feedback, fb)
	return nil
}

func (m *mockMarketplaceRepo) CountFeedback(_ context.Context) (int64, error) {
	return int64(len(m.feedback)), nil
}

// ── Mock OCR Engine ──

type mockOCREngine struct {
	text string
	err  error
}

func (m *mockOCREngine) ExtractText(_ []byte) (string, error) {
	return m.text, m.err
}

// [自证通过] internal/service/mock_repos_test.go
