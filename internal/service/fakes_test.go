package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/repository"
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// 内存版仓储实现，测试不依赖 MySQL/Mongo/Redis

type fakeArticleRepo struct {
	mu       sync.Mutex
	articles map[uint64]*model.Article
}

func newFakeArticleRepo(articles ...*model.Article) *fakeArticleRepo {
	m := make(map[uint64]*model.Article)
	for _, a := range articles {
		m[a.ID] = a
	}
	return &fakeArticleRepo{articles: m}
}

func (f *fakeArticleRepo) GetArticle(_ context.Context, articleID uint64) (*model.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.articles[articleID]
	if !ok || a.IsDeleted {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArticleRepo) GetArticlesByIDs(_ context.Context, articleIDs []uint64) ([]*model.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*model.Article
	for _, id := range articleIDs {
		if a, ok := f.articles[id]; ok && !a.IsDeleted {
			cp := *a
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (f *fakeArticleRepo) IncrementViews(_ context.Context, articleID uint64) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.articles[articleID]
	before := a.Views
	a.Views++
	return before, a.Views, nil
}

func (f *fakeArticleRepo) UpdateLikesCount(_ context.Context, articleID uint64, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.articles[articleID]; ok {
		a.LikesCount = count
	}
	return nil
}

type likeKey struct {
	userID    uint64
	articleID uint64
}

type fakeActionRepo struct {
	mu            sync.Mutex
	likes         map[likeKey]time.Time
	comments      map[uint64]*model.Comment
	views         map[uint64]int64
	nextCommentID uint64
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{
		likes:    make(map[likeKey]time.Time),
		comments: make(map[uint64]*model.Comment),
		views:    make(map[uint64]int64),
	}
}

func (f *fakeActionRepo) CreateLike(_ context.Context, like *model.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := likeKey{like.UserID, like.ArticleID}
	if _, ok := f.likes[key]; ok {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	f.likes[key] = like.CreatedAt
	return nil
}

func (f *fakeActionRepo) DeleteLike(_ context.Context, userID, articleID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.likes, likeKey{userID, articleID})
	return nil
}

func (f *fakeActionRepo) CheckLikeExists(_ context.Context, userID, articleID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.likes[likeKey{userID, articleID}]
	return ok, nil
}

func (f *fakeActionRepo) GetLikeCountByArticleID(_ context.Context, articleID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for k := range f.likes {
		if k.articleID == articleID {
			count++
		}
	}
	return count, nil
}

func (f *fakeActionRepo) GetLikedArticleIDs(_ context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	type entry struct {
		id uint64
		at time.Time
	}
	var entries []entry
	for k, at := range f.likes {
		if k.userID == userID {
			entries = append(entries, entry{k.articleID, at})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })
	var ids []uint64
	for i, e := range entries {
		if i < offset {
			continue
		}
		if len(ids) >= limit {
			break
		}
		ids = append(ids, e.id)
	}
	return ids, nil
}

func (f *fakeActionRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextCommentID++
	comment.ID = f.nextCommentID
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakeActionRepo) DeleteComment(_ context.Context, commentID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.comments[commentID]; ok {
		c.IsDeleted = true
	}
	return nil
}

func (f *fakeActionRepo) GetCommentByID(_ context.Context, commentID uint64) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[commentID]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeActionRepo) GetCommentsByArticleID(_ context.Context, articleID uint64, limit, offset int) ([]*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*model.Comment
	for _, c := range f.comments {
		if c.ArticleID == articleID && !c.IsDeleted {
			cp := *c
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return nil, nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], nil
}

func (f *fakeActionRepo) GetCommentCountByArticleID(_ context.Context, articleID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, c := range f.comments {
		if c.ArticleID == articleID && !c.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeActionRepo) GetViewCountByArticleID(_ context.Context, articleID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.views[articleID], nil
}

type fakeUserRepo struct {
	users map[uint64]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	m := make(map[uint64]*model.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID uint64) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) GetUsersByIDs(_ context.Context, userIDs []uint64) ([]*model.User, error) {
	var res []*model.User
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

type followKey struct {
	followerID  uint64
	followingID uint64
}

type fakeFollowRepo struct {
	mu    sync.Mutex
	edges map[followKey]time.Time
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[followKey]time.Time)}
}

func (f *fakeFollowRepo) CreateFollow(_ context.Context, followerID, followingID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := followKey{followerID, followingID}
	if _, ok := f.edges[key]; ok {
		return false, nil
	}
	f.edges[key] = time.Now()
	return true, nil
}

func (f *fakeFollowRepo) DeleteFollow(_ context.Context, followerID, followingID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := followKey{followerID, followingID}
	if _, ok := f.edges[key]; !ok {
		return false, nil
	}
	delete(f.edges, key)
	return true, nil
}

func (f *fakeFollowRepo) CheckFollowExists(_ context.Context, followerID, followingID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.edges[followKey{followerID, followingID}]
	return ok, nil
}

func (f *fakeFollowRepo) GetFollowerCount(_ context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for k := range f.edges {
		if k.followingID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFollowRepo) GetFollowingCount(_ context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for k := range f.edges {
		if k.followerID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFollowRepo) GetFollowerEdges(_ context.Context, userID uint64, limit, offset int) ([]repository.FollowEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var edges []repository.FollowEdge
	for k, at := range f.edges {
		if k.followingID == userID {
			edges = append(edges, repository.FollowEdge{UserID: k.followerID, CreatedAt: at})
		}
	}
	return sliceEdges(edges, limit, offset), nil
}

func (f *fakeFollowRepo) GetFollowingEdges(_ context.Context, userID uint64, limit, offset int) ([]repository.FollowEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var edges []repository.FollowEdge
	for k, at := range f.edges {
		if k.followerID == userID {
			edges = append(edges, repository.FollowEdge{UserID: k.followingID, CreatedAt: at})
		}
	}
	return sliceEdges(edges, limit, offset), nil
}

func sliceEdges(edges []repository.FollowEdge, limit, offset int) []repository.FollowEdge {
	sort.Slice(edges, func(i, j int) bool { return edges[i].CreatedAt.After(edges[j].CreatedAt) })
	if offset >= len(edges) {
		return nil
	}
	end := offset + limit
	if end > len(edges) {
		end = len(edges)
	}
	return edges[offset:end]
}

func (f *fakeFollowRepo) GetRecommendedUsers(_ context.Context, userID uint64, limit int) ([]repository.RecommendedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[uint64]int64)
	followed := make(map[uint64]bool)
	for k := range f.edges {
		counts[k.followingID]++
		if k.followerID == userID {
			followed[k.followingID] = true
		}
	}
	var rows []repository.RecommendedUser
	for uid, c := range counts {
		if uid == userID || followed[uid] {
			continue
		}
		rows = append(rows, repository.RecommendedUser{UserID: uid, FollowersCount: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FollowersCount != rows[j].FollowersCount {
			return rows[i].FollowersCount > rows[j].FollowersCount
		}
		return rows[i].UserID < rows[j].UserID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// fakeNotifyRepo 内存版通知收件箱
type fakeNotifyRepo struct {
	mu   sync.Mutex
	msgs []*mongo.NotificationModel
}

func newFakeNotifyRepo() *fakeNotifyRepo {
	return &fakeNotifyRepo{}
}

func (f *fakeNotifyRepo) Create(_ context.Context, msg *mongo.NotificationModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	cp := *msg
	f.msgs = append(f.msgs, &cp)
	return nil
}

// sortedByTarget 按时间倒序，时间相同按 _id 倒序
func (f *fakeNotifyRepo) sortedByTarget(targetID uint64) []*mongo.NotificationModel {
	var list []*mongo.NotificationModel
	for _, m := range f.msgs {
		if m.TargetID == targetID {
			list = append(list, m)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return bytes.Compare(list[i].ID[:], list[j].ID[:]) > 0
	})
	return list
}

func (f *fakeNotifyRepo) List(_ context.Context, targetID uint64, limit, offset int64) ([]*mongo.NotificationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.sortedByTarget(targetID)
	if offset >= int64(len(list)) {
		return nil, nil
	}
	end := offset + limit
	if end > int64(len(list)) {
		end = int64(len(list))
	}
	return list[offset:end], nil
}

func (f *fakeNotifyRepo) MarkAsRead(_ context.Context, targetID uint64, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return mongodriver.ErrInvalidIndexValue
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.msgs {
		if m.ID == objectID && m.TargetID == targetID {
			m.IsRead = true
			return nil
		}
	}
	return mongodriver.ErrNoDocuments
}

func (f *fakeNotifyRepo) MarkAllAsRead(_ context.Context, targetID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.msgs {
		if m.TargetID == targetID {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotifyRepo) UnreadCount(_ context.Context, targetID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, m := range f.msgs {
		if m.TargetID == targetID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotifyRepo) CountByTarget(_ context.Context, targetID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, m := range f.msgs {
		if m.TargetID == targetID {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotifyRepo) NthRecentCreatedAt(_ context.Context, targetID uint64, n int64) (*mongo.NotificationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.sortedByTarget(targetID)
	if n <= 0 || n > int64(len(list)) {
		return nil, mongodriver.ErrNoDocuments
	}
	return list[n-1], nil
}

func (f *fakeNotifyRepo) DeleteOlderThan(_ context.Context, targetID uint64, cutoff *mongo.NotificationModel) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*mongo.NotificationModel
	var deleted int64
	for _, m := range f.msgs {
		older := m.TargetID == targetID &&
			(m.CreatedAt.Before(cutoff.CreatedAt) ||
				(m.CreatedAt.Equal(cutoff.CreatedAt) && bytes.Compare(m.ID[:], cutoff.ID[:]) < 0))
		if older {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	f.msgs = kept
	return deleted, nil
}

// fakeNotifySvc 记录调用的通知服务替身
type notifyCall struct {
	targetID   uint64
	actorID    uint64
	notifyType int8
	articleID  uint64
	content    string
}

type fakeNotifySvc struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (f *fakeNotifySvc) Notify(_ context.Context, targetID, actorID uint64, notifyType int8, articleID uint64, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{targetID, actorID, notifyType, articleID, content})
	return nil
}

func (f *fakeNotifySvc) GetNotifications(context.Context, uint64, int, int) ([]*dto.NotificationDTO, error) {
	return nil, nil
}

func (f *fakeNotifySvc) GetUnreadCount(context.Context, uint64) (int64, error) {
	return 0, nil
}

func (f *fakeNotifySvc) MarkAsRead(context.Context, uint64, string) error {
	return nil
}

func (f *fakeNotifySvc) MarkAllAsRead(context.Context, uint64) error {
	return nil
}

func (f *fakeNotifySvc) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
