package service

import (
	"errors"
	"sync"
	"time"

	"social-system/internal/model"

	"gorm.io/gorm"
)

// In-memory store fakes for the service tests. They mirror the repository
// contracts, including gorm's sentinel errors for missing rows and unique
// index violations.

type fakeUsers struct {
	users map[uint]*model.User
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{users: make(map[uint]*model.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByIDWithProfile(id uint) (*model.User, error) {
	return f.GetByID(id)
}

func (f *fakeUsers) ListByIDsWithProfile(ids []uint) ([]*model.User, error) {
	var out []*model.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakePosts struct {
	posts map[uint]*model.Post
}

func newFakePosts(posts ...*model.Post) *fakePosts {
	f := &fakePosts{posts: make(map[uint]*model.Post)}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakePosts) GetByID(id uint) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakeComments struct {
	nextID   uint
	comments map[uint]*model.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{nextID: 1, comments: make(map[uint]*model.Comment)}
}

func (f *fakeComments) Create(comment *model.Comment) error {
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	f.nextID++
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeComments) GetByID(id uint) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeComments) GetByIDWithAuthor(id uint) (*model.Comment, error) {
	return f.GetByID(id)
}

func (f *fakeComments) ListByPost(postID uint) ([]*model.Comment, error) {
	var out []*model.Comment
	for id := uint(1); id < f.nextID; id++ {
		if c, ok := f.comments[id]; ok && c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComments) Delete(id uint) error {
	if _, ok := f.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.comments, id)
	return nil
}

type likeKey struct {
	postID uint
	userID uint
}

type fakeLikes struct {
	nextID uint
	likes  map[likeKey]*model.Like
}

func newFakeLikes() *fakeLikes {
	return &fakeLikes{nextID: 1, likes: make(map[likeKey]*model.Like)}
}

func (f *fakeLikes) Create(like *model.Like) error {
	key := likeKey{postID: like.PostID, userID: like.UserID}
	if _, exists := f.likes[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	like.ID = f.nextID
	f.nextID++
	stored := *like
	f.likes[key] = &stored
	return nil
}

func (f *fakeLikes) GetByPostAndUser(postID, userID uint) (*model.Like, error) {
	l, ok := f.likes[likeKey{postID: postID, userID: userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (f *fakeLikes) Delete(id uint) error {
	for key, l := range f.likes {
		if l.ID == id {
			delete(f.likes, key)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeFriendships struct {
	nextID uint
	rows   map[uint]*model.Friendship
}

func newFakeFriendships() *fakeFriendships {
	return &fakeFriendships{nextID: 1, rows: make(map[uint]*model.Friendship)}
}

func (f *fakeFriendships) Create(friendship *model.Friendship) error {
	pairKey := model.FriendshipPairKey(friendship.UserID, friendship.FriendID)
	for _, row := range f.rows {
		if row.PairKey == pairKey {
			return gorm.ErrDuplicatedKey
		}
	}
	friendship.ID = f.nextID
	friendship.PairKey = pairKey
	friendship.CreatedAt = time.Now()
	f.nextID++
	stored := *friendship
	f.rows[friendship.ID] = &stored
	return nil
}

func (f *fakeFriendships) GetByID(id uint) (*model.Friendship, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeFriendships) FindByPair(a, b uint) (*model.Friendship, error) {
	pairKey := model.FriendshipPairKey(a, b)
	for _, row := range f.rows {
		if row.PairKey == pairKey {
			copied := *row
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFriendships) UpdateStatusIfPending(id uint, status string) (bool, error) {
	row, ok := f.rows[id]
	if !ok || row.Status != model.FriendshipPending {
		return false, nil
	}
	row.Status = status
	return true, nil
}

func (f *fakeFriendships) Reopen(id uint, requesterID, targetID uint) error {
	row, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.UserID = requesterID
	row.FriendID = targetID
	row.Status = model.FriendshipPending
	return nil
}

func (f *fakeFriendships) ListAcceptedByUser(userID uint) ([]*model.Friendship, error) {
	var out []*model.Friendship
	for _, row := range f.rows {
		if row.Status == model.FriendshipAccepted && (row.UserID == userID || row.FriendID == userID) {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeFriendships) ListPendingForUser(userID uint) ([]*model.Friendship, error) {
	var out []*model.Friendship
	for _, row := range f.rows {
		if row.Status == model.FriendshipPending && row.FriendID == userID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeNotifications struct {
	nextID    uint
	rows      map[uint]*model.Notification
	createErr error
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{nextID: 1, rows: make(map[uint]*model.Notification)}
}

func (f *fakeNotifications) Create(notification *model.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	notification.ID = f.nextID
	notification.CreatedAt = time.Now()
	f.nextID++
	stored := *notification
	f.rows[notification.ID] = &stored
	return nil
}

func (f *fakeNotifications) GetByID(id uint) (*model.Notification, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeNotifications) ListByReceiver(receiverID uint, limit, offset int) ([]*model.Notification, error) {
	var out []*model.Notification
	for id := f.nextID; id >= 1; id-- {
		if row, ok := f.rows[id]; ok && row.ReceiverID == receiverID {
			copied := *row
			out = append(out, &copied)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotifications) GetUnread(receiverID uint, limit int) ([]*model.Notification, error) {
	var out []*model.Notification
	for id := uint(1); id < f.nextID && len(out) < limit; id++ {
		if row, ok := f.rows[id]; ok && row.ReceiverID == receiverID && !row.IsRead {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeNotifications) CountUnread(receiverID uint) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.ReceiverID == receiverID && !row.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotifications) MarkRead(id uint) error {
	row, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.IsRead = true
	return nil
}

func (f *fakeNotifications) MarkAllRead(receiverID uint) error {
	for _, row := range f.rows {
		if row.ReceiverID == receiverID {
			row.IsRead = true
		}
	}
	return nil
}

type published struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
}

func (f *fakePublisher) Publish(channel string, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, published{channel: channel, payload: payload})
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

var errStoreDown = errors.New("store down")
