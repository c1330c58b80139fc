package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YashRana52/INSTRAGRAM/internal/db"
	"github.com/YashRana52/INSTRAGRAM/internal/model"
)

// In-memory fakes standing in for the Mongo-backed repositories and the
// websocket hub.

type sentNotification struct {
	UserID       string
	Notification model.Notification
}

type sentMessage struct {
	UserID  string
	Message model.Message
}

type fakeNotifier struct {
	mu            sync.Mutex
	online        map[string]bool
	notifications []sentNotification
	messages      []sentMessage
}

func newFakeNotifier(onlineUsers ...string) *fakeNotifier {
	online := make(map[string]bool, len(onlineUsers))
	for _, u := range onlineUsers {
		online[u] = true
	}
	return &fakeNotifier{online: online}
}

func (f *fakeNotifier) IsOnline(userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online[userID]
}

func (f *fakeNotifier) NotifyUser(userID string, n model.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.online[userID] {
		return
	}
	f.notifications = append(f.notifications, sentNotification{UserID: userID, Notification: n})
}

func (f *fakeNotifier) DeliverMessage(userID string, msg model.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.online[userID] {
		return
	}
	f.messages = append(f.messages, sentMessage{UserID: userID, Message: msg})
}

// --- message repository ---

type fakeMessageRepo struct {
	conversations map[string]*model.Conversation
	messages      []model.Message
	insertErr     error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		conversations: make(map[string]*model.Conversation),
	}
}

func pairKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, "|")
}

func (f *fakeMessageRepo) FindOrCreateConversation(_ context.Context, userA, userB string) (*model.Conversation, error) {
	key := pairKey(userA, userB)
	if conv, ok := f.conversations[key]; ok {
		return conv, nil
	}

	pair := []string{userA, userB}
	sort.Strings(pair)
	conv := &model.Conversation{
		ID:           primitive.NewObjectID(),
		Participants: pair,
		Messages:     []primitive.ObjectID{},
		CreatedAt:    time.Now().UTC(),
	}
	f.conversations[key] = conv
	return conv, nil
}

func (f *fakeMessageRepo) GetConversation(_ context.Context, userA, userB string) (*model.Conversation, error) {
	return f.conversations[pairKey(userA, userB)], nil
}

func (f *fakeMessageRepo) InsertMessage(_ context.Context, msg *model.Message) (*model.Message, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	msg.ID = primitive.NewObjectID()
	f.messages = append(f.messages, *msg)
	return msg, nil
}

func (f *fakeMessageRepo) AppendToConversation(_ context.Context, conversationID, messageID primitive.ObjectID, at time.Time) error {
	for _, conv := range f.conversations {
		if conv.ID == conversationID {
			conv.Messages = append(conv.Messages, messageID)
			conv.LastMessageAt = at
			return nil
		}
	}
	return errors.New("conversation not found")
}

func (f *fakeMessageRepo) GetConversationMessages(_ context.Context, userA, userB string, page int64) (*db.PaginatedResult[model.Message], error) {
	var data []model.Message
	for _, m := range f.messages {
		if pairKey(m.SenderID, m.ReceiverID) == pairKey(userA, userB) {
			data = append(data, m)
		}
	}
	return &db.PaginatedResult[model.Message]{
		Data:  data,
		Total: int64(len(data)),
		Page:  page,
	}, nil
}

// --- user repository ---

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		f.users[u.ID.Hex()] = u
	}
	return f
}

func newTestUser(username string) *model.User {
	return &model.User{
		ID:             primitive.NewObjectID(),
		Username:       username,
		ProfilePicture: "https://cdn.example.com/" + username + ".jpg",
	}
}

func (f *fakeUserRepo) GetUser(_ context.Context, userID string) (*model.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserRepo) GetUsersExcept(_ context.Context, userID string) ([]model.User, error) {
	var out []model.User
	for id, u := range f.users {
		if id != userID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetUsersByIDs(_ context.Context, userIDs []string) ([]model.User, error) {
	var out []model.User
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, userID, bio, profilePicture string) error {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	if bio != "" {
		u.Bio = bio
	}
	if profilePicture != "" {
		u.ProfilePicture = profilePicture
	}
	return nil
}

func (f *fakeUserRepo) AppendPost(_ context.Context, userID string, postID primitive.ObjectID) error {
	if u, ok := f.users[userID]; ok {
		u.Posts = append(u.Posts, postID)
	}
	return nil
}

func (f *fakeUserRepo) RemovePostRef(_ context.Context, userID string, postID primitive.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	u.Posts = removeID(u.Posts, postID)
	return nil
}

func (f *fakeUserRepo) AddBookmark(_ context.Context, userID string, postID primitive.ObjectID) error {
	if u, ok := f.users[userID]; ok && !u.HasBookmarked(postID) {
		u.Bookmarks = append(u.Bookmarks, postID)
	}
	return nil
}

func (f *fakeUserRepo) RemoveBookmark(_ context.Context, userID string, postID primitive.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	u.Bookmarks = removeID(u.Bookmarks, postID)
	return nil
}

func (f *fakeUserRepo) Follow(_ context.Context, actorID, targetID string) error {
	if target, ok := f.users[targetID]; ok {
		target.Followers = appendUnique(target.Followers, actorID)
	}
	if actor, ok := f.users[actorID]; ok {
		actor.Following = appendUnique(actor.Following, targetID)
	}
	return nil
}

func (f *fakeUserRepo) Unfollow(_ context.Context, actorID, targetID string) error {
	if target, ok := f.users[targetID]; ok {
		target.Followers = removeString(target.Followers, actorID)
	}
	if actor, ok := f.users[actorID]; ok {
		actor.Following = removeString(actor.Following, targetID)
	}
	return nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func removeString(values []string, v string) []string {
	out := values[:0]
	for _, s := range values {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func appendUnique(values []string, v string) []string {
	for _, s := range values {
		if s == v {
			return values
		}
	}
	return append(values, v)
}

// --- post repository ---

type fakePostRepo struct {
	posts    map[string]*model.Post
	comments []model.Comment
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	f := &fakePostRepo{posts: make(map[string]*model.Post)}
	for _, p := range posts {
		f.posts[p.ID.Hex()] = p
	}
	return f
}

func newTestPost(authorID string) *model.Post {
	return &model.Post{
		ID:       primitive.NewObjectID(),
		Caption:  "sunset",
		ImageURL: "https://cdn.example.com/sunset.jpg",
		AuthorID: authorID,
		Likes:    []string{},
	}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *model.Post) (*model.Post, error) {
	post.ID = primitive.NewObjectID()
	f.posts[post.ID.Hex()] = post
	return post, nil
}

func (f *fakePostRepo) GetPost(_ context.Context, postID string) (*model.Post, error) {
	return f.posts[postID], nil
}

func (f *fakePostRepo) GetAllPosts(_ context.Context) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePostRepo) GetPostsByAuthor(_ context.Context, authorID string) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) AddLike(_ context.Context, postID, userID string) error {
	if p, ok := f.posts[postID]; ok {
		p.Likes = appendUnique(p.Likes, userID)
	}
	return nil
}

func (f *fakePostRepo) RemoveLike(_ context.Context, postID, userID string) error {
	if p, ok := f.posts[postID]; ok {
		p.Likes = removeString(p.Likes, userID)
	}
	return nil
}

func (f *fakePostRepo) InsertComment(_ context.Context, comment *model.Comment) (*model.Comment, error) {
	comment.ID = primitive.NewObjectID()
	f.comments = append(f.comments, *comment)
	if p, ok := f.posts[comment.PostID.Hex()]; ok {
		p.Comments = append(p.Comments, comment.ID)
	}
	return comment, nil
}

func (f *fakePostRepo) GetComments(_ context.Context, postID string) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range f.comments {
		if c.PostID.Hex() == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetCommentsForPosts(_ context.Context, postIDs []primitive.ObjectID) ([]model.Comment, error) {
	want := make(map[primitive.ObjectID]bool, len(postIDs))
	for _, id := range postIDs {
		want[id] = true
	}
	var out []model.Comment
	for _, c := range f.comments {
		if want[c.PostID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, postID string) error {
	delete(f.posts, postID)
	kept := f.comments[:0]
	for _, c := range f.comments {
		if c.PostID.Hex() != postID {
			kept = append(kept, c)
		}
	}
	f.comments = kept
	return nil
}
