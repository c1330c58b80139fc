package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/YashRana52/INSTRAGRAM/internal/model"
	"github.com/YashRana52/INSTRAGRAM/internal/repo"
)

// BookmarkState reports the outcome of a bookmark toggle.
type BookmarkState string

const (
	BookmarkSaved   BookmarkState = "saved"
	BookmarkUnsaved BookmarkState = "unsaved"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID, caption, imageURL string) (*model.Post, error)
	GetFeed(ctx context.Context) ([]model.PostView, error)
	GetUserPosts(ctx context.Context, authorID string) ([]model.PostView, error)
	LikePost(ctx context.Context, userID, postID string) error
	DislikePost(ctx context.Context, userID, postID string) error
	AddComment(ctx context.Context, userID, postID, text string) (*model.Comment, error)
	GetComments(ctx context.Context, postID string) ([]model.Comment, error)
	DeletePost(ctx context.Context, userID, postID string) error
	BookmarkPost(ctx context.Context, userID, postID string) (BookmarkState, error)
}

type postService struct {
	posts    repo.PostRepository
	users    repo.UserRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewPostService(posts repo.PostRepository, users repo.UserRepository, notifier Notifier, logger *zap.Logger) PostService {
	return &postService{
		posts:    posts,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// CreatePost stores a new post. The image must already be hosted; upload
// and resizing happen upstream.
func (s *postService) CreatePost(ctx context.Context, authorID, caption, imageURL string) (*model.Post, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, ErrImageRequired
	}

	post := &model.Post{
		Caption:   caption,
		ImageURL:  imageURL,
		AuthorID:  authorID,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}

	post, err := s.posts.CreatePost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.users.AppendPost(ctx, authorID, post.ID); err != nil {
		// the post exists; a dangling user ref is repairable, so log only
		s.logger.Warn("failed to append post to author",
			zap.String("author_id", authorID),
			zap.String("post_id", post.ID.Hex()),
			zap.Error(err),
		)
	}

	return post, nil
}

// GetFeed returns every post, newest first, with the author and each
// comment's author resolved so the client renders in one round trip.
func (s *postService) GetFeed(ctx context.Context) ([]model.PostView, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, posts)
}

func (s *postService) GetUserPosts(ctx context.Context, authorID string) ([]model.PostView, error) {
	posts, err := s.posts.GetPostsByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, posts)
}

// populate resolves post and comment authors with two batched queries and
// assembles the view objects. A missing author leaves the field nil
// rather than dropping the post.
func (s *postService) populate(ctx context.Context, posts []model.Post) ([]model.PostView, error) {
	if len(posts) == 0 {
		return []model.PostView{}, nil
	}

	postIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	comments, err := s.posts.GetCommentsForPosts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("populate feed: %w", err)
	}

	seen := make(map[string]bool, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}

	users, err := s.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("populate feed: %w", err)
	}

	authors := make(map[string]*model.AuthorSummary, len(users))
	for i := range users {
		u := users[i]
		authors[u.ID.Hex()] = &model.AuthorSummary{
			ID:             u.ID,
			Username:       u.Username,
			ProfilePicture: u.ProfilePicture,
		}
	}

	commentsByPost := make(map[primitive.ObjectID][]model.CommentView, len(posts))
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], model.CommentView{
			Comment: c,
			Author:  authors[c.AuthorID],
		})
	}

	views := make([]model.PostView, 0, len(posts))
	for _, p := range posts {
		cs := commentsByPost[p.ID]
		if cs == nil {
			cs = []model.CommentView{}
		}
		views = append(views, model.PostView{
			Post:     p,
			Author:   authors[p.AuthorID],
			Comments: cs,
		})
	}
	return views, nil
}

func (s *postService) LikePost(ctx context.Context, userID, postID string) error {
	return s.updateLike(ctx, userID, postID, true)
}

func (s *postService) DislikePost(ctx context.Context, userID, postID string) error {
	return s.updateLike(ctx, userID, postID, false)
}

func (s *postService) updateLike(ctx context.Context, userID, postID string, like bool) error {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("update like: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}

	if like {
		err = s.posts.AddLike(ctx, postID, userID)
	} else {
		err = s.posts.RemoveLike(ctx, postID, userID)
	}
	if err != nil {
		return fmt.Errorf("update like: %w", err)
	}

	// self-likes produce no notification
	if post.AuthorID != userID {
		s.notifyLike(ctx, userID, post.AuthorID, postID, like)
	}

	return nil
}

func (s *postService) notifyLike(ctx context.Context, actorID, ownerID, postID string, like bool) {
	actor, err := s.users.GetUser(ctx, actorID)
	if err != nil || actor == nil {
		s.logger.Warn("skipping like notification, actor lookup failed",
			zap.String("actor_id", actorID),
			zap.Error(err),
		)
		return
	}

	kind := model.NotificationLike
	action := model.ActionAdd
	humanMessage := fmt.Sprintf("Your post was liked by %s", actor.Username)
	if !like {
		kind = model.NotificationDislike
		action = model.ActionRemove
		humanMessage = fmt.Sprintf("Your post was disliked by %s", actor.Username)
	}

	s.notifier.NotifyUser(ownerID, model.Notification{
		Kind:    kind,
		Action:  action,
		ActorID: actorID,
		ActorDetails: &model.ActorDetails{
			Username:       actor.Username,
			ProfilePicture: actor.ProfilePicture,
		},
		PostID:    postID,
		Message:   humanMessage,
		Timestamp: time.Now().Unix(),
	})
}

func (s *postService) AddComment(ctx context.Context, userID, postID, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		Text:      text,
		AuthorID:  userID,
		PostID:    post.ID,
		CreatedAt: time.Now().UTC(),
	}

	comment, err = s.posts.InsertComment(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

func (s *postService) GetComments(ctx context.Context, postID string) ([]model.Comment, error) {
	return s.posts.GetComments(ctx, postID)
}

// DeletePost removes a post, its comments, and the author's reference.
// Only the author may delete.
func (s *postService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID {
		return ErrNotPostAuthor
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if err := s.users.RemovePostRef(ctx, userID, post.ID); err != nil {
		s.logger.Warn("failed to remove post ref from author",
			zap.String("author_id", userID),
			zap.String("post_id", postID),
			zap.Error(err),
		)
	}

	return nil
}

// BookmarkPost toggles the post in the user's bookmarks.
func (s *postService) BookmarkPost(ctx context.Context, userID, postID string) (BookmarkState, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return "", fmt.Errorf("bookmark post: %w", err)
	}
	if post == nil {
		return "", ErrPostNotFound
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("bookmark post: %w", err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	if user.HasBookmarked(post.ID) {
		if err := s.users.RemoveBookmark(ctx, userID, post.ID); err != nil {
			return "", fmt.Errorf("bookmark post: %w", err)
		}
		return BookmarkUnsaved, nil
	}

	if err := s.users.AddBookmark(ctx, userID, post.ID); err != nil {
		return "", fmt.Errorf("bookmark post: %w", err)
	}
	return BookmarkSaved, nil
}
