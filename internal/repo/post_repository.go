package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/YashRana52/INSTRAGRAM/internal/db"
	"github.com/YashRana52/INSTRAGRAM/internal/model"
)

type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) (*model.Post, error)
	GetPost(ctx context.Context, postID string) (*model.Post, error)
	GetAllPosts(ctx context.Context) ([]model.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID string) ([]model.Post, error)
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	InsertComment(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetComments(ctx context.Context, postID string) ([]model.Comment, error)
	GetCommentsForPosts(ctx context.Context, postIDs []primitive.ObjectID) ([]model.Comment, error)
	DeletePost(ctx context.Context, postID string) error
}

type postRepository struct {
	posts    *db.Repository[model.Post]
	comments *db.Repository[model.Comment]
	logger   *zap.Logger
}

func NewPostRepository(posts *db.Repository[model.Post], comments *db.Repository[model.Comment], logger *zap.Logger) PostRepository {
	return &postRepository{
		posts:    posts,
		comments: comments,
		logger:   logger,
	}
}

func (r *postRepository) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	if post == nil {
		return nil, ErrInvalidPostID
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.posts.Create(ctx, *post)
	if err != nil {
		r.logger.Error("failed to insert post", zap.String("author_id", post.AuthorID), zap.Error(err))
		return nil, fmt.Errorf("insert post failed: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}

	r.logger.Info("post created",
		zap.String("post_id", post.ID.Hex()),
		zap.String("author_id", post.AuthorID),
	)
	return post, nil
}

// GetPost returns the post, or nil when it does not exist.
func (r *postRepository) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	if postID == "" {
		return nil, ErrInvalidPostID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	post, err := r.posts.FindByID(ctx, postID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return post, nil
}

func (r *postRepository) GetAllPosts(ctx context.Context) ([]model.Post, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	posts, err := r.posts.FindAllSorted(ctx, db.Empty(), "created_at", true)
	if err != nil {
		r.logger.Error("failed to query posts", zap.Error(err))
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) GetPostsByAuthor(ctx context.Context, authorID string) ([]model.Post, error) {
	if authorID == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("author_id", authorID).Build()
	posts, err := r.posts.FindAllSorted(ctx, filter, "created_at", true)
	if err != nil {
		r.logger.Error("failed to query author posts", zap.String("author_id", authorID), zap.Error(err))
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID string) error {
	return r.updateLikes(ctx, postID, userID, true)
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return r.updateLikes(ctx, postID, userID, false)
}

func (r *postRepository) updateLikes(ctx context.Context, postID, userID string, add bool) error {
	if postID == "" {
		return ErrInvalidPostID
	}
	if userID == "" {
		return ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.NewFilter().ObjectID("_id", postID).Build()

	var err error
	if add {
		_, err = r.posts.AddToSet(ctx, filter, "likes", userID)
	} else {
		_, err = r.posts.Pull(ctx, filter, "likes", userID)
	}
	if err != nil {
		r.logger.Error("failed to update likes",
			zap.String("post_id", postID),
			zap.String("user_id", userID),
			zap.Bool("add", add),
			zap.Error(err),
		)
		return fmt.Errorf("update likes failed: %w", err)
	}
	return nil
}

func (r *postRepository) InsertComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.comments.Create(ctx, *comment)
	if err != nil {
		r.logger.Error("failed to insert comment",
			zap.String("post_id", comment.PostID.Hex()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("insert comment failed: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}

	// record the comment ref on the post
	postFilter := db.NewFilter().Eq("_id", comment.PostID).Build()
	if _, err := r.posts.Push(ctx, postFilter, "comments", comment.ID); err != nil {
		r.logger.Error("failed to append comment to post",
			zap.String("post_id", comment.PostID.Hex()),
			zap.String("comment_id", comment.ID.Hex()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("append comment failed: %w", err)
	}

	return comment, nil
}

func (r *postRepository) GetComments(ctx context.Context, postID string) ([]model.Comment, error) {
	if postID == "" {
		return nil, ErrInvalidPostID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().ObjectID("post_id", postID).Build()
	comments, err := r.comments.FindAllSorted(ctx, filter, "created_at", false)
	if err != nil {
		r.logger.Error("failed to query comments", zap.String("post_id", postID), zap.Error(err))
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	return comments, nil
}

// GetCommentsForPosts returns the comments of every listed post in a
// single query, oldest first.
func (r *postRepository) GetCommentsForPosts(ctx context.Context, postIDs []primitive.ObjectID) ([]model.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().In("post_id", postIDs).Build()
	comments, err := r.comments.FindAllSorted(ctx, filter, "created_at", false)
	if err != nil {
		r.logger.Error("failed to query comments for posts", zap.Int("posts", len(postIDs)), zap.Error(err))
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	return comments, nil
}

// DeletePost removes the post and all of its comments.
func (r *postRepository) DeletePost(ctx context.Context, postID string) error {
	if postID == "" {
		return ErrInvalidPostID
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	if _, err := r.posts.DeleteByID(ctx, postID); err != nil {
		r.logger.Error("failed to delete post", zap.String("post_id", postID), zap.Error(err))
		return fmt.Errorf("delete post failed: %w", err)
	}

	commentFilter := db.NewFilter().ObjectID("post_id", postID).Build()
	if _, err := r.comments.DeleteMany(ctx, commentFilter); err != nil {
		r.logger.Error("failed to delete post comments", zap.String("post_id", postID), zap.Error(err))
		return fmt.Errorf("delete post comments failed: %w", err)
	}

	return nil
}
