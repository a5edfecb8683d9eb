package repository

import (
	"context"
	"fmt"

	"github.com/sujalbistaa/folio/internal/models"
)

// CreateComment attaches a comment to an existing post.
func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.DatePosted.IsZero() {
		comment.DatePosted = s.now()
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// CommentsForPost returns the comments on a post, oldest first.
func (s *Store) CommentsForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("date_posted asc, id asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

// RecentComments returns the newest comments across all posts, for moderation.
func (s *Store) RecentComments(ctx context.Context, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.WithContext(ctx).Order("date_posted desc, id desc").Limit(limit).Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list recent comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes one comment.
func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return notFound(err)
	}
	if err := s.db.WithContext(ctx).Delete(&comment).Error; err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return nil
}
