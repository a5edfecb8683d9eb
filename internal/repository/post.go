package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sujalbistaa/folio/internal/models"
)

const newestPosts = "date_posted desc, id desc"

// LatestPosts returns at most limit posts, newest first.
func (s *Store) LatestPosts(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Order(newestPosts).Limit(limit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list latest posts: %w", err)
	}
	return posts, nil
}

// ListPosts returns every post, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Order(newestPosts).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost loads a post with its comments, oldest comment first.
func (s *Store) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("date_posted asc, id asc") }).
		First(&post, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// CreatePost stamps DatePosted when unset and inserts the post.
func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	if post.DatePosted.IsZero() {
		post.DatePosted = s.now()
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// DeletePost removes a post and every comment on it in one transaction.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of post %d: %w", post.ID, err)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return fmt.Errorf("delete post %d: %w", post.ID, err)
		}
		return nil
	})
}
