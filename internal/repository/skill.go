package repository

import (
	"context"
	"fmt"

	"github.com/sujalbistaa/folio/internal/models"
)

// ListSkills returns every skill grouped by category, in insertion order within a category.
func (s *Store) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := s.db.WithContext(ctx).Order("category asc, id asc").Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

func (s *Store) CreateSkill(ctx context.Context, skill *models.Skill) error {
	if err := s.db.WithContext(ctx).Create(skill).Error; err != nil {
		return fmt.Errorf("create skill: %w", err)
	}
	return nil
}

func (s *Store) DeleteSkill(ctx context.Context, id uint) error {
	var skill models.Skill
	if err := s.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		return notFound(err)
	}
	if err := s.db.WithContext(ctx).Delete(&skill).Error; err != nil {
		return fmt.Errorf("delete skill %d: %w", id, err)
	}
	return nil
}
