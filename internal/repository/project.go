package repository

import (
	"context"
	"fmt"

	"github.com/sujalbistaa/folio/internal/models"
)

// ListProjects returns every project, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Order("date_created desc, id desc").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	if project.DateCreated.IsZero() {
		project.DateCreated = s.now()
	}
	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return notFound(err)
	}
	if err := s.db.WithContext(ctx).Delete(&project).Error; err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	return nil
}
