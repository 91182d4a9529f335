package service

import (
	"context"
	"fmt"

	"github.com/printlab/printerm/internal/entity"
	"github.com/printlab/printerm/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	repo *repository.UserRepository
	db   *gorm.DB
}

func NewUserService(repo *repository.UserRepository, db *gorm.DB) *UserService {
	return &UserService{repo: repo, db: db}
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint) (*entity.User, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
}

func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*entity.User, error) {
	user := &entity.User{Name: req.Name, Email: req.Email}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
}

func (s *UserService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = req.Name
	user.Email = req.Email
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete cascades through the user's projects and plates, returning plate
// grams to their materials before anything is removed.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projectIDs []uint
		if err := tx.Model(&entity.Project{}).Where("user_id = ?", id).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}
		for _, projectID := range projectIDs {
			if err := restoreProjectMaterials(tx, projectID); err != nil {
				return fmt.Errorf("restore materials: %w", err)
			}
			if err := tx.Where("project_id = ?", projectID).Delete(&entity.Plate{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.Project{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.User{}, id).Error
	})
}
