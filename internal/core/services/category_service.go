package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/easyledger/internal/core/domain"
	portsrepo "github.com/SscSPs/easyledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/easyledger/internal/core/ports/services"
	"github.com/SscSPs/easyledger/internal/dto"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{BaseService: newBaseService(), categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func validateCategory(req dto.CategoryRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", validationError("name is required")
	}
	if !req.Type.IsValid() {
		return "", validationError("type must be INCOME or EXPENSE")
	}
	return name, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CategoryRequest) (*domain.Category, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	name, err := validateCategory(req)
	if err != nil {
		return nil, err
	}

	category := domain.Category{CategoryID: uuid.NewString(), UserID: userID, Name: name, Type: req.Type}
	category.Touch(s.Now())
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", categoryID, err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string, params dto.ListCategoriesParams) ([]domain.Category, error) {
	if err := s.RequireUser(userID); err != nil {
		return nil, err
	}
	var filter *domain.CategoryType
	if params.Type != "" {
		t := domain.CategoryType(params.Type)
		if !t.IsValid() {
			return nil, validationError("type must be INCOME or EXPENSE")
		}
		filter = &t
	}
	categories, err := s.categoryRepo.ListCategories(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.CategoryRequest) (*domain.Category, error) {
	existing, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	name, err := validateCategory(req)
	if err != nil {
		return nil, err
	}
	existing.Name = name
	existing.Type = req.Type
	existing.LastUpdatedAt = s.Now()
	if err := s.categoryRepo.UpdateCategory(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", categoryID, err)
	}
	return existing, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if err := s.RequireUser(userID); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, userID, categoryID); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	return nil
}
