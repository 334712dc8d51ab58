package services

import (
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/repositories"
	"streetbite_backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

// --- Custom Service Errors for the Catalog ---
var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category name already exists")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrValidation         = errors.New("validation error") // Generic validation error
)

// CatalogService manages categories and menu items. Customers only ever read available items.
type CatalogService interface {
	ListCategories() ([]models.Category, error)
	GetCategory(categoryID int64) (*models.Category, error)
	CreateCategory(name string) (*models.Category, error)
	RenameCategory(categoryID int64, name string) (*models.Category, error)
	DeleteCategory(categoryID int64) error

	ListItems() ([]models.MenuItem, error)
	ListAvailableItems(categoryID *int64) ([]models.MenuItem, error)
	GetItem(itemID int64) (*models.MenuItem, error)
	CreateItem(req models.CreateMenuItemPayload, image *multipart.FileHeader) (*models.MenuItem, error)
	UpdateItem(itemID int64, req models.UpdateMenuItemPayload, image *multipart.FileHeader) (*models.MenuItem, error)
	DeleteItem(itemID int64) error
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
	images      ImageStore
	db          *sql.DB
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(repo repositories.CatalogRepository, images ImageStore, db *sql.DB) CatalogService {
	return &catalogService{catalogRepo: repo, images: images, db: db}
}

// --- Categories ---

func (s *catalogService) ListCategories() ([]models.Category, error) {
	categories, err := s.catalogRepo.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) GetCategory(categoryID int64) (*models.Category, error) {
	category, err := s.catalogRepo.GetCategoryByID(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *catalogService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	category := &models.Category{Name: name}
	if _, err := s.catalogRepo.CreateCategory(s.db, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNameExists, name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *catalogService) RenameCategory(categoryID int64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	err := s.catalogRepo.UpdateCategory(s.db, &models.Category{ID: categoryID, Name: name})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: %s", ErrCategoryNameExists, name)
		}
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}
	return s.GetCategory(categoryID)
}

// DeleteCategory removes the category and every menu item in it in one transaction.
// Image files go after the commit; a failure there is only logged.
func (s *catalogService) DeleteCategory(categoryID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	images, err := s.catalogRepo.ImagePathsByCategory(tx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to collect item images: %w", err)
	}
	removed, err := s.catalogRepo.DeleteItemsByCategory(tx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category items: %w", err)
	}
	if err := s.catalogRepo.DeleteCategory(tx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category deletion: %w", err)
	}

	s.removeImages(images...)
	log.Info().Int64("category_id", categoryID).Int64("items_removed", removed).Msg("Category deleted")
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if len(name) > 64 {
		return fmt.Errorf("%w: category name must be at most 64 characters", ErrValidation)
	}
	return nil
}

// --- Menu items ---

func (s *catalogService) ListItems() ([]models.MenuItem, error) {
	items, err := s.catalogRepo.GetItems(models.MenuFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

func (s *catalogService) ListAvailableItems(categoryID *int64) ([]models.MenuItem, error) {
	items, err := s.catalogRepo.GetItems(models.MenuFilters{CategoryID: categoryID, AvailableOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	return items, nil
}

func (s *catalogService) GetItem(itemID int64) (*models.MenuItem, error) {
	item, err := s.catalogRepo.GetItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (s *catalogService) CreateItem(req models.CreateMenuItemPayload, image *multipart.FileHeader) (*models.MenuItem, error) {
	item := &models.MenuItem{
		Name:        strings.TrimSpace(req.Name),
		Description: trimmedOrNil(req.Description),
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsNonVeg != nil {
		item.IsNonVeg = *req.IsNonVeg
	}
	if err := s.validateItem(item); err != nil {
		return nil, err
	}

	if image != nil {
		ref, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		item.ImagePath = &ref
	}

	if _, err := s.catalogRepo.CreateItem(s.db, item); err != nil {
		if item.ImagePath != nil {
			s.removeImages(*item.ImagePath)
		}
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return s.GetItem(item.ID)
}

func (s *catalogService) UpdateItem(itemID int64, req models.UpdateMenuItemPayload, image *multipart.FileHeader) (*models.MenuItem, error) {
	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = trimmedOrNil(req.Description)
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsNonVeg != nil {
		item.IsNonVeg = *req.IsNonVeg
	}
	if err := s.validateItem(item); err != nil {
		return nil, err
	}

	oldImage := item.ImagePath
	var newImage *string
	switch {
	case image != nil:
		ref, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		newImage = &ref
		item.ImagePath = newImage
	case req.RemoveImage:
		item.ImagePath = nil
	}

	if err := s.catalogRepo.UpdateItem(s.db, item); err != nil {
		if newImage != nil {
			s.removeImages(*newImage)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	if oldImage != nil && (newImage != nil || req.RemoveImage) {
		s.removeImages(*oldImage)
	}
	return s.GetItem(itemID)
}

func (s *catalogService) DeleteItem(itemID int64) error {
	item, err := s.GetItem(itemID)
	if err != nil {
		return err
	}
	if err := s.catalogRepo.DeleteItem(s.db, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if item.ImagePath != nil {
		s.removeImages(*item.ImagePath)
	}
	return nil
}

func (s *catalogService) validateItem(item *models.MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", ErrValidation)
	}
	if len(item.Name) > 100 {
		return fmt.Errorf("%w: item name must be at most 100 characters", ErrValidation)
	}
	if !models.ValidAmount(item.Price) {
		return fmt.Errorf("%w: price must be a number between 0 and %.2f", ErrValidation, models.MaxAmount)
	}
	if _, err := s.catalogRepo.GetCategoryByID(item.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: id %d", ErrCategoryNotFound, item.CategoryID)
		}
		return fmt.Errorf("failed to check category: %w", err)
	}
	return nil
}

func (s *catalogService) removeImages(refs ...string) {
	for _, ref := range refs {
		if err := s.images.Delete(ref); err != nil {
			utils.LogWarn("Failed to delete image file", map[string]interface{}{"image": ref, "error": err.Error()})
		}
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.NewNullString(strings.TrimSpace(*s))
}
