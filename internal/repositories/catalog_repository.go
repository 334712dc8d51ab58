package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"streetbite_backend/internal/models"
)

// CatalogRepository defines the database operations for categories and menu items.
type CatalogRepository interface {
	// Category methods
	CreateCategory(executor SQLExecutor, category *models.Category) (int64, error)
	GetCategoryByID(id int64) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	UpdateCategory(executor SQLExecutor, category *models.Category) error
	DeleteCategory(executor SQLExecutor, id int64) error

	// MenuItem methods
	CreateItem(executor SQLExecutor, item *models.MenuItem) (int64, error)
	GetItemByID(id int64) (*models.MenuItem, error)
	GetItems(filters models.MenuFilters) ([]models.MenuItem, error)
	UpdateItem(executor SQLExecutor, item *models.MenuItem) error
	DeleteItem(executor SQLExecutor, id int64) error
	ImagePathsByCategory(executor SQLExecutor, categoryID int64) ([]string, error)
	DeleteItemsByCategory(executor SQLExecutor, categoryID int64) (int64, error)
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// --- Category Methods ---

func (r *catalogRepository) CreateCategory(executor SQLExecutor, category *models.Category) (int64, error) {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO categories (name, created_at) VALUES ($1, $2) RETURNING id`
	if err := executor.QueryRow(query, category.Name, category.CreatedAt).Scan(&category.ID); err != nil {
		return 0, wrapDBError("creating category", err)
	}
	return category.ID, nil
}

func (r *catalogRepository) GetCategoryByID(id int64) (*models.Category, error) {
	category := &models.Category{}
	query := `SELECT id, name, created_at FROM categories WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting category by ID %d: %v", ErrDatabaseError, id, err)
	}
	return category, nil
}

func (r *catalogRepository) GetCategories() ([]models.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, created_at FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating categories: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *catalogRepository) UpdateCategory(executor SQLExecutor, category *models.Category) error {
	result, err := executor.Exec(`UPDATE categories SET name = $1 WHERE id = $2`, category.Name, category.ID)
	if err != nil {
		return wrapDBError(fmt.Sprintf("updating category ID %d", category.ID), err)
	}
	return requireAffected(result, "updating category")
}

// DeleteCategory removes only the category row; callers delete its items first in the same transaction.
func (r *catalogRepository) DeleteCategory(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting category ID %d: %v", ErrDatabaseError, id, err)
	}
	return requireAffected(result, "deleting category")
}

// --- MenuItem Methods ---

const menuItemColumns = `mi.id, mi.name, mi.description, mi.price, mi.category_id, c.name,
	mi.is_available, mi.is_non_veg, mi.image_path, mi.created_at, mi.updated_at`

func scanMenuItem(s scanner, item *models.MenuItem) error {
	return s.Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.CategoryID, &item.CategoryName,
		&item.IsAvailable, &item.IsNonVeg, &item.ImagePath, &item.CreatedAt, &item.UpdatedAt,
	)
}

func (r *catalogRepository) CreateItem(executor SQLExecutor, item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu_items
	          (name, description, price, category_id, is_available, is_non_veg, image_path, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	currentTime := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = currentTime, currentTime

	err := executor.QueryRow(query,
		item.Name, item.Description, item.Price, item.CategoryID, item.IsAvailable, item.IsNonVeg, item.ImagePath,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return 0, wrapDBError("creating menu item", err)
	}
	return item.ID, nil
}

func (r *catalogRepository) GetItemByID(id int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `SELECT ` + menuItemColumns + `
	          FROM menu_items mi
	          JOIN categories c ON mi.category_id = c.id
	          WHERE mi.id = $1`
	if err := scanMenuItem(r.db.QueryRow(query, id), item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *catalogRepository) GetItems(filters models.MenuFilters) ([]models.MenuItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + menuItemColumns + `
	    FROM menu_items mi
	    JOIN categories c ON mi.category_id = c.id`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.AvailableOnly {
		conditions = append(conditions, "mi.is_available = TRUE")
	}
	if filters.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("mi.category_id = $%d", argCounter))
		args = append(args, *filters.CategoryID)
		argCounter++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY c.name, mi.name, mi.id")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := scanMenuItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *catalogRepository) UpdateItem(executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu_items
	          SET name = $1, description = $2, price = $3, category_id = $4,
	              is_available = $5, is_non_veg = $6, image_path = $7, updated_at = $8
	          WHERE id = $9`
	item.UpdatedAt = time.Now().UTC()
	result, err := executor.Exec(query,
		item.Name, item.Description, item.Price, item.CategoryID,
		item.IsAvailable, item.IsNonVeg, item.ImagePath, item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return wrapDBError(fmt.Sprintf("updating menu item ID %d", item.ID), err)
	}
	return requireAffected(result, "updating menu item")
}

func (r *catalogRepository) DeleteItem(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting menu item ID %d: %v", ErrDatabaseError, id, err)
	}
	return requireAffected(result, "deleting menu item")
}

func (r *catalogRepository) ImagePathsByCategory(executor SQLExecutor, categoryID int64) ([]string, error) {
	rows, err := executor.Query(`SELECT image_path FROM menu_items WHERE category_id = $1 AND image_path IS NOT NULL`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying image paths for category %d: %v", ErrDatabaseError, categoryID, err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("%w: scanning image path: %v", ErrDatabaseError, err)
		}
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, rows.Err()
}

func (r *catalogRepository) DeleteItemsByCategory(executor SQLExecutor, categoryID int64) (int64, error) {
	result, err := executor.Exec(`DELETE FROM menu_items WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting menu items of category %d: %v", ErrDatabaseError, categoryID, err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
