package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fastfoodbot/internal/models"
)

const categoryColumns = `id, name_uz, name_ru, description_uz, description_ru, photo_url, is_active, sort_order, created_at, updated_at`

func scanCategory(row interface{ Scan(...interface{}) error }) (*models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID, &c.NameUz, &c.NameRu, &c.DescriptionUz, &c.DescriptionRu,
		&c.PhotoURL, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *DB) CreateCategory(ctx context.Context, c *models.Category) error {
	query := `INSERT INTO categories (name_uz, name_ru, description_uz, description_ru, photo_url, is_active, sort_order, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		c.NameUz, c.NameRu, c.DescriptionUz, c.DescriptionRu, c.PhotoURL, c.IsActive, c.SortOrder, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (db *DB) UpdateCategory(ctx context.Context, c *models.Category) error {
	query := `UPDATE categories SET name_uz = ?, name_ru = ?, description_uz = ?, description_ru = ?,
	                 photo_url = ?, is_active = ?, sort_order = ?, updated_at = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		c.NameUz, c.NameRu, c.DescriptionUz, c.DescriptionRu, c.PhotoURL, c.IsActive, c.SortOrder, time.Now(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteCategory(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	return scanCategory(db.QueryRowContext(ctx, query, id))
}

func (db *DB) ListCategories(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY sort_order ASC, id ASC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const productColumns = `id, category_id, name_uz, name_ru, description_uz, description_ru, price, photo_url, is_available, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.NameUz, &p.NameRu, &p.DescriptionUz, &p.DescriptionRu,
		&p.Price, &p.PhotoURL, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products (category_id, name_uz, name_ru, description_uz, description_ru, price, photo_url, is_available, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		p.CategoryID, p.NameUz, p.NameRu, p.DescriptionUz, p.DescriptionRu, p.Price, p.PhotoURL, p.IsAvailable, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (db *DB) UpdateProduct(ctx context.Context, p *models.Product) error {
	query := `UPDATE products SET category_id = ?, name_uz = ?, name_ru = ?, description_uz = ?, description_ru = ?,
	                 price = ?, photo_url = ?, is_available = ?, updated_at = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		p.CategoryID, p.NameUz, p.NameRu, p.DescriptionUz, p.DescriptionRu, p.Price, p.PhotoURL, p.IsAvailable, time.Now(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteProduct(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	return scanProduct(db.QueryRowContext(ctx, query, id))
}

func (db *DB) ListProducts(ctx context.Context, categoryID int64, availableOnly bool) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = ?`
	if availableOnly {
		query += ` AND is_available = 1`
	}
	query += ` ORDER BY id ASC`

	rows, err := db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (db *DB) ListAllProducts(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY category_id ASC, id ASC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProductByName ищет товар по точному названию на любом из языков.
// Так работает поиск по свободному тексту в боте.
func (db *DB) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name_uz = ? OR name_ru = ?`
	return scanProduct(db.QueryRowContext(ctx, query, name, name))
}

// GetCategoryByName ищет категорию по точному названию на любом из языков.
func (db *DB) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name_uz = ? OR name_ru = ?`
	return scanCategory(db.QueryRowContext(ctx, query, name, name))
}
