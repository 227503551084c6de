package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"utsavia/internal/db"
)

// CatalogRepository covers the content the storefront renders: decoration
// themes, portfolio items and priceable add-ons.
type CatalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(database *sql.DB) *CatalogRepository {
	return &CatalogRepository{DB: database}
}

func (r *CatalogRepository) GetThemes(occasion string) ([]db.Theme, error) {
	query := `
		SELECT id, name, description, occasion, base_price, image_url, is_active, created_at, updated_at
		FROM themes
		WHERE is_active = TRUE AND ($1 = '' OR occasion = $1)
		ORDER BY name`

	rows, err := r.DB.Query(query, occasion)
	if err != nil {
		return nil, fmt.Errorf("error querying themes: %w", err)
	}
	defer rows.Close()

	var themes []db.Theme
	for rows.Next() {
		var t db.Theme
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Occasion, &t.BasePrice, &t.ImageURL, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning theme: %w", err)
		}
		themes = append(themes, t)
	}
	return themes, rows.Err()
}

func (r *CatalogRepository) GetThemeByID(id int) (*db.Theme, error) {
	var t db.Theme
	err := r.DB.QueryRow(`
		SELECT id, name, description, occasion, base_price, image_url, is_active, created_at, updated_at
		FROM themes WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.Occasion, &t.BasePrice, &t.ImageURL, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("theme %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying theme: %w", err)
	}
	return &t, nil
}

func (r *CatalogRepository) CreateTheme(t *db.Theme) error {
	query := `
		INSERT INTO themes (name, description, occasion, base_price, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query, t.Name, t.Description, t.Occasion, t.BasePrice, t.ImageURL, t.IsActive).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *CatalogRepository) UpdateTheme(t *db.Theme) error {
	query := `
		UPDATE themes
		SET name = $2, description = $3, occasion = $4, base_price = $5, image_url = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1`
	result, err := r.DB.Exec(query, t.ID, t.Name, t.Description, t.Occasion, t.BasePrice, t.ImageURL, t.IsActive)
	if err != nil {
		return fmt.Errorf("error updating theme: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CatalogRepository) DeleteTheme(id int) error {
	result, err := r.DB.Exec(`DELETE FROM themes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting theme: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CatalogRepository) GetPortfolioItems() ([]db.PortfolioItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, title, description, image_url, city, display_order, created_at
		FROM portfolio_items
		ORDER BY display_order, id`)
	if err != nil {
		return nil, fmt.Errorf("error querying portfolio: %w", err)
	}
	defer rows.Close()

	var items []db.PortfolioItem
	for rows.Next() {
		var p db.PortfolioItem
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.City, &p.DisplayOrder, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning portfolio item: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *CatalogRepository) CreatePortfolioItem(p *db.PortfolioItem) error {
	query := `
		INSERT INTO portfolio_items (title, description, image_url, city, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`
	return r.DB.QueryRow(query, p.Title, p.Description, p.ImageURL, p.City, p.DisplayOrder).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *CatalogRepository) UpdatePortfolioItem(p *db.PortfolioItem) error {
	query := `
		UPDATE portfolio_items
		SET title = $2, description = $3, image_url = $4, city = $5, display_order = $6
		WHERE id = $1`
	result, err := r.DB.Exec(query, p.ID, p.Title, p.Description, p.ImageURL, p.City, p.DisplayOrder)
	if err != nil {
		return fmt.Errorf("error updating portfolio item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CatalogRepository) DeletePortfolioItem(id int) error {
	result, err := r.DB.Exec(`DELETE FROM portfolio_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting portfolio item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CatalogRepository) GetAddons() ([]db.Addon, error) {
	rows, err := r.DB.Query(`SELECT id, name, price, is_active FROM addons WHERE is_active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying addons: %w", err)
	}
	defer rows.Close()

	var addons []db.Addon
	for rows.Next() {
		var a db.Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Price, &a.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning addon: %w", err)
		}
		addons = append(addons, a)
	}
	return addons, rows.Err()
}

// GetAddonPrice resolves one addon id to its price. Unknown or inactive
// ids price to zero so a stale addon never blocks a quote.
func (r *CatalogRepository) GetAddonPrice(id string) float64 {
	var price float64
	err := r.DB.QueryRow(`SELECT price FROM addons WHERE id = $1 AND is_active = TRUE`, id).Scan(&price)
	if err != nil {
		return 0
	}
	return price
}
