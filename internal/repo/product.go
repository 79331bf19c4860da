package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/basciYusuf/e-commerce/internal/models"
	"github.com/basciYusuf/e-commerce/internal/transport"
)

// SortColumns maps the sort fields accepted on the wire to real columns.
// Anything outside this map never reaches the ORM.
var SortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
}

type ListQuery struct {
	Search   string
	SortBy   string // wire name, must be a SortColumns key when set
	SortDesc bool
	Offset   int
	Limit    int
}

func searchScope(q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q == "" {
			return db
		}
		pattern := "%" + q + "%"
		return db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
}

// ListProducts runs the count and the page select against the same search
// predicate. The two queries are not a single snapshot; a concurrent insert
// can make total off by one on the last page.
func (r *GormRepo) ListProducts(ctx context.Context, q ListQuery) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(searchScope(q.Search)).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	order := "created_at DESC"
	if q.SortBy != "" {
		col, ok := SortColumns[q.SortBy]
		if !ok {
			return 0, nil, fmt.Errorf("unknown sort field %q", q.SortBy)
		}
		dir := "ASC"
		if q.SortDesc {
			dir = "DESC"
		}
		order = col + " " + dir
	}

	items := make([]models.Product, 0, q.Limit)
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(searchScope(q.Search)).
		Order(order).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) UpdateProduct(ctx context.Context, id int, req transport.UpdateProductRequest) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id int) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
