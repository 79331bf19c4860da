package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/basciYusuf/e-commerce/internal/logging"
	"github.com/basciYusuf/e-commerce/internal/models"
	"github.com/basciYusuf/e-commerce/internal/repo"
	"github.com/basciYusuf/e-commerce/internal/transport"
	"github.com/basciYusuf/e-commerce/internal/util"
)

const productEventsTopic = "product_events"

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type ProductIndex interface {
	Index(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id int) error
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Index  ProductIndex
}

type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

func (s *CatalogService) ListProducts(ctx context.Context, p ListParams) (*transport.ProductPage, error) {
	fields := map[string]string{}

	sortBy := p.SortBy
	if sortBy != "" {
		if _, ok := repo.SortColumns[sortBy]; !ok {
			fields["sortBy"] = "must be one of: name, price, createdAt"
		}
	}

	desc := false
	switch strings.ToUpper(p.SortOrder) {
	case "", "ASC":
	case "DESC":
		desc = true
	default:
		fields["sortOrder"] = "must be ASC or DESC"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	offset, limit := util.Calculate(p.Page, p.Limit)

	total, items, err := s.Repo.ListProducts(ctx, repo.ListQuery{
		Search:   p.Search,
		SortBy:   sortBy,
		SortDesc: desc,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &transport.ProductPage{Data: items, Total: total}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "must not be empty"
	}
	if req.Price <= 0 {
		fields["price"] = "must be greater than zero"
	}
	if strings.TrimSpace(req.Description) == "" {
		fields["description"] = "must not be empty"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	prod, err := s.Repo.CreateProduct(ctx, &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, prod.ID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.reindex(ctx, prod)

	return prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, req transport.UpdateProductRequest) (*models.Product, error) {
	// Create rejects price <= 0; the same rule holds here when a price is
	// supplied, so a product cannot go invalid through the update path.
	if req.Price != nil && *req.Price <= 0 {
		return nil, &ValidationError{Fields: map[string]string{
			"price": "must be greater than zero",
		}}
	}

	prod, err := s.Repo.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, prod.ID, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.reindex(ctx, prod)

	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("index_delete_failed", "productID", id, "error", err)
		}
	}

	return nil
}

// publish is best-effort: a broker failure is logged, never surfaced to the
// caller of a mutation that already committed.
func (s *CatalogService) publish(ctx context.Context, id int, event map[string]any) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(ctx, productEventsTopic, fmt.Sprint(id), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "productID", id, "error", err)
	}
}

func (s *CatalogService) reindex(ctx context.Context, prod *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, prod); err != nil {
		logging.FromContext(ctx).Warn("index_update_failed", "productID", prod.ID, "error", err)
	}
}
