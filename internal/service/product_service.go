package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/repository"
)

// ProductService is the business logic contract for inventory records.
type ProductService interface {
	Create(ctx context.Context, actor model.Actor, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, ref string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	ListTrash(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, actor model.Actor, ref string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	SoftDelete(ctx context.Context, actor model.Actor, ref string) error
	Restore(ctx context.Context, actor model.Actor, ref string) error
	Purge(ctx context.Context, actor model.Actor, ref string) error
}

type productService struct {
	repo  *repository.Keyed[model.Product]
	audit AuditSink
}

func NewProductService(repo *repository.Keyed[model.Product], audit AuditSink) ProductService {
	return &productService{repo: repo, audit: audit}
}

const entityProduct = "product"

func (s *productService) Create(ctx context.Context, actor model.Actor, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := model.Product{
		Ref:       strings.TrimSpace(req.Ref),
		Image:     req.Image,
		Height:    req.Height,
		Width:     req.Width,
		Brand:     req.Brand,
		Campaign:  req.Campaign,
		Date:      req.Date,
		Stock:     req.Stock,
		Location:  req.Location,
		Typology:  req.Typology,
		Notes:     req.Notes,
		Warehouse: req.Warehouse,
	}
	if p.Ref == "" {
		return nil, fmt.Errorf("%w: ref is required", repository.ErrValidation)
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	resp := productToResponse(created)
	s.audit.Record(ctx, newLogEntry(model.ActionAdded, entityProduct, created.Ref, nil, resp, actor))
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, ref string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByKey(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %q", repository.ErrNotFound, ref)
	}
	resp := productToResponse(*p)
	return &resp, nil
}

// Update is read-merge-write: the stored record is fetched, the request's
// present fields are laid over it and the merged whole row is written back.
// Partial updates are first-class here — callers never lose fields they did
// not send.
func (s *productService) Update(ctx context.Context, actor model.Actor, ref string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	existing, err := s.repo.FindByKey(ctx, ref)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %q", repository.ErrNotFound, ref)
	}

	merged := *existing
	if req.Image != nil {
		merged.Image = *req.Image
	}
	if req.Height != nil {
		merged.Height = *req.Height
	}
	if req.Width != nil {
		merged.Width = *req.Width
	}
	if req.Brand != nil {
		merged.Brand = *req.Brand
	}
	if req.Campaign != nil {
		merged.Campaign = *req.Campaign
	}
	if req.Date != nil {
		merged.Date = *req.Date
	}
	if req.Stock != nil {
		merged.Stock = *req.Stock
	}
	if req.Location != nil {
		merged.Location = *req.Location
	}
	if req.Typology != nil {
		merged.Typology = *req.Typology
	}
	if req.Notes != nil {
		merged.Notes = *req.Notes
	}
	if req.Warehouse != nil {
		merged.Warehouse = *req.Warehouse
	}

	updated, err := s.repo.Update(ctx, ref, merged)
	if err != nil {
		return nil, err
	}

	before := productToResponse(*existing)
	resp := productToResponse(updated)
	s.audit.Record(ctx, newLogEntry(model.ActionEdited, entityProduct, ref, before, resp, actor))
	return &resp, nil
}

func (s *productService) SoftDelete(ctx context.Context, actor model.Actor, ref string) error {
	existing, err := s.repo.FindByKey(ctx, ref)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %q", repository.ErrNotFound, ref)
	}

	if err := s.repo.SoftDelete(ctx, ref); err != nil {
		return err
	}
	s.audit.Record(ctx, newLogEntry(model.ActionDeleted, entityProduct, ref, productToResponse(*existing), nil, actor))
	return nil
}

func (s *productService) Restore(ctx context.Context, actor model.Actor, ref string) error {
	trashed, err := s.repo.FindInTrash(ctx, ref)
	if err != nil {
		return err
	}
	if trashed == nil {
		return fmt.Errorf("%w: %q in trash", repository.ErrNotFound, ref)
	}

	if err := s.repo.Restore(ctx, ref); err != nil {
		return err
	}
	s.audit.Record(ctx, newLogEntry(model.ActionAdded, entityProduct, ref, nil, productToResponse(*trashed), actor))
	return nil
}

func (s *productService) Purge(ctx context.Context, actor model.Actor, ref string) error {
	trashed, err := s.repo.FindInTrash(ctx, ref)
	if err != nil {
		return err
	}
	if trashed == nil {
		return fmt.Errorf("%w: %q in trash", repository.ErrNotFound, ref)
	}

	if err := s.repo.Purge(ctx, ref); err != nil {
		return err
	}
	s.audit.Record(ctx, newLogEntry(model.ActionDeleted, entityProduct, ref, productToResponse(*trashed), nil, actor))
	return nil
}

// List applies the client-facing query layer: warehouse partition, substring
// filters and page windowing over the full in-memory table. Recomputed on
// every fetch — there is no cached index to go stale.
func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(products, filter), nil
}

func (s *productService) ListTrash(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, err := s.repo.ListTrash(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(products, filter), nil
}

func paginate(products []model.Product, filter dto.ProductFilter) *dto.ProductListResponse {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matchesProduct(p, filter) {
			matched = append(matched, p)
		}
	}

	total := len(matched)
	totalPages := (total + filter.Limit - 1) / filter.Limit
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	data := make([]dto.ProductResponse, 0, end-start)
	for _, p := range matched[start:end] {
		data = append(data, productToResponse(p))
	}
	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}
}

func matchesProduct(p model.Product, f dto.ProductFilter) bool {
	if f.Warehouse != "" && p.Warehouse != f.Warehouse {
		return false
	}
	return containsFold(p.Ref, f.Ref) &&
		containsFold(p.Brand, f.Brand) &&
		containsFold(p.Campaign, f.Campaign) &&
		containsFold(p.Date, f.Date) &&
		containsFold(strconv.Itoa(p.Stock), f.Stock) &&
		containsFold(p.Location, f.Location) &&
		containsFold(p.Typology, f.Typology)
}

// containsFold is a case-insensitive substring match; an empty query matches.
func containsFold(value, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

func productToResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		Ref:       p.Ref,
		Image:     p.Image,
		Height:    p.Height,
		Width:     p.Width,
		Brand:     p.Brand,
		Campaign:  p.Campaign,
		Date:      p.Date,
		Stock:     p.Stock,
		Location:  p.Location,
		Typology:  p.Typology,
		Notes:     p.Notes,
		Warehouse: p.Warehouse,
	}
}
