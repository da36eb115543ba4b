package service

import (
	"context"

	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/repository"
	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// ReferenceService manages the flat lookup lists used to populate selection
// inputs: brands, typologies and racks.
type ReferenceService interface {
	ListBrands(ctx context.Context) ([]string, error)
	AddBrand(ctx context.Context, actor model.Actor, name string) error
	RemoveBrand(ctx context.Context, actor model.Actor, name string) error

	ListTypologies(ctx context.Context) ([]string, error)
	AddTypology(ctx context.Context, actor model.Actor, name string) error
	RemoveTypology(ctx context.Context, actor model.Actor, name string) error

	ListRacks(ctx context.Context) ([]dto.RackResponse, error)
	AddRack(ctx context.Context, actor model.Actor, req dto.AddRackRequest) error
	RemoveRack(ctx context.Context, actor model.Actor, id, warehouse string) error
}

type referenceService struct {
	brands     *repository.ReferenceSet
	typologies *repository.ReferenceSet
	racks      *repository.ReferenceSet
	audit      AuditSink
}

func NewReferenceService(brands, typologies, racks *repository.ReferenceSet, audit AuditSink) ReferenceService {
	return &referenceService{brands: brands, typologies: typologies, racks: racks, audit: audit}
}

func (s *referenceService) ListBrands(ctx context.Context) ([]string, error) {
	return s.listNames(ctx, s.brands)
}

func (s *referenceService) AddBrand(ctx context.Context, actor model.Actor, name string) error {
	return s.addName(ctx, s.brands, "brand", actor, name)
}

func (s *referenceService) RemoveBrand(ctx context.Context, actor model.Actor, name string) error {
	return s.removeName(ctx, s.brands, "brand", actor, name)
}

func (s *referenceService) ListTypologies(ctx context.Context) ([]string, error) {
	return s.listNames(ctx, s.typologies)
}

func (s *referenceService) AddTypology(ctx context.Context, actor model.Actor, name string) error {
	return s.addName(ctx, s.typologies, "typology", actor, name)
}

func (s *referenceService) RemoveTypology(ctx context.Context, actor model.Actor, name string) error {
	return s.removeName(ctx, s.typologies, "typology", actor, name)
}

func (s *referenceService) ListRacks(ctx context.Context) ([]dto.RackResponse, error) {
	rows, err := s.racks.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RackResponse, 0, len(rows))
	for _, row := range rows {
		r := model.RackFromRow(row)
		out = append(out, dto.RackResponse{ID: r.ID, Warehouse: r.Warehouse})
	}
	return out, nil
}

func (s *referenceService) AddRack(ctx context.Context, actor model.Actor, req dto.AddRackRequest) error {
	rack := model.Rack{ID: req.ID, Warehouse: req.Warehouse}
	if err := s.racks.Add(ctx, rack.Row()); err != nil {
		return err
	}
	s.audit.Record(ctx, newLogEntry(model.ActionAdded, "rack", rack.ID, nil, rack, actor))
	return nil
}

func (s *referenceService) RemoveRack(ctx context.Context, actor model.Actor, id, warehouse string) error {
	rack := model.Rack{ID: id, Warehouse: warehouse}
	if err := s.racks.Remove(ctx, rack.Row()); err != nil {
		return err
	}
	s.audit.Record(ctx, newLogEntry(model.ActionDeleted, "rack", id, rack, nil, actor))
	return nil
}

func (s *referenceService) listNames(ctx context.Context, set *repository.ReferenceSet) ([]string, error) {
	rows, err := set.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 {
			names = append(names, row[0])
		}
	}
	return names, nil
}

func (s *referenceService) addName(ctx context.Context, set *repository.ReferenceSet, entity string, actor model.Actor, name string) error {
	if err := set.Add(ctx, sheet.Row{name}); err != nil {
		return err
	}
	s.audit.Record(ctx, newLogEntry(model.ActionAdded, entity, name, nil, name, actor))
	return nil
}

func (s *referenceService) removeName(ctx context.Context, set *repository.ReferenceSet, entity string, actor model.Actor, name string) error {
	if err := set.Remove(ctx, sheet.Row{name}); err != nil {
		return err
	}
	s.audit.Record(ctx, newLogEntry(model.ActionDeleted, entity, name, name, nil, actor))
	return nil
}
