package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/repository"
)

// CampaignService manages marketing campaigns. Campaigns are referenced by
// products through the campaign name (display value, not a foreign key) and
// are hard-deleted — they have no trash pair.
type CampaignService interface {
	Create(ctx context.Context, actor model.Actor, req dto.CreateCampaignRequest) (*dto.CampaignResponse, error)
	Get(ctx context.Context, id string) (*dto.CampaignResponse, error)
	List(ctx context.Context) ([]dto.CampaignResponse, error)
	Update(ctx context.Context, actor model.Actor, id string, req dto.UpdateCampaignRequest) (*dto.CampaignResponse, error)
	Delete(ctx context.Context, actor model.Actor, id string) error
}

type campaignService struct {
	repo  *repository.Keyed[model.Campaign]
	audit AuditSink
}

func NewCampaignService(repo *repository.Keyed[model.Campaign], audit AuditSink) CampaignService {
	return &campaignService{repo: repo, audit: audit}
}

const entityCampaign = "campaign"

func (s *campaignService) Create(ctx context.Context, actor model.Actor, req dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	if req.EndDate < req.StartDate {
		return nil, fmt.Errorf("%w: end_date before start_date", repository.ErrValidation)
	}
	c := model.Campaign{
		ID:          uuid.NewString(),
		Name:        req.Name,
		BrandID:     req.BrandID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		Status:      req.Status,
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	resp := campaignToResponse(created)
	s.audit.Record(ctx, newLogEntry(model.ActionAdded, entityCampaign, created.ID, nil, resp, actor))
	return &resp, nil
}

func (s *campaignService) Get(ctx context.Context, id string) (*dto.CampaignResponse, error) {
	c, err := s.repo.FindByKey(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: campaign %q", repository.ErrNotFound, id)
	}
	resp := campaignToResponse(*c)
	return &resp, nil
}

func (s *campaignService) List(ctx context.Context) ([]dto.CampaignResponse, error) {
	campaigns, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, campaignToResponse(c))
	}
	return out, nil
}

func (s *campaignService) Update(ctx context.Context, actor model.Actor, id string, req dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	existing, err := s.repo.FindByKey(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: campaign %q", repository.ErrNotFound, id)
	}

	merged := *existing
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.BrandID != nil {
		merged.BrandID = *req.BrandID
	}
	if req.StartDate != nil {
		merged.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		merged.EndDate = *req.EndDate
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Status != nil {
		merged.Status = *req.Status
	}
	if !model.ValidCampaignStatus(merged.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", repository.ErrValidation, merged.Status)
	}
	if merged.EndDate < merged.StartDate {
		return nil, fmt.Errorf("%w: end_date before start_date", repository.ErrValidation)
	}

	updated, err := s.repo.Update(ctx, id, merged)
	if err != nil {
		return nil, err
	}

	before := campaignToResponse(*existing)
	resp := campaignToResponse(updated)
	s.audit.Record(ctx, newLogEntry(model.ActionEdited, entityCampaign, id, before, resp, actor))
	return &resp, nil
}

func (s *campaignService) Delete(ctx context.Context, actor model.Actor, id string) error {
	existing, err := s.repo.FindByKey(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: campaign %q", repository.ErrNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, newLogEntry(model.ActionDeleted, entityCampaign, id, campaignToResponse(*existing), nil, actor))
	return nil
}

func campaignToResponse(c model.Campaign) dto.CampaignResponse {
	return dto.CampaignResponse{
		ID:          c.ID,
		Name:        c.Name,
		BrandID:     c.BrandID,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Description: c.Description,
		Status:      c.Status,
	}
}
