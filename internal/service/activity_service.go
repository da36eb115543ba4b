package service

import (
	"context"
	"time"

	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/repository"
)

// ActivityService is the read side of the audit trail.
type ActivityService interface {
	Query(ctx context.Context, q dto.LogQuery) (*dto.LogListResponse, error)
}

type activityService struct {
	repo *repository.Activity
}

func NewActivityService(repo *repository.Activity) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Query(ctx context.Context, q dto.LogQuery) (*dto.LogListResponse, error) {
	filter := repository.LogFilter{
		Action:     q.Action,
		EntityType: q.Entity,
		ActorQuery: q.Actor,
	}
	// Bounds arrive pre-validated as RFC 3339 strings.
	if q.From != "" {
		filter.From, _ = time.Parse(time.RFC3339, q.From)
	}
	if q.To != "" {
		filter.To, _ = time.Parse(time.RFC3339, q.To)
	}

	entries, total, err := s.repo.Query(ctx, filter, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.LogEntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, dto.LogEntryResponse{
			ID:         e.ID,
			Timestamp:  e.Timestamp.Format(time.RFC3339),
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Changes:    e.Changes,
			Actor:      e.Actor,
		})
	}
	return &dto.LogListResponse{Data: data, Total: total, Page: q.Page, Limit: q.Limit}, nil
}
