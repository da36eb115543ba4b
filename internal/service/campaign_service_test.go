package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/repository"
	"github.com/sword9322/bezer-sub000/internal/sheet"
)

func newCampaignSvc() (CampaignService, *recordingSink) {
	sink := &recordingSink{}
	repo := repository.NewCampaigns(sheet.NewMemory(), sheet.NewLocker())
	return NewCampaignService(repo, sink), sink
}

func campaignReq(name string) dto.CreateCampaignRequest {
	return dto.CreateCampaignRequest{
		Name:      name,
		BrandID:   "Acme",
		StartDate: "2026-06-01",
		EndDate:   "2026-08-31",
		Status:    model.CampaignPlanned,
	}
}

func TestCampaignCreateAssignsID(t *testing.T) {
	svc, sink := newCampaignSvc()

	resp, err := svc.Create(context.Background(), manager, campaignReq("Summer Launch"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, model.CampaignPlanned, resp.Status)

	require.Len(t, sink.entries, 1)
	assert.Equal(t, "campaign", sink.entries[0].EntityType)
	assert.Equal(t, resp.ID, sink.entries[0].EntityID)
}

func TestCampaignCreateInvertedDates(t *testing.T) {
	svc, _ := newCampaignSvc()

	req := campaignReq("Backwards")
	req.StartDate, req.EndDate = req.EndDate, req.StartDate
	_, err := svc.Create(context.Background(), manager, req)
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestCampaignUpdateMergesAndValidates(t *testing.T) {
	svc, _ := newCampaignSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, manager, campaignReq("Summer Launch"))
	require.NoError(t, err)

	status := model.CampaignActive
	resp, err := svc.Update(ctx, manager, created.ID, dto.UpdateCampaignRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.CampaignActive, resp.Status)
	// Omitted fields survive
	assert.Equal(t, "Summer Launch", resp.Name)
	assert.Equal(t, "2026-06-01", resp.StartDate)

	// Shrinking the end date below the start date is rejected
	bad := "2026-01-01"
	_, err = svc.Update(ctx, manager, created.ID, dto.UpdateCampaignRequest{EndDate: &bad})
	assert.ErrorIs(t, err, repository.ErrValidation)

	unknown := "Arquivado"
	_, err = svc.Update(ctx, manager, created.ID, dto.UpdateCampaignRequest{Status: &unknown})
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestCampaignDeleteIsHard(t *testing.T) {
	svc, sink := newCampaignSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, manager, campaignReq("Short Lived"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, manager, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, manager, created.ID), repository.ErrNotFound)

	require.Len(t, sink.entries, 2)
	assert.Equal(t, model.ActionDeleted, sink.entries[1].Action)
	assert.NotNil(t, sink.entries[1].Changes.Before)
}

func TestCampaignList(t *testing.T) {
	svc, _ := newCampaignSvc()
	ctx := context.Background()

	_, err := svc.Create(ctx, manager, campaignReq("One"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, manager, campaignReq("Two"))
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
