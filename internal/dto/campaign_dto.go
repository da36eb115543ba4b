package dto

type CreateCampaignRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=120"`
	BrandID     string `json:"brand_id"`
	StartDate   string `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date"    validate:"required,datetime=2006-01-02"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"required,oneof=Ativo Inativo Planejado Encerrado"`
}

type UpdateCampaignRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=120"`
	BrandID     *string `json:"brand_id"`
	StartDate   *string `json:"start_date"  validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date"    validate:"omitempty,datetime=2006-01-02"`
	Description *string `json:"description"`
	Status      *string `json:"status"      validate:"omitempty,oneof=Ativo Inativo Planejado Encerrado"`
}

type CampaignResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BrandID     string `json:"brand_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
