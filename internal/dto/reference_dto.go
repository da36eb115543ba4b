package dto

type AddNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

type AddRackRequest struct {
	ID        string `json:"id"        validate:"required,min=1,max=32"`
	Warehouse string `json:"warehouse" validate:"required,oneof=1 2"`
}

type RackResponse struct {
	ID        string `json:"id"`
	Warehouse string `json:"warehouse"`
}
