package dto

import "github.com/sword9322/bezer-sub000/internal/model"

type LogQuery struct {
	Action string `form:"action" validate:"omitempty,oneof=added edited deleted"`
	Entity string `form:"entity"`
	Actor  string `form:"actor"`
	From   string `form:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To     string `form:"to"   validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type LogEntryResponse struct {
	ID         string        `json:"id"`
	Timestamp  string        `json:"timestamp"`
	Action     string        `json:"action"`
	EntityType string        `json:"entity_type"`
	EntityID   string        `json:"entity_id"`
	Changes    model.Changes `json:"changes"`
	Actor      model.Actor   `json:"actor"`
}

type LogListResponse struct {
	Data  []LogEntryResponse `json:"data"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
