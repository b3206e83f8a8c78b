package dto

import (
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/utils"
)

// ActivityListResponse represents a paginated activity feed
type ActivityListResponse struct {
	Activities []models.ActivityLog     `json:"activities"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToActivityListResponse wraps one page of activity with its metadata
func ToActivityListResponse(logs []models.ActivityLog, params utils.PaginationParams, total int64) ActivityListResponse {
	if logs == nil {
		logs = []models.ActivityLog{}
	}

	totalPages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		totalPages++
	}

	return ActivityListResponse{
		Activities: logs,
		Pagination: utils.PaginationResponse{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
