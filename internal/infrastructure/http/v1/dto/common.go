// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"context"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// DateRangeQuery binds the start/end query pair shared by range endpoints.
type DateRangeQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// Parse validates presence and format of both dates.
func (q DateRangeQuery) Parse(ctx context.Context) (types.Date, types.Date, error) {
	if q.Start == "" || q.End == "" {
		return types.Date{}, types.Date{}, apperror.NewValidation("start and end query parameters are required")
	}
	start, err := types.ParseDate(q.Start)
	if err != nil {
		return types.Date{}, types.Date{}, apperror.NewValidation("invalid start date, expected YYYY-MM-DD").WithDetail("start", q.Start)
	}
	end, err := types.ParseDate(q.End)
	if err != nil {
		return types.Date{}, types.Date{}, apperror.NewValidation("invalid end date, expected YYYY-MM-DD").WithDetail("end", q.End)
	}
	return start, end, nil
}

// ParseOptional validates format only; an absent bound stays the zero
// Date. The summary endpoint treats missing bounds as an empty range.
func (q DateRangeQuery) ParseOptional(ctx context.Context) (types.Date, types.Date, error) {
	var start, end types.Date
	var err error
	if q.Start != "" {
		start, err = types.ParseDate(q.Start)
		if err != nil {
			return types.Date{}, types.Date{}, apperror.NewValidation("invalid start date, expected YYYY-MM-DD").WithDetail("start", q.Start)
		}
	}
	if q.End != "" {
		end, err = types.ParseDate(q.End)
		if err != nil {
			return types.Date{}, types.Date{}, apperror.NewValidation("invalid end date, expected YYYY-MM-DD").WithDetail("end", q.End)
		}
	}
	return start, end, nil
}
