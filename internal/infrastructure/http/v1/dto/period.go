package dto

import (
	"time"

	"ledgerbook/internal/domain/ledger"
)

// CreatePeriodRequest for creating accounting periods.
type CreatePeriodRequest struct {
	StartDate     time.Time `json:"startDate" binding:"required"`
	EndDate       time.Time `json:"endDate" binding:"required"`
	Description   string    `json:"description"`
	Closed        bool      `json:"closed"`
	PriorPeriodID *int64    `json:"priorPeriodId"`
}

// ToEntity converts the request to a domain period.
func (r CreatePeriodRequest) ToEntity() *ledger.Period {
	return &ledger.Period{
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Description:   r.Description,
		Closed:        r.Closed,
		PriorPeriodID: r.PriorPeriodID,
	}
}

// UpdatePeriodRequest for updating periods. Flipping Closed from false to
// true triggers the closing routine.
type UpdatePeriodRequest struct {
	StartDate     time.Time `json:"startDate" binding:"required"`
	EndDate       time.Time `json:"endDate" binding:"required"`
	Description   string    `json:"description"`
	Closed        bool      `json:"closed"`
	PriorPeriodID *int64    `json:"priorPeriodId"`
	Version       int       `json:"version" binding:"required,min=1"`
}

// ToEntity converts the request to a domain period with the given ID.
func (r UpdatePeriodRequest) ToEntity(id int64) *ledger.Period {
	return &ledger.Period{
		ID:            id,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Description:   r.Description,
		Closed:        r.Closed,
		PriorPeriodID: r.PriorPeriodID,
		Version:       r.Version,
	}
}
