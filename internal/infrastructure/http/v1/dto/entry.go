package dto

import (
	"time"

	"ledgerbook/internal/core/types"
	"ledgerbook/internal/domain/ledger"
)

// EntryLineRequest is one debit or credit line.
type EntryLineRequest struct {
	AccountID int64       `json:"accountId" binding:"required"`
	Debit     types.Money `json:"debit"`
	Credit    types.Money `json:"credit"`
}

// CreateEntryRequest for creating journal entries.
type CreateEntryRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	Description string             `json:"description"`
	PeriodID    int64              `json:"periodId" binding:"required"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity converts the request to a domain entry.
func (r CreateEntryRequest) ToEntity() *ledger.JournalEntry {
	entry := &ledger.JournalEntry{
		Date:        r.Date,
		Description: r.Description,
		PeriodID:    r.PeriodID,
		Lines:       make([]ledger.EntryLine, len(r.Lines)),
	}
	for i, l := range r.Lines {
		entry.Lines[i] = ledger.EntryLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}
	return entry
}

// UpdateEntryRequest for replacing an entry and its lines.
type UpdateEntryRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	Description string             `json:"description"`
	PeriodID    int64              `json:"periodId" binding:"required"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=1"`
	Version     int                `json:"version" binding:"required,min=1"`
}

// ToEntity converts the request to a domain entry with the given ID.
func (r UpdateEntryRequest) ToEntity(id int64) *ledger.JournalEntry {
	entry := CreateEntryRequest{
		Date:        r.Date,
		Description: r.Description,
		PeriodID:    r.PeriodID,
		Lines:       r.Lines,
	}.ToEntity()
	entry.ID = id
	entry.Version = r.Version
	return entry
}
