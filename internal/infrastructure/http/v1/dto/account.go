package dto

import "ledgerbook/internal/domain/ledger"

// CreateAccountRequest for creating chart-of-accounts entries.
type CreateAccountRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// ToEntity converts the request to a domain account.
func (r CreateAccountRequest) ToEntity() *ledger.Account {
	return &ledger.Account{
		Code: r.Code,
		Name: r.Name,
		Type: ledger.AccountType(r.Type),
	}
}

// UpdateAccountRequest for updating accounts.
type UpdateAccountRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Version int    `json:"version" binding:"required,min=1"`
}

// ApplyTo writes the request fields onto an existing account.
func (r UpdateAccountRequest) ApplyTo(a *ledger.Account) {
	a.Code = r.Code
	a.Name = r.Name
	a.Type = ledger.AccountType(r.Type)
	a.Version = r.Version
}
