package salarycatalog

import "github.com/shopspring/decimal"

type CreateDefinitionRequest struct {
	Code            string           `json:"code" binding:"required,max=50"`
	Name            string           `json:"name" binding:"required,max=100"`
	Category        string           `json:"category" binding:"required,oneof=earning employeeDeduction employerContribution"`
	CalculationType string           `json:"calculationType" binding:"required,oneof=FIXED PERCENT_OF_BASIC PERCENT_OF_CTC"`
	Amount          *decimal.Decimal `json:"amount" binding:"omitempty,decimal_gte0"`
	Percentage      *decimal.Decimal `json:"percentage" binding:"omitempty,decimal_gte0"`
	ProRata         bool             `json:"proRata"`
	Taxable         bool             `json:"taxable"`
	Removable       *bool            `json:"removable"`
	Position        int              `json:"position"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type DefinitionResponse struct {
	ID              string           `json:"id"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	CalculationType string           `json:"calculationType"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Percentage      *decimal.Decimal `json:"percentage,omitempty"`
	ProRata         bool             `json:"proRata"`
	Taxable         bool             `json:"taxable"`
	Removable       bool             `json:"removable"`
	IsActive        bool             `json:"isActive"`
	Position        int              `json:"position"`
}

func mapToResponse(d Definition) DefinitionResponse {
	resp := DefinitionResponse{
		ID:              d.ID.String(),
		Code:            d.Code,
		Name:            d.Name,
		Category:        d.Category,
		CalculationType: d.CalculationType,
		ProRata:         d.ProRata,
		Taxable:         d.Taxable,
		Removable:       d.Removable,
		IsActive:        d.IsActive,
		Position:        d.Position,
	}
	if d.Amount.Valid {
		a := d.Amount.Decimal
		resp.Amount = &a
	}
	if d.Percentage.Valid {
		p := d.Percentage.Decimal
		resp.Percentage = &p
	}
	return resp
}
