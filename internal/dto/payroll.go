package dto

import (
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DistributeSalaryRequest is the payload for a manual salary distribution.
// Amount may be negative for corrections.
type DistributeSalaryRequest struct {
	MemberID string          `json:"memberID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Month    string          `json:"month" binding:"required,monthkey"`
}

// PayoutSalaryRequest is the payload for paying salary out of the salary pool.
type PayoutSalaryRequest struct {
	MemberID    string          `json:"memberID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Month       string          `json:"month" binding:"required,monthkey"`
	Description string          `json:"description"`
}

// CreateTeamMemberRequest is the payload for adding an employee.
type CreateTeamMemberRequest struct {
	Name   string          `json:"name" binding:"required"`
	Phone  string          `json:"phone"`
	Salary decimal.Decimal `json:"salary"`
}

// UpdateTeamMemberRequest is the payload for updating an employee.
type UpdateTeamMemberRequest struct {
	Name     *string          `json:"name"`
	Phone    *string          `json:"phone"`
	Salary   *decimal.Decimal `json:"salary"`
	IsActive *bool            `json:"isActive"`
}

// TeamMemberResponse is the API representation of an employee.
type TeamMemberResponse struct {
	MemberID string          `json:"memberID"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	Salary   decimal.Decimal `json:"salary"`
	IsActive bool            `json:"isActive"`
}

// ToTeamMemberResponse maps a domain member to its API representation.
func ToTeamMemberResponse(m *domain.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		MemberID: m.MemberID,
		Name:     m.Name,
		Phone:    m.Phone,
		Salary:   m.Salary,
		IsActive: m.IsActive,
	}
}

// SalaryTransactionResponse is the API representation of a salary sub-ledger row.
type SalaryTransactionResponse struct {
	SalaryTxnID string          `json:"salaryTxnID"`
	MemberID    string          `json:"memberID"`
	Month       string          `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Notes       string          `json:"notes"`
}

// ToSalaryTransactionResponse maps a domain salary transaction to its API representation.
func ToSalaryTransactionResponse(t *domain.SalaryTransaction) SalaryTransactionResponse {
	return SalaryTransactionResponse{
		SalaryTxnID: t.SalaryTxnID,
		MemberID:    t.MemberID,
		Month:       t.Month,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Notes:       t.Notes,
	}
}

// AutoDistributeResponse reports how many members an auto-distribution run reached.
type AutoDistributeResponse struct {
	Distributed int `json:"distributed"`
}
