package dto

import (
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

// --- Categories ---

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// --- Cash register ---

// CashRegisterEntryRequest creates or updates a cash register entry.
type CashRegisterEntryRequest struct {
	Date        types.Date  `json:"date"`
	Value       types.Money `json:"value"`
	Description *string     `json:"description"`
}

// --- Expenses ---

// ExpenseRequest creates or updates an expense.
type ExpenseRequest struct {
	Description string      `json:"description" binding:"required"`
	Value       types.Money `json:"value"`
	DueDate     types.Date  `json:"dueDate"`
	IsPaid      bool        `json:"isPaid"`
	Source      string      `json:"source" binding:"required"`
	CategoryID  *string     `json:"categoryId"`

	// Installments > 1 splits the value across that many monthly parts.
	Installments int `json:"installments"`
}

// MarkPaidRequest flips a paid flag.
type MarkPaidRequest struct {
	IsPaid bool `json:"isPaid"`
}

// --- Products ---

// ProductRequest creates or updates a product.
type ProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description *string     `json:"description"`
	Price       types.Money `json:"price"`
	Stock       int         `json:"stock"`
}

// AdjustStockRequest shifts a product's stock level.
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// --- Product purchases ---

// PurchaseRequest creates or updates a product purchase.
type PurchaseRequest struct {
	ProductID   *string     `json:"productId"`
	Description string      `json:"description" binding:"required"`
	Value       types.Money `json:"value"`
	Quantity    int         `json:"quantity"`
	Date        types.Date  `json:"date"`
	IsPaid      bool        `json:"isPaid"`
}

// --- Income ---

// IncomeLineRequest is one product line of an income entry.
type IncomeLineRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  int         `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
}

// IncomeRequest creates or updates an income entry.
type IncomeRequest struct {
	Description  string              `json:"description" binding:"required"`
	Date         types.Date          `json:"date"`
	Value        types.Money         `json:"value"`
	ProfitMargin types.Money         `json:"profitMargin"`
	Lines        []IncomeLineRequest `json:"lines"`
}

// IncomeResponse decorates an income with its derived amounts.
type IncomeResponse struct {
	Income       any         `json:"income"`
	ProfitAmount types.Money `json:"profitAmount"`
	BaseValue    types.Money `json:"baseValue"`
}

// --- Recurring rules ---

// RecurringRuleRequest creates or updates a recurring expense rule.
type RecurringRuleRequest struct {
	Description string      `json:"description" binding:"required"`
	Value       types.Money `json:"value"`
	Recurrence  string      `json:"recurrenceType" binding:"required"`
	StartDate   types.Date  `json:"startDate"`
	EndDate     types.Date  `json:"endDate"`
	IsActive    *bool       `json:"isActive"`
}

// ExpandRequest runs the occurrence expander for one date.
// AsOf defaults to today in the configured time zone when omitted.
type ExpandRequest struct {
	AsOf types.Date `json:"asOf"`
}

// ExpandResponse reports how many occurrences a run created.
type ExpandResponse struct {
	Created int `json:"created"`
}
