package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PayStubStatus enum
type PayStubStatus string

const (
	PayStubStatusPending   PayStubStatus = "pending"
	PayStubStatusProcessed PayStubStatus = "processed"
	PayStubStatusPaid      PayStubStatus = "paid"
)

// statusRank orders pay-stub statuses; transitions may only move forward.
var statusRank = map[PayStubStatus]int{
	PayStubStatusPending:   0,
	PayStubStatusProcessed: 1,
	PayStubStatusPaid:      2,
}

// CanTransition reports whether moving from s to next is a forward step.
func (s PayStubStatus) CanTransition(next PayStubStatus) bool {
	from, okFrom := statusRank[s]
	to, okTo := statusRank[next]
	return okFrom && okTo && to > from
}

// MoneyMap is a labeled breakdown stored as JSONB.
type MoneyMap map[string]decimal.Decimal

// Value implements driver.Valuer for database storage
func (m MoneyMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for database retrieval
func (m *MoneyMap) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan MoneyMap: invalid type")
	}

	return json.Unmarshal(bytes, m)
}

// Sum adds all line items.
func (m MoneyMap) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

// DeductionRule is either a flat amount or a percentage of gross pay.
type DeductionRule struct {
	Name         string          `json:"name"`
	IsPercentage bool            `json:"is_percentage"`
	Value        decimal.Decimal `json:"value"`
}

// DeductionRules is the organization's rule set stored as JSONB.
type DeductionRules []DeductionRule

// Value implements driver.Valuer for database storage
func (r DeductionRules) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for database retrieval
func (r *DeductionRules) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan DeductionRules: invalid type")
	}

	return json.Unmarshal(bytes, r)
}

// PayStub - computed pay result for one period
type PayStub struct {
	ID              string
	EmployeeID      string
	TimesheetID     string
	PayPeriodStart  time.Time
	PayPeriodEnd    time.Time
	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	Earnings        MoneyMap
	Deductions      MoneyMap
	Status          PayStubStatus
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
