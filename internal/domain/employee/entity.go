package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

type Employee struct {
	ID         string
	FirstName  *string
	LastName   *string
	Username   *string
	Email      *string
	Role       string
	HourlyRate *decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
