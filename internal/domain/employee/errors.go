package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNoHourlyRate     = errors.New("employee has no hourly rate configured")
)
