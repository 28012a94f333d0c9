package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestDisplayName_FullName(t *testing.T) {
	emp := Employee{
		ID:        "emp-001",
		FirstName: strPtr("Jane"),
		LastName:  strPtr("Doe"),
		Username:  strPtr("jdoe"),
		Email:     strPtr("jane@example.com"),
	}

	assert.Equal(t, "Jane Doe", DisplayName(emp))
}

func TestDisplayName_FirstNameOnly(t *testing.T) {
	emp := Employee{
		ID:        "emp-001",
		FirstName: strPtr("Jane"),
	}

	assert.Equal(t, "Jane", DisplayName(emp))
}

func TestDisplayName_LastNameOnly(t *testing.T) {
	emp := Employee{
		ID:       "emp-001",
		LastName: strPtr("Doe"),
	}

	assert.Equal(t, "Doe", DisplayName(emp))
}

func TestDisplayName_FallsBackToUsername(t *testing.T) {
	emp := Employee{
		ID:       "emp-001",
		Username: strPtr("jane.doe"),
		Email:    strPtr("other@example.com"),
	}

	assert.Equal(t, "Jane Doe", DisplayName(emp))
}

func TestDisplayName_FallsBackToEmailLocalPart(t *testing.T) {
	emp := Employee{
		ID:    "emp-001",
		Email: strPtr("jane.doe@example.com"),
	}

	assert.Equal(t, "Jane Doe", DisplayName(emp))
}

func TestDisplayName_FallsBackToIDSuffix(t *testing.T) {
	emp := Employee{
		ID: "8f14e45f-ceea-467f-a8cb-0123456789ab",
	}

	assert.Equal(t, "Employee 89ab", DisplayName(emp))
}

func TestDisplayName_ShortID(t *testing.T) {
	emp := Employee{ID: "42"}

	assert.Equal(t, "Employee 42", DisplayName(emp))
}

func TestDisplayName_EmptyPointersAreSkipped(t *testing.T) {
	emp := Employee{
		ID:        "emp-001",
		FirstName: strPtr(""),
		LastName:  strPtr(""),
		Username:  strPtr(""),
		Email:     strPtr("bob@example.com"),
	}

	assert.Equal(t, "Bob", DisplayName(emp))
}
