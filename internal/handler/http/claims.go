package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// callerFromRequest extracts the authenticated employee's identity from the
// verified token. Handlers pass the identity to services explicitly; services
// never read it from context themselves.
func callerFromRequest(r *http.Request) (employeeID string, role string, ok bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", false
	}

	employeeID, idOK := claims["employee_id"].(string)
	if !idOK || employeeID == "" {
		return "", "", false
	}

	role, _ = claims["role"].(string)
	return employeeID, role, true
}
