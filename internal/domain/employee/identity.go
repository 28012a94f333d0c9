package employee

import (
	"strings"
)

// DisplayName resolves a human-readable name from a sparse employee record.
// Fallback order: "First Last", the username split on dots and title-cased,
// the local part of the email likewise, and finally the last 4 characters of
// the ID. It never returns an empty string.
func DisplayName(emp Employee) string {
	first := deref(emp.FirstName)
	last := deref(emp.LastName)
	if first != "" || last != "" {
		return strings.TrimSpace(first + " " + last)
	}

	if name := titleFromHandle(deref(emp.Username)); name != "" {
		return name
	}

	if email := deref(emp.Email); email != "" {
		local, _, _ := strings.Cut(email, "@")
		if name := titleFromHandle(local); name != "" {
			return name
		}
	}

	return "Employee " + last4(emp.ID)
}

// titleFromHandle turns "jane.doe" into "Jane Doe".
func titleFromHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return ""
	}

	parts := strings.Split(handle, ".")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		words = append(words, strings.ToUpper(p[:1])+strings.ToLower(p[1:]))
	}
	return strings.Join(words, " ")
}

func last4(id string) string {
	if len(id) <= 4 {
		return id
	}
	return id[len(id)-4:]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
