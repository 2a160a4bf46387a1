package project

import "github.com/portal/backend/internal/domain/identity"

// Visible is implemented by every artifact carrying the client-facing
// visibility gate.
type Visible interface {
	Visible() bool
}

// FilterVisible returns the records a caller with the given role may see.
// Admins receive the input unchanged, order preserved. Clients receive only
// records whose visibility gate is open. Author/uploader enrichment must
// happen after this filter so hidden records never leak identity through
// enrichment work.
func FilterVisible[T Visible](records []T, role identity.Role) []T {
	if role == identity.RoleAdmin {
		return records
	}
	visible := make([]T, 0, len(records))
	for _, r := range records {
		if r.Visible() {
			visible = append(visible, r)
		}
	}
	return visible
}
