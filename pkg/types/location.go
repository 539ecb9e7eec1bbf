package types

import "strings"

// Location is the free-form home location a user can attach to their account.
type Location struct {
	State   *string `json:"state,omitempty" gorm:"column:state"`
	City    *string `json:"city,omitempty" gorm:"column:city"`
	Country *string `json:"country,omitempty" gorm:"column:country"`
}

// IsZero reports whether no location part is set.
func (l Location) IsZero() bool {
	return blank(l.State) && blank(l.City) && blank(l.Country)
}

// Merge overlays the non-nil parts of patch onto l.
func (l Location) Merge(patch Location) Location {
	if patch.State != nil {
		l.State = trimmed(patch.State)
	}
	if patch.City != nil {
		l.City = trimmed(patch.City)
	}
	if patch.Country != nil {
		l.Country = trimmed(patch.Country)
	}
	return l
}

func blank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

func trimmed(v *string) *string {
	s := strings.TrimSpace(*v)
	return &s
}
