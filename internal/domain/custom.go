package domain

import "time"

// CustomBakery is a user-authored point of interest not present in the bundled
// dataset. Its identifier carries the "custom-" prefix so it can never collide
// with a dataset pin id. Deleting a custom bakery cascades over its tried mark,
// want-to-go membership, and memo.
type CustomBakery struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      PinType   `json:"type"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Address   string    `json:"address,omitempty"`
}

// CustomBakeryUpdate carries a partial update to a custom bakery. Nil fields
// are left untouched.
type CustomBakeryUpdate struct {
	Name    *string  `json:"name,omitempty"`
	Type    *PinType `json:"type,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address *string  `json:"address,omitempty"`
}

// Apply merges the non-nil fields of the update into the bakery.
func (b *CustomBakery) Apply(u CustomBakeryUpdate) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Type != nil {
		b.Type = *u.Type
	}
	if u.Lat != nil {
		b.Lat = *u.Lat
	}
	if u.Lng != nil {
		b.Lng = *u.Lng
	}
	if u.Address != nil {
		b.Address = *u.Address
	}
}
