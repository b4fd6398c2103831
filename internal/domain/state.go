package domain

import "time"

// TriedMark records that the user has visited a pin. At most one exists per
// pin identifier.
type TriedMark struct {
	TriedAt time.Time `json:"triedAt"`
	ID      string    `json:"id"`
}

// UserState is the durable subset of the store: every user-generated overlay
// collection, shaped exactly like the persisted snapshot document. Field names
// match the on-disk blob so forward compatibility is a matter of tolerating
// unknown fields and defaulting missing ones to empty.
type UserState struct {
	Tried    []TriedMark    `json:"triedBakeries"`
	WantToGo []string       `json:"wantToGoBakeries"`
	Memos    []Memo         `json:"bakeryMemos"`
	Custom   []CustomBakery `json:"customBakeries"`
	Excluded []string       `json:"excludedBakeries"`
}

// NewUserState returns the all-empty initial state used on first launch and
// whenever the persisted snapshot is missing or unreadable.
func NewUserState() *UserState {
	return &UserState{
		Tried:    []TriedMark{},
		WantToGo: []string{},
		Memos:    []Memo{},
		Custom:   []CustomBakery{},
		Excluded: []string{},
	}
}

// Normalize replaces nil collections with empty ones. Snapshots written by
// older versions may omit whole collections; hydration runs this before use.
func (s *UserState) Normalize() {
	if s.Tried == nil {
		s.Tried = []TriedMark{}
	}
	if s.WantToGo == nil {
		s.WantToGo = []string{}
	}
	if s.Memos == nil {
		s.Memos = []Memo{}
	}
	if s.Custom == nil {
		s.Custom = []CustomBakery{}
	}
	if s.Excluded == nil {
		s.Excluded = []string{}
	}
}

// Clone returns a deep copy. The store hands copies to its flusher so snapshot
// serialization never races a mutation.
func (s *UserState) Clone() *UserState {
	out := &UserState{
		Tried:    make([]TriedMark, len(s.Tried)),
		WantToGo: make([]string, len(s.WantToGo)),
		Memos:    make([]Memo, len(s.Memos)),
		Custom:   make([]CustomBakery, len(s.Custom)),
		Excluded: make([]string, len(s.Excluded)),
	}
	copy(out.Tried, s.Tried)
	copy(out.WantToGo, s.WantToGo)
	copy(out.Custom, s.Custom)
	copy(out.Excluded, s.Excluded)
	for i, m := range s.Memos {
		cm := m
		cm.Photos = make([]string, len(m.Photos))
		copy(cm.Photos, m.Photos)
		if len(cm.Photos) == 0 {
			cm.Photos = nil
		}
		out.Memos[i] = cm
	}
	return out
}
