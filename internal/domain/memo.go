package domain

import (
	"slices"
	"time"
)

// MaxMemoPhotos is the hard cap on photo references per memo. Additions past
// the cap are silently refused rather than treated as an error.
const MaxMemoPhotos = 4

// Memo is the free-text note, optional rating, and photo references a user
// attaches to a pin. At most one memo exists per pin identifier; it is created
// lazily on the first note, rating, or photo write.
//
// Photos are references to externally owned resources (device photo library
// URIs). The memo never owns the underlying bytes, and a reference going stale
// outside the app is acceptable.
type Memo struct {
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	Note      string    `json:"note"`
	Rating    int       `json:"rating,omitzero"` // 1..5, 0 = unrated
	Photos    []string  `json:"photos,omitempty"`
}

// AddPhoto appends a photo reference, refusing silently once MaxMemoPhotos is
// reached. Returns false when the cap blocked the addition. Updates UpdatedAt
// on success.
func (m *Memo) AddPhoto(uri string) bool {
	if len(m.Photos) >= MaxMemoPhotos {
		return false
	}
	m.Photos = append(m.Photos, uri)
	m.UpdatedAt = time.Now().UTC()
	return true
}

// RemovePhoto removes a matching photo reference. Returns false if the URI was
// not present. Updates UpdatedAt on success.
func (m *Memo) RemovePhoto(uri string) bool {
	for i, p := range m.Photos {
		if p == uri {
			m.Photos = append(m.Photos[:i], m.Photos[i+1:]...)
			m.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// HasPhoto checks whether a photo reference is already attached.
func (m *Memo) HasPhoto(uri string) bool {
	return slices.Contains(m.Photos, uri)
}
