package model

// Snapshot is the persisted form of the whole store. Movies and bookings are
// keyed by id; the id fields of the values are filled from the keys on load.
type Snapshot struct {
	Meta     Meta               `json:"meta"`
	NextIDs  NextIDs            `json:"next_ids"`
	Movies   map[string]Movie   `json:"movies"`
	Bookings map[string]Booking `json:"bookings"`
}

// Meta holds store-level metadata.
type Meta struct {
	CreatedAt Timestamp `json:"created_at"`
}

// NextIDs are the next sequence numbers to allocate per entity kind.
type NextIDs struct {
	Movie   int `json:"movie"`
	Booking int `json:"booking"`
}

// NewSnapshot returns an empty, seeded snapshot.
func NewSnapshot() Snapshot {
	return Snapshot{
		Meta:     Meta{CreatedAt: Now()},
		NextIDs:  NextIDs{Movie: 1, Booking: 1},
		Movies:   map[string]Movie{},
		Bookings: map[string]Booking{},
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Meta:     s.Meta,
		NextIDs:  s.NextIDs,
		Movies:   make(map[string]Movie, len(s.Movies)),
		Bookings: make(map[string]Booking, len(s.Bookings)),
	}
	for id, m := range s.Movies {
		out.Movies[id] = m.Clone()
	}
	for id, b := range s.Bookings {
		out.Bookings[id] = b.Clone()
	}
	return out
}
