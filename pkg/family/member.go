// Package family defines the member records the layout engine consumes and
// the lookup/selection primitives built on top of them.
//
// Members arrive as a flat, unordered list from the site's data store. The
// three relationship fields (FatherID, MotherID, SpouseID) are weak
// references: they point at another member by id and assert no ownership.
// Referential integrity is never validated here - a dangling pointer simply
// fails to resolve, and downstream code treats that as "relationship
// absent", not as an error. Imperfect historical data is the normal case.
package family

import "time"

// Member is a single person record. It is read-only input to the layout
// engine; the engine never mutates members.
type Member struct {
	ID         string `json:"id" bson:"id"`
	FirstName  string `json:"first_name" bson:"first_name"`
	LastName   string `json:"last_name" bson:"last_name"`
	BirthDate  string `json:"birth_date,omitempty" bson:"birth_date,omitempty"`
	DeathDate  string `json:"death_date,omitempty" bson:"death_date,omitempty"`
	BirthPlace string `json:"birth_place,omitempty" bson:"birth_place,omitempty"`
	ImageURL   string `json:"image_url,omitempty" bson:"image_url,omitempty"`

	// Weak references to other members by id. Any of them may be empty or
	// dangling; a member citing itself must be tolerated without looping.
	FatherID string `json:"father_id,omitempty" bson:"father_id,omitempty"`
	MotherID string `json:"mother_id,omitempty" bson:"mother_id,omitempty"`
	SpouseID string `json:"spouse_id,omitempty" bson:"spouse_id,omitempty"`
}

// FullName returns "First Last", tolerating either part being empty.
func (m Member) FullName() string {
	switch {
	case m.FirstName == "":
		return m.LastName
	case m.LastName == "":
		return m.FirstName
	default:
		return m.FirstName + " " + m.LastName
	}
}

// HasParents reports whether the member cites at least one parent.
func (m Member) HasParents() bool {
	return m.FatherID != "" || m.MotherID != ""
}

// dateLayouts are accepted birth/death date formats, tried in order.
// Historical records often carry only a year.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// Born parses the member's birth date. The second return value is false
// when no date is recorded or the recorded value is unparsable; callers
// treat both the same way (date unknown).
func (m Member) Born() (time.Time, bool) {
	return parseDate(m.BirthDate)
}

// Died parses the member's death date, with the same semantics as Born.
func (m Member) Died() (time.Time, bool) {
	return parseDate(m.DeathDate)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Index provides O(1) member lookup by id. It is a pure read structure
// built once per layout pass; it performs no validation of referential
// integrity.
type Index struct {
	byID map[string]*Member
}

// NewIndex builds an index over members. When the list contains duplicate
// ids, the first occurrence wins, matching the list-order determinism the
// rest of the engine guarantees.
func NewIndex(members []Member) *Index {
	idx := &Index{byID: make(map[string]*Member, len(members))}
	for i := range members {
		m := &members[i]
		if _, exists := idx.byID[m.ID]; !exists {
			idx.byID[m.ID] = m
		}
	}
	return idx
}

// Lookup returns the member with the given id, or nil if the id is empty
// or does not resolve. A nil result means "relationship absent".
func (idx *Index) Lookup(id string) *Member {
	if id == "" {
		return nil
	}
	return idx.byID[id]
}

// Len returns the number of distinct members in the index.
func (idx *Index) Len() int { return len(idx.byID) }
