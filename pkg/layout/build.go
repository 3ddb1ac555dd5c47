package layout

import "github.com/arborgraph/arbor/pkg/family"

// builder constructs the family-unit tree for one layout pass. The
// processed set is the guard that makes malformed data safe: a member
// reachable twice (as somebody's spouse and as somebody's listed child, or
// through a parent cycle) is placed exactly once and turns into a
// degenerate childless unit wherever it is reached again.
type builder struct {
	idx        *family.Index
	childrenOf map[string][]*family.Member
	processed  map[string]struct{}
}

func newBuilder(members []family.Member, idx *family.Index) *builder {
	b := &builder{
		idx:        idx,
		childrenOf: make(map[string][]*family.Member),
		processed:  make(map[string]struct{}),
	}
	// Child lists keep original member-list order, which is what makes the
	// whole layout deterministic for a fixed input.
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		child := idx.Lookup(m.ID)
		if m.FatherID != "" {
			b.childrenOf[m.FatherID] = append(b.childrenOf[m.FatherID], child)
		}
		if m.MotherID != "" && m.MotherID != m.FatherID {
			b.childrenOf[m.MotherID] = append(b.childrenOf[m.MotherID], child)
		}
	}
	return b
}

// done reports whether a member id is already incorporated into some unit.
func (b *builder) done(id string) bool {
	_, ok := b.processed[id]
	return ok
}

// build recursively constructs the unit for m at the given generation.
//
// Re-entry (m already processed) returns a degenerate childless unit
// instead of failing; that terminates cycles and the spouse/child
// dual-reachability cases without surfacing an error.
func (b *builder) build(m *family.Member, generation int) *familyUnit {
	u := &familyUnit{member: m, generation: generation}
	if b.done(m.ID) {
		return u
	}
	b.processed[m.ID] = struct{}{}

	// A couple is placed as a unit exactly once. A spouse pointer at the
	// member itself, or at someone already placed elsewhere, is ignored.
	if s := b.idx.Lookup(m.SpouseID); s != nil && s.ID != m.ID && !b.done(s.ID) {
		u.spouse = s
		b.processed[s.ID] = struct{}{}
	}

	groupID := m.ID + "-single"
	if u.spouse != nil {
		groupID = m.ID + "-" + u.spouse.ID
	}

	for _, child := range b.childSet(m, u.spouse) {
		if b.done(child.ID) {
			continue
		}
		cu := b.build(child, generation+1)
		cu.familyGroup = groupID
		u.children = append(u.children, cu)
	}
	return u
}

// childSet collects every member citing either partner as father or
// mother, deduplicated by id so a child listing both partners is not
// counted twice. The partners themselves are excluded, which covers a
// member citing itself or its spouse as a parent.
func (b *builder) childSet(m, spouse *family.Member) []*family.Member {
	seen := make(map[string]struct{})
	var out []*family.Member

	add := func(candidates []*family.Member) {
		for _, c := range candidates {
			if c.ID == m.ID || (spouse != nil && c.ID == spouse.ID) {
				continue
			}
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			out = append(out, c)
		}
	}

	add(b.childrenOf[m.ID])
	if spouse != nil {
		add(b.childrenOf[spouse.ID])
	}
	return out
}
