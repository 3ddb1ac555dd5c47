package family

// RootCandidates returns every member with neither father nor mother
// recorded, in original list order.
func RootCandidates(members []Member) []Member {
	var roots []Member
	for _, m := range members {
		if !m.HasParents() {
			roots = append(roots, m)
		}
	}
	return roots
}

// SelectRoot picks the layout anchor: among root candidates with a known
// birth date, the earliest-born wins (strict less-than; ties keep the first
// encountered in list order). If no candidate has a parsable birth date,
// the first candidate in list order is returned. Returns nil when the list
// has no root candidates at all, which callers handle with the multi-tree
// fallback.
//
// The list-order tie-break is documented behavior inherited from the site,
// not a deliberate policy. Keep it.
func SelectRoot(members []Member) *Member {
	candidates := RootCandidates(members)
	if len(candidates) == 0 {
		return nil
	}

	var oldest *Member
	var oldestBorn int64
	for i := range candidates {
		born, ok := candidates[i].Born()
		if !ok {
			continue
		}
		if oldest == nil || born.Unix() < oldestBorn {
			oldest = &candidates[i]
			oldestBorn = born.Unix()
		}
	}
	if oldest != nil {
		return oldest
	}
	return &candidates[0]
}
