package story

// Reachable returns the set of sections a reader can visit from the start
// section. It is empty when the start section is not defined.
func (st *Story) Reachable() map[Identifier]bool {
	seen := make(map[Identifier]bool)
	if _, ok := st.sections[st.start]; !ok {
		return seen
	}

	queue := []Identifier{st.start}
	seen[st.start] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range st.sections[id].choices {
			if c.Goto.Reserved() != NotReserved || seen[c.Goto] {
				continue
			}
			seen[c.Goto] = true
			queue = append(queue, c.Goto)
		}
	}
	return seen
}

// Unreachable returns the sections, in source order, that cannot be visited
// from the start section.
func (st *Story) Unreachable() []*Section {
	seen := st.Reachable()
	var out []*Section
	for _, id := range st.order {
		if !seen[id] {
			out = append(out, st.sections[id])
		}
	}
	return out
}
