package links

// Group is one category's slice of the link sequence.
type Group struct {
	Category string
	Links    []Link
}

// GroupByCategory orders groups by where each category first shows up in
// links, not by registry order. Links keep their relative order.
func GroupByCategory(links []Link) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, l := range links {
		i, ok := index[l.Category]
		if !ok {
			i = len(groups)
			index[l.Category] = i
			groups = append(groups, Group{Category: l.Category})
		}
		groups[i].Links = append(groups[i].Links, l)
	}
	return groups
}
