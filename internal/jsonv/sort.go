package jsonv

import "sort"

// Order selects how SortKeys arranges object members.
type Order uint8

const (
	Unsorted Order = iota
	Ascending
	Descending
)

// SortKeys returns a copy of v with the members of every object ordered by
// byte-wise key comparison. Array element order is kept. Unsorted (and any
// unknown order) returns v as is. v is never modified.
func SortKeys(v Value, order Order) Value {
	if order != Ascending && order != Descending {
		return v
	}
	return sortValue(v, order)
}

func sortValue(v Value, order Order) Value {
	switch v.Kind {
	case Array:
		items := make([]Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = sortValue(item, order)
		}
		v.Items = items
	case Object:
		members := make([]Member, len(v.Members))
		for i, m := range v.Members {
			members[i] = Member{Key: m.Key, Value: sortValue(m.Value, order)}
		}
		sort.SliceStable(members, func(i, j int) bool {
			if order == Descending {
				return members[i].Key > members[j].Key
			}
			return members[i].Key < members[j].Key
		})
		v.Members = members
	}
	return v
}
