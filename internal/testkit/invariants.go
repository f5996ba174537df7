package testkit

import (
	"fmt"
	"strconv"

	"jsonfix/internal/jsonv"
)

// CheckSortedKeys verifies that every object in v has its keys in the given
// order: non-decreasing for Ascending, non-increasing for Descending.
// Unsorted accepts anything.
func CheckSortedKeys(v jsonv.Value, order jsonv.Order) error {
	return checkSorted(v, order, "$")
}

func checkSorted(v jsonv.Value, order jsonv.Order, path string) error {
	switch v.Kind {
	case jsonv.Array:
		for i, item := range v.Items {
			if err := checkSorted(item, order, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	case jsonv.Object:
		keys := v.Keys()
		for i := 1; i < len(keys); i++ {
			prev, key := keys[i-1], keys[i]
			if order == jsonv.Ascending && prev > key {
				return fmt.Errorf("%s: key %q after %q breaks ascending order", path, key, prev)
			}
			if order == jsonv.Descending && prev < key {
				return fmt.Errorf("%s: key %q after %q breaks descending order", path, key, prev)
			}
		}
		for _, m := range v.Members {
			if err := checkSorted(m.Value, order, path+"."+m.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckSameContent verifies that a and b hold the same data. When
// ignoreOrder is set, object members may appear in any order; array
// element order always matters.
func CheckSameContent(a, b jsonv.Value, ignoreOrder bool) error {
	if jsonv.Equal(a, b) {
		return nil
	}
	return sameContent(a, b, ignoreOrder, "$")
}

func sameContent(a, b jsonv.Value, ignoreOrder bool, path string) error {
	if a.Kind != b.Kind {
		return fmt.Errorf("%s: kind %s != %s", path, a.Kind, b.Kind)
	}
	switch a.Kind {
	case jsonv.Bool:
		if a.Bool != b.Bool {
			return fmt.Errorf("%s: %v != %v", path, a.Bool, b.Bool)
		}
	case jsonv.Number:
		if a.Num != b.Num {
			return fmt.Errorf("%s: %s != %s", path, a.Num, b.Num)
		}
	case jsonv.String:
		if a.Str != b.Str {
			return fmt.Errorf("%s: %q != %q", path, a.Str, b.Str)
		}
	case jsonv.Array:
		if len(a.Items) != len(b.Items) {
			return fmt.Errorf("%s: %d items != %d items", path, len(a.Items), len(b.Items))
		}
		for i := range a.Items {
			if err := sameContent(a.Items[i], b.Items[i], ignoreOrder, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	case jsonv.Object:
		if len(a.Members) != len(b.Members) {
			return fmt.Errorf("%s: %d members != %d members", path, len(a.Members), len(b.Members))
		}
		for i, m := range a.Members {
			other := b.Members[i]
			if ignoreOrder {
				var ok bool
				if other.Value, ok = b.Get(m.Key); !ok {
					return fmt.Errorf("%s: key %q missing", path, m.Key)
				}
				other.Key = m.Key
			}
			if other.Key != m.Key {
				return fmt.Errorf("%s: key #%d %q != %q", path, i, m.Key, other.Key)
			}
			if err := sameContent(m.Value, other.Value, ignoreOrder, path+"."+m.Key); err != nil {
				return err
			}
		}
	}
	return nil
}
