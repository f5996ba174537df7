package jsonv

// Kind enumerates JSON value kinds.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Value is a parsed JSON value. Objects keep their members in source order.
// Parse stores numbers in the shortest form that denotes the same double.
type Value struct {
	Kind    Kind
	Bool    bool
	Num     string
	Str     string
	Items   []Value
	Members []Member
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

func NullValue() Value             { return Value{Kind: Null} }
func BoolValue(b bool) Value       { return Value{Kind: Bool, Bool: b} }
func NumberValue(lit string) Value { return Value{Kind: Number, Num: lit} }
func StringValue(s string) Value   { return Value{Kind: String, Str: s} }
func ArrayValue(items ...Value) Value {
	return Value{Kind: Array, Items: items}
}
func ObjectValue(members ...Member) Value {
	return Value{Kind: Object, Members: members}
}

// Get returns the value stored under key in an object.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns object keys in member order.
func (v Value) Keys() []string {
	if v.Kind != Object {
		return nil
	}
	keys := make([]string, len(v.Members))
	for i, m := range v.Members {
		keys[i] = m.Key
	}
	return keys
}

// Equal reports structural equality. Member order is significant.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Null:
		return true
	case Bool:
		return a.Bool == b.Bool
	case Number:
		return a.Num == b.Num
	case String:
		return a.Str == b.Str
	case Array:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.Members) != len(b.Members) {
			return false
		}
		for i := range a.Members {
			if a.Members[i].Key != b.Members[i].Key || !Equal(a.Members[i].Value, b.Members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
