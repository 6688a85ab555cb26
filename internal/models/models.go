package models

// JSONValue is a generic type to represent any JSON value.
// Concrete values are nil, bool, float64, string, JSONArray or *JSONObject.
type JSONValue interface{}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// JSONMember is a single key/value entry of a JSONObject.
type JSONMember struct {
	Key   string
	Value JSONValue
}

// JSONObject represents a JSON object whose members keep their insertion order.
type JSONObject struct {
	members []JSONMember
	index   map[string]int
}

// NewJSONObject creates an empty object with room for n members.
func NewJSONObject(n int) *JSONObject {
	return &JSONObject{
		members: make([]JSONMember, 0, n),
		index:   make(map[string]int, n),
	}
}

// Set adds key with value. An existing key keeps its position and takes the new value.
func (o *JSONObject) Set(key string, value JSONValue) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, JSONMember{Key: key, Value: value})
}

// Get returns the value stored under key and whether the key is present.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Keys returns the keys in insertion order.
func (o *JSONObject) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns the members in insertion order. The slice must not be modified.
func (o *JSONObject) Members() []JSONMember {
	if o == nil {
		return nil
	}
	return o.members
}

// Len returns the number of members.
func (o *JSONObject) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Kind classifies a JSONValue.
type Kind string

const (
	KindNull    Kind = "null"
	KindBoolean Kind = "boolean"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindUnknown Kind = "unknown"
)

// KindOf reports the JSON kind of v.
func KindOf(v JSONValue) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case float64:
		return KindNumber
	case string:
		return KindString
	case JSONArray:
		return KindArray
	case *JSONObject:
		return KindObject
	default:
		return KindUnknown
	}
}

// Document holds a parsed JSON document.
type Document struct {
	Root     JSONValue
	RootKind Kind
}
