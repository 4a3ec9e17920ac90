package doml

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueType tags the declared type of an attribute.
type ValueType string

const (
	TypeString  ValueType = "string"
	TypeInt     ValueType = "int"
	TypeFloat   ValueType = "float"
	TypeBool    ValueType = "bool"
	TypeUntyped ValueType = "untyped"
)

// ValueKind discriminates the variants of a Value.
type ValueKind string

const (
	KindString  ValueKind = "string"
	KindInt     ValueKind = "int"
	KindFloat   ValueKind = "float"
	KindBool    ValueKind = "bool"
	KindUnknown ValueKind = "unknown"
)

// Value is an attribute value in a semantic world. It is a tagged union
// over the primitive kinds plus the UNKNOWN sentinel. The zero Value is
// not a valid value; "no value" is expressed by the attribute key being
// absent from the element, never by a Value.
type Value struct {
	kind ValueKind
	str  string
	i    int64
	f    float64
	b    bool
}

// Unknown is the explicit "known to be unknown" value. It compares equal
// only to itself and is distinct from every primitive value and from an
// absent attribute.
var Unknown = Value{kind: KindUnknown}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue wraps an integer.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue wraps a float.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the variant of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsUnknown reports whether the value is the UNKNOWN sentinel.
func (v Value) IsUnknown() bool { return v.kind == KindUnknown }

// IsZero reports whether the value is the zero Value, i.e. not a value at
// all. Used by codecs to reject unset values.
func (v Value) IsZero() bool { return v.kind == "" }

// Equal reports value equality. UNKNOWN equals only UNKNOWN.
func (v Value) Equal(o Value) bool { return v == o }

// AsString returns the string payload if the value is a string.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInt returns the integer payload if the value is an int.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float payload if the value is a float.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsBool returns the bool payload if the value is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// True reports whether the value is the boolean true. UNKNOWN is not true.
func (v Value) True() bool { return v.kind == KindBool && v.b }

// Native returns the Go representation of the value. UNKNOWN maps to the
// UnknownToken string so that condition languages without a dedicated
// sentinel can still compare against it.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindUnknown:
		return UnknownToken
	}
	return nil
}

// UnknownToken is the representation of UNKNOWN outside the type system:
// in condition inputs and wire documents.
const UnknownToken = "UNKNOWN"

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindUnknown:
		return UnknownToken
	}
	return "<unset>"
}

// valueDoc is the wire form of a Value.
type valueDoc struct {
	Kind   ValueKind `json:"kind"`
	String *string   `json:"string,omitempty"`
	Int    *int64    `json:"int,omitempty"`
	Float  *float64  `json:"float,omitempty"`
	Bool   *bool     `json:"bool,omitempty"`
}

// MarshalJSON encodes the value in tagged form so that UNKNOWN survives
// the wire without being conflated with null or absence.
func (v Value) MarshalJSON() ([]byte, error) {
	doc := valueDoc{Kind: v.kind}
	switch v.kind {
	case KindString:
		doc.String = &v.str
	case KindInt:
		doc.Int = &v.i
	case KindFloat:
		doc.Float = &v.f
	case KindBool:
		doc.Bool = &v.b
	case KindUnknown:
		// kind alone carries the information
	default:
		return nil, fmt.Errorf("cannot marshal unset value")
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the tagged wire form.
func (v *Value) UnmarshalJSON(data []byte) error {
	var doc valueDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	switch doc.Kind {
	case KindString:
		if doc.String == nil {
			return fmt.Errorf("string value missing payload")
		}
		*v = StringValue(*doc.String)
	case KindInt:
		if doc.Int == nil {
			return fmt.Errorf("int value missing payload")
		}
		*v = IntValue(*doc.Int)
	case KindFloat:
		if doc.Float == nil {
			return fmt.Errorf("float value missing payload")
		}
		*v = FloatValue(*doc.Float)
	case KindBool:
		if doc.Bool == nil {
			return fmt.Errorf("bool value missing payload")
		}
		*v = BoolValue(*doc.Bool)
	case KindUnknown:
		*v = Unknown
	default:
		return fmt.Errorf("unknown value kind: %q", doc.Kind)
	}
	return nil
}
