// Package ir defines the intermediate type model produced from OpenAPI schema objects.
//
// Types form a closed set: every value implementing AnyType is one of the structs
// declared in this file. Cross references between declarations are expressed with
// Named, never by embedding the referenced type.
package ir

// Kind identifies the variant of an AnyType
type Kind string

const (
	KindBoolean    Kind = "boolean"
	KindNumber     Kind = "number"
	KindString     Kind = "string"
	KindNull       Kind = "null"
	KindUndefined  Kind = "undefined"
	KindUnknown    Kind = "unknown"
	KindNever      Kind = "never"
	KindSymbol     Kind = "symbol"
	KindLiteral    Kind = "literal"
	KindArray      Kind = "array"
	KindDictionary Kind = "dictionary"
	KindUnion      Kind = "union"
	KindIntersect  Kind = "intersect"
	KindNamed      Kind = "named"
	KindRecord     Kind = "record"
	KindFunction   Kind = "function"
)

// AnyType is a node of the intermediate type model.
type AnyType interface {
	Kind() Kind
	isAnyType()
}

// Leaf markers
type (
	Boolean   struct{}
	Number    struct{}
	String    struct{}
	Null      struct{}
	Undefined struct{}
	Unknown   struct{}
	Never     struct{}
	Symbol    struct{}
)

// Literal is a single literal value type. Value is a string, float64 or bool.
type Literal struct {
	Value any
}

// Array is a homogeneous sequence
type Array struct {
	Element  AnyType
	Readonly bool
}

// Dictionary is a string keyed mapping with an unbounded key set.
type Dictionary struct {
	Value AnyType
}

// Union is a sum of alternatives
type Union struct {
	Members []AnyType
}

// Intersect is a structural merge of its members
type Intersect struct {
	Members []AnyType
}

// Named refers to a declaration by its logical name. It is a lookup key, not ownership.
type Named struct {
	Name string
}

// Record is a structural object type
type Record struct {
	Fields []RecordField
}

// Function is an opaque placeholder for callable shaped schemas
type Function struct{}

// RecordField is a single field of a Record. Nullable is true when the field is not required.
type RecordField struct {
	Name     string
	Type     AnyType
	Nullable bool
	Readonly bool
}

func (Boolean) Kind() Kind    { return KindBoolean }
func (Number) Kind() Kind     { return KindNumber }
func (String) Kind() Kind     { return KindString }
func (Null) Kind() Kind       { return KindNull }
func (Undefined) Kind() Kind  { return KindUndefined }
func (Unknown) Kind() Kind    { return KindUnknown }
func (Never) Kind() Kind      { return KindNever }
func (Symbol) Kind() Kind     { return KindSymbol }
func (Literal) Kind() Kind    { return KindLiteral }
func (Array) Kind() Kind      { return KindArray }
func (Dictionary) Kind() Kind { return KindDictionary }
func (Union) Kind() Kind      { return KindUnion }
func (Intersect) Kind() Kind  { return KindIntersect }
func (Named) Kind() Kind      { return KindNamed }
func (Record) Kind() Kind     { return KindRecord }
func (Function) Kind() Kind   { return KindFunction }

func (Boolean) isAnyType()    {}
func (Number) isAnyType()     {}
func (String) isAnyType()     {}
func (Null) isAnyType()       {}
func (Undefined) isAnyType()  {}
func (Unknown) isAnyType()    {}
func (Never) isAnyType()      {}
func (Symbol) isAnyType()     {}
func (Literal) isAnyType()    {}
func (Array) isAnyType()      {}
func (Dictionary) isAnyType() {}
func (Union) isAnyType()      {}
func (Intersect) isAnyType()  {}
func (Named) isAnyType()      {}
func (Record) isAnyType()     {}
func (Function) isAnyType()   {}

// NewLiteral builds a Literal from a decoded document value.
// Integers are widened to float64. It reports false for values that are not
// a string, number or bool.
func NewLiteral(v any) (Literal, bool) {
	switch x := v.(type) {
	case string, bool, float64:
		return Literal{Value: x}, true
	case float32:
		return Literal{Value: float64(x)}, true
	case int:
		return Literal{Value: float64(x)}, true
	case int32:
		return Literal{Value: float64(x)}, true
	case int64:
		return Literal{Value: float64(x)}, true
	}
	return Literal{}, false
}

// Field returns the field with the given name.
func (r Record) Field(name string) (RecordField, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return RecordField{}, false
}

// ReferenceType is a named declaration taken from a schema container.
type ReferenceType struct {
	// Name is the logical identifier derived from Ref
	Name string
	// Ref is the declaring pointer, e.g. "#/components/schemas/Pet"
	Ref         string
	Type        AnyType
	Description string
}

// ParamKind is the location of a parameter
type ParamKind string

const (
	ParamQuery  ParamKind = "query"
	ParamHeader ParamKind = "header"
	ParamPath   ParamKind = "path"
	ParamCookie ParamKind = "cookie"
	ParamBody   ParamKind = "body"
)

// Param represents an operation parameter
type Param struct {
	Name        string
	Kind        ParamKind
	Required    bool
	Type        AnyType
	Description string
}

// ReferenceParam is a Param declared in the shared parameter table
type ReferenceParam struct {
	Param
	Ref string
}

// HTTPMethod is an upper case HTTP method name
type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPut     HTTPMethod = "PUT"
	MethodPost    HTTPMethod = "POST"
	MethodDelete  HTTPMethod = "DELETE"
	MethodOptions HTTPMethod = "OPTIONS"
	MethodHead    HTTPMethod = "HEAD"
	MethodPatch   HTTPMethod = "PATCH"
	MethodTrace   HTTPMethod = "TRACE"
)

// Operation represents a single API operation (path + method)
type Operation struct {
	OperationID string
	Method      HTTPMethod
	Path        string
	Deprecated  bool
	// Params holds path item parameters, then operation parameters, then the body.
	Params      []Param
	Description string
	Summary     string
	Tags        []string
	Responses   []APIResponse
}

// ResponseStatus is either a numeric status code, a status class such as 2XX
// (Range set, Code holding the first code of the class) or the default response
type ResponseStatus struct {
	Code    int
	Range   bool
	Default bool
}

// APIResponse represents one declared response of an operation
type APIResponse struct {
	Status           ResponseStatus
	Description      string
	Headers          []ResponseHeader
	BodyAlternatives []BodyAlternative
}

// ResponseHeader is a typed response header
type ResponseHeader struct {
	Name string
	Type AnyType
}

// BodyAlternative is one media type a body may be encoded with
type BodyAlternative struct {
	MimeType string
	Type     AnyType
}

// Model is the result of a parse: ordered declarations and operations.
type Model struct {
	// Version is the OpenAPI or Swagger version of the source document
	Version        string
	ReferenceTypes []ReferenceType
	Operations     []Operation
}

// Lookup returns the declaration with the given name.
func (m *Model) Lookup(name string) (ReferenceType, bool) {
	for _, rt := range m.ReferenceTypes {
		if rt.Name == name {
			return rt, true
		}
	}
	return ReferenceType{}, false
}
