package parser

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/blimu-dev/schema-ir/pkg/ir"
	"github.com/blimu-dev/schema-ir/pkg/openapi"
	"github.com/getkin/kin-openapi/openapi3"
)

// numericFormats are accepted as numbers on schemas that omit type
var numericFormats = []string{"float", "int32", "int64"}

// Lowerer converts schema objects into ir types.
//
// Lowering never follows a $ref: a reference becomes ir.Named and the target is
// lowered once at its own declaration site. That is what keeps recursive and
// mutually recursive schemas finite.
type Lowerer struct {
	order  *openapi.KeyOrder
	logger *slog.Logger
}

// NewLowerer creates a Lowerer. order may be nil, in which case mapping keys are
// visited alphabetically.
func NewLowerer(order *openapi.KeyOrder, logger *slog.Logger) *Lowerer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Lowerer{order: order, logger: logger}
}

// Lower converts the schema at ptr into an ir type.
func (l *Lowerer) Lower(sr *openapi3.SchemaRef, ptr string) (ir.AnyType, error) {
	if sr == nil {
		return nil, &UnsupportedSchemaShapeError{Pointer: ptr, Type: "undefined"}
	}
	if sr.Ref != "" {
		name, err := ResolveSchemaName(sr.Ref)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ptr, err)
		}
		return ir.Named{Name: name}, nil
	}
	if sr.Value == nil {
		return nil, &UnsupportedSchemaShapeError{Pointer: ptr, Type: "undefined"}
	}
	return l.lowerSchema(sr.Value, ptr)
}

func (l *Lowerer) lowerSchema(s *openapi3.Schema, ptr string) (ir.AnyType, error) {
	types := schemaTypes(s)
	nonNull := slices.DeleteFunc(slices.Clone(types), func(t string) bool { return t == "null" })
	hasNull := len(nonNull) != len(types)

	switch {
	case len(types) == 0:
		return l.lowerUntyped(s, ptr)
	case len(nonNull) == 0:
		return ir.Null{}, nil
	case len(nonNull) > 1:
		return nil, &UnsupportedSchemaShapeError{Pointer: ptr, Type: strings.Join(types, ",")}
	}

	t, err := l.lowerTyped(s, nonNull[0], ptr)
	if err != nil {
		return nil, err
	}
	if hasNull {
		return ir.Union{Members: []ir.AnyType{t, ir.Null{}}}, nil
	}
	return t, nil
}

func (l *Lowerer) lowerTyped(s *openapi3.Schema, typ, ptr string) (ir.AnyType, error) {
	switch typ {
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return ir.Number{}, nil
	case openapi3.TypeBoolean:
		return ir.Boolean{}, nil
	case openapi3.TypeString:
		if len(s.Enum) > 0 {
			return enumUnion(s.Enum), nil
		}
		return ir.String{}, nil
	case openapi3.TypeArray:
		if s.Items == nil {
			return nil, &MissingItemsError{Pointer: ptr}
		}
		elem, err := l.Lower(s.Items, openapi.Join(ptr, "items"))
		if err != nil {
			return nil, err
		}
		return ir.Array{Element: elem, Readonly: s.ReadOnly}, nil
	case openapi3.TypeObject:
		return l.lowerObject(s, ptr)
	}
	return nil, &UnsupportedSchemaShapeError{Pointer: ptr, Type: typ}
}

// lowerUntyped handles schemas without a type keyword
func (l *Lowerer) lowerUntyped(s *openapi3.Schema, ptr string) (ir.AnyType, error) {
	switch {
	case len(s.AllOf) > 0:
		return l.lowerAllOf(s, ptr)
	case len(s.OneOf) > 0:
		return l.lowerAlternatives(s.OneOf, openapi.Join(ptr, "oneOf"))
	case len(s.AnyOf) > 0:
		return l.lowerAlternatives(s.AnyOf, openapi.Join(ptr, "anyOf"))
	case slices.Contains(numericFormats, s.Format):
		l.logger.Warn("schema without type has a numeric format, treating it as number",
			"pointer", ptr, "format", s.Format)
		return ir.Number{}, nil
	}
	return nil, &UnsupportedSchemaShapeError{Pointer: ptr, Type: "undefined"}
}

func (l *Lowerer) lowerObject(s *openapi3.Schema, ptr string) (ir.AnyType, error) {
	switch {
	case len(s.AllOf) > 0:
		return l.lowerAllOf(s, ptr)
	case len(s.OneOf) > 0:
		return l.lowerAlternatives(s.OneOf, openapi.Join(ptr, "oneOf"))
	case len(s.AnyOf) > 0:
		return l.lowerAlternatives(s.AnyOf, openapi.Join(ptr, "anyOf"))
	}

	var addl ir.AnyType
	if s.AdditionalProperties.Schema != nil {
		v, err := l.Lower(s.AdditionalProperties.Schema, openapi.Join(ptr, "additionalProperties"))
		if err != nil {
			return nil, err
		}
		addl = ir.Dictionary{Value: v}
	}

	if len(s.Properties) == 0 {
		if addl != nil {
			return addl, nil
		}
		return ir.Dictionary{Value: ir.Unknown{}}, nil
	}

	rec, err := l.lowerProperties(s, ptr)
	if err != nil {
		return nil, err
	}
	if addl != nil {
		return ir.Intersect{Members: []ir.AnyType{rec, addl}}, nil
	}
	return rec, nil
}

func (l *Lowerer) lowerProperties(s *openapi3.Schema, ptr string) (ir.Record, error) {
	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}
	propsPtr := openapi.Join(ptr, "properties")
	names := openapi.Keys(l.order, propsPtr, s.Properties)
	fields := make([]ir.RecordField, 0, len(names))
	for _, name := range names {
		pr := s.Properties[name]
		t, err := l.Lower(pr, openapi.Join(propsPtr, name))
		if err != nil {
			return ir.Record{}, err
		}
		// a $ref property has no readOnly of its own
		readonly := false
		if pr != nil && pr.Ref == "" && pr.Value != nil {
			readonly = pr.Value.ReadOnly
		}
		fields = append(fields, ir.RecordField{
			Name:     name,
			Type:     t,
			Nullable: !required[name],
			Readonly: readonly,
		})
	}
	return ir.Record{Fields: fields}, nil
}

// lowerAllOf flattens the record branches of an allOf composition into one
// record, in listed order. Branches that do not lower to a record (including
// references, which are never followed) cannot be expressed and are dropped.
// Properties declared next to allOf are merged as a trailing branch.
func (l *Lowerer) lowerAllOf(s *openapi3.Schema, ptr string) (ir.AnyType, error) {
	var fields []ir.RecordField
	merge := func(rec ir.Record) {
		for _, f := range rec.Fields {
			i := slices.IndexFunc(fields, func(x ir.RecordField) bool { return x.Name == f.Name })
			if i >= 0 {
				// last one wins, keeping the first position
				fields[i] = f
				continue
			}
			fields = append(fields, f)
		}
	}

	for i, branch := range s.AllOf {
		bptr := openapi.Join(ptr, "allOf", strconv.Itoa(i))
		t, err := l.Lower(branch, bptr)
		if err != nil {
			return nil, err
		}
		rec, ok := t.(ir.Record)
		if !ok {
			l.logger.Debug("dropping allOf branch that is not a record",
				"pointer", bptr, "kind", string(t.Kind()))
			continue
		}
		merge(rec)
	}

	if len(s.Properties) > 0 {
		rec, err := l.lowerProperties(s, ptr)
		if err != nil {
			return nil, err
		}
		merge(rec)
	}
	return ir.Record{Fields: fields}, nil
}

func (l *Lowerer) lowerAlternatives(branches openapi3.SchemaRefs, ptr string) (ir.AnyType, error) {
	members := make([]ir.AnyType, 0, len(branches))
	for i, b := range branches {
		t, err := l.Lower(b, openapi.Join(ptr, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		members = append(members, t)
	}
	return ir.Union{Members: members}, nil
}

// enumUnion keeps the declared order and duplicates of the enum values
func enumUnion(values []any) ir.Union {
	members := make([]ir.AnyType, 0, len(values))
	for _, v := range values {
		if v == nil {
			members = append(members, ir.Null{})
			continue
		}
		lit, ok := ir.NewLiteral(v)
		if !ok {
			lit = ir.Literal{Value: fmt.Sprint(v)}
		}
		members = append(members, lit)
	}
	return ir.Union{Members: members}
}

func schemaTypes(s *openapi3.Schema) []string {
	if s.Type == nil {
		return nil
	}
	return []string(*s.Type)
}
