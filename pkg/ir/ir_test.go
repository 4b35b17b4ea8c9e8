package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectNamed(t *testing.T) {
	nested := Record{Fields: []RecordField{
		{Name: "owner", Type: Named{Name: "Person"}},
		{Name: "pet", Type: Named{Name: "Animal"}},
		{Name: "helper", Type: Named{Name: "Robot"}},
	}}
	root := Record{Fields: []RecordField{
		{Name: "a", Type: Named{Name: "Person"}},
		{Name: "b", Type: Named{Name: "Animal"}},
		{Name: "c", Type: Named{Name: "Person"}},
		{Name: "d", Type: nested},
	}}

	got := CollectNamed(root)
	assert.Equal(t, []Named{{Name: "Person"}, {Name: "Animal"}, {Name: "Robot"}}, got)
}

func TestCollectNamed_Containers(t *testing.T) {
	tests := []struct {
		name string
		in   AnyType
		want []Named
	}{
		{"leaf", String{}, nil},
		{"named", Named{Name: "Pet"}, []Named{{Name: "Pet"}}},
		{"array", Array{Element: Named{Name: "Pet"}}, []Named{{Name: "Pet"}}},
		{"dictionary", Dictionary{Value: Array{Element: Named{Name: "Tag"}}}, []Named{{Name: "Tag"}}},
		{"union", Union{Members: []AnyType{Named{Name: "Cat"}, Null{}, Named{Name: "Dog"}}}, []Named{{Name: "Cat"}, {Name: "Dog"}}},
		{"intersect", Intersect{Members: []AnyType{Named{Name: "Base"}, Named{Name: "Base"}}}, []Named{{Name: "Base"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollectNamed(tt.in))
		})
	}
}

func TestNewLiteral(t *testing.T) {
	tests := []struct {
		in   any
		want any
		ok   bool
	}{
		{"available", "available", true},
		{true, true, true},
		{1.5, 1.5, true},
		{int64(3), float64(3), true},
		{7, float64(7), true},
		{nil, nil, false},
		{map[string]any{"a": 1}, nil, false},
	}
	for _, tt := range tests {
		lit, ok := NewLiteral(tt.in)
		assert.Equal(t, tt.ok, ok, "NewLiteral(%v)", tt.in)
		if ok {
			assert.Equal(t, tt.want, lit.Value)
		}
	}
}

func TestFormat(t *testing.T) {
	rec := Record{Fields: []RecordField{
		{Name: "id", Type: Number{}},
		{Name: "status", Type: Union{Members: []AnyType{Literal{Value: "a"}, Literal{Value: "b"}}}, Nullable: true},
		{Name: "tags", Type: Array{Element: Named{Name: "Tag"}, Readonly: true}, Readonly: true, Nullable: true},
		{Name: "meta", Type: Dictionary{Value: Unknown{}}, Nullable: true},
	}}
	assert.Equal(t,
		`record(id: number, status?: union(literal("a"), literal("b")), readonly tags?: readonly array(named(Tag)), meta?: dictionary(unknown))`,
		Format(rec))
	assert.Equal(t, "literal(42)", Format(Literal{Value: float64(42)}))
	assert.Equal(t, "never", Format(Never{}))
}

func TestEncode(t *testing.T) {
	rec := Record{Fields: []RecordField{
		{Name: "id", Type: Number{}},
		{Name: "owner", Type: Named{Name: "Person"}, Nullable: true},
	}}
	data, err := json.Marshal(Encode(rec))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "record",
		"fields": [
			{"name": "id", "nullable": false, "type": {"kind": "number"}},
			{"name": "owner", "nullable": true, "type": {"kind": "named", "name": "Person"}}
		]
	}`, string(data))
	assert.Nil(t, Encode(nil))
}

func TestModelLookup(t *testing.T) {
	m := &Model{ReferenceTypes: []ReferenceType{
		{Name: "Pet", Ref: "#/components/schemas/Pet", Type: Record{}},
	}}
	rt, ok := m.Lookup("Pet")
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Pet", rt.Ref)
	_, ok = m.Lookup("Missing")
	assert.False(t, ok)
}

func TestResponseStatusString(t *testing.T) {
	assert.Equal(t, "default", ResponseStatus{Default: true}.String())
	assert.Equal(t, "404", ResponseStatus{Code: 404}.String())
	assert.Equal(t, "2XX", ResponseStatus{Code: 200, Range: true}.String())
}
