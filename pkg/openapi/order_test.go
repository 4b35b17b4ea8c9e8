package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func keyOrder(t *testing.T, src string, swagger bool) *KeyOrder {
	t.Helper()
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &root))
	return NewKeyOrder(&root, swagger)
}

func TestKeyOrder_Sort(t *testing.T) {
	o := keyOrder(t, `
components:
  schemas:
    Zebra: {}
    Apple: {}
    Mango:
      properties:
        z: {}
        a: {}
paths:
  /b/{id}:
    post: {}
    get: {}
`, false)

	assert.Equal(t, []string{"Zebra", "Apple", "Mango"},
		o.Sort("/components/schemas", []string{"Apple", "Mango", "Zebra"}))
	assert.Equal(t, []string{"z", "a"},
		o.Sort("/components/schemas/Mango/properties", []string{"a", "z"}))
	assert.Equal(t, []string{"post", "get"},
		o.Sort(Pointer("paths", "/b/{id}"), []string{"get", "post"}))

	t.Run("unknown keys sort last", func(t *testing.T) {
		assert.Equal(t, []string{"Zebra", "Apple", "Banana", "Cherry"},
			o.Sort("/components/schemas", []string{"Cherry", "Apple", "Banana", "Zebra"}))
	})

	t.Run("unknown mapping is alphabetical", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, o.Sort("/nowhere", []string{"b", "a"}))
	})

	t.Run("input is not modified", func(t *testing.T) {
		in := []string{"Apple", "Zebra"}
		o.Sort("/components/schemas", in)
		assert.Equal(t, []string{"Apple", "Zebra"}, in)
	})
}

func TestKeyOrder_Nil(t *testing.T) {
	var o *KeyOrder
	assert.Equal(t, []string{"a", "b", "c"}, o.Sort("/x", []string{"c", "a", "b"}))
	assert.False(t, o.Has("/x"))
	assert.Equal(t, []string{"a", "b"}, Keys(o, "/x", map[string]int{"b": 1, "a": 2}))
}

func TestKeyOrder_Has(t *testing.T) {
	o := keyOrder(t, `{"paths": {"/a": {"get": {}}}}`, false)
	assert.True(t, o.Has(""))
	assert.True(t, o.Has("/paths"))
	assert.True(t, o.Has("/paths/~1a"))
	assert.False(t, o.Has("/components"))
}

func TestKeyOrder_Swagger(t *testing.T) {
	o := keyOrder(t, `
swagger: "2.0"
definitions:
  Zebra:
    properties:
      stripes: {}
      age: {}
  Apple: {}
parameters:
  page: {}
  limit: {}
`, true)

	assert.Equal(t, []string{"Zebra", "Apple"}, o.Sort("/components/schemas", []string{"Apple", "Zebra"}))
	assert.Equal(t, []string{"stripes", "age"}, o.Sort("/components/schemas/Zebra/properties", []string{"age", "stripes"}))
	assert.Equal(t, []string{"page", "limit"}, o.Sort("/components/parameters", []string{"limit", "page"}))
	assert.False(t, o.Has("/definitions"))
}

func TestKeyOrder_Aliases(t *testing.T) {
	o := keyOrder(t, `
base: &base
  second: {}
  first: {}
copy: *base
`, false)
	assert.Equal(t, []string{"second", "first"}, o.Sort("/copy", []string{"first", "second"}))
}

func TestPointer(t *testing.T) {
	assert.Equal(t, "", Pointer())
	assert.Equal(t, "/paths/~1pets~1{id}/get", Pointer("paths", "/pets/{id}", "get"))
	assert.Equal(t, "/a/b~0c", Join("/a", "b~c"))
}
