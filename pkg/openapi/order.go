package openapi

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"
	"gopkg.in/yaml.v3"
)

// KeyOrder records the document order of the keys of every mapping in a
// source document, indexed by JSON pointer (without the leading '#').
// kin-openapi decodes mappings into Go maps, which lose that order.
type KeyOrder struct {
	keys map[string]map[string]int
}

// swaggerContainers maps top level Swagger 2.0 containers to the location
// they occupy after conversion to OpenAPI 3.
var swaggerContainers = map[string]string{
	"definitions": "/components/schemas",
	"parameters":  "/components/parameters",
	"responses":   "/components/responses",
}

// NewKeyOrder builds a KeyOrder from a parsed YAML (or JSON) document node.
// When swagger is true, top level Swagger 2.0 containers are indexed under
// their OpenAPI 3 locations.
func NewKeyOrder(root *yaml.Node, swagger bool) *KeyOrder {
	o := &KeyOrder{keys: map[string]map[string]int{}}
	if root == nil {
		return o
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return o
	}
	o.record("", root)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		ptr := Pointer(key)
		if swagger {
			if mapped, ok := swaggerContainers[key]; ok {
				ptr = mapped
			}
		}
		o.walk(ptr, root.Content[i+1], 0)
	}
	return o
}

// maxDepth bounds the walk over pathological (or alias looped) documents
const maxDepth = 256

func (o *KeyOrder) walk(ptr string, n *yaml.Node, depth int) {
	if n == nil || depth > maxDepth {
		return
	}
	if n.Kind == yaml.AliasNode {
		n = n.Alias
		if n == nil {
			return
		}
	}
	switch n.Kind {
	case yaml.MappingNode:
		o.record(ptr, n)
		for i := 0; i+1 < len(n.Content); i += 2 {
			o.walk(Join(ptr, n.Content[i].Value), n.Content[i+1], depth+1)
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			o.walk(Join(ptr, strconv.Itoa(i)), c, depth+1)
		}
	}
}

func (o *KeyOrder) record(ptr string, n *yaml.Node) {
	pos := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if _, dup := pos[n.Content[i].Value]; !dup {
			pos[n.Content[i].Value] = i / 2
		}
	}
	o.keys[ptr] = pos
}

// Sort returns keys ordered as they appear in the mapping at ptr. Keys that
// the index does not know (or a nil KeyOrder) sort alphabetically after the
// known ones. The input slice is not modified.
func (o *KeyOrder) Sort(ptr string, keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	var pos map[string]int
	if o != nil {
		pos = o.keys[ptr]
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, iok := pos[out[i]]
		pj, jok := pos[out[j]]
		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// Has reports whether the mapping at ptr was indexed.
func (o *KeyOrder) Has(ptr string) bool {
	if o == nil {
		return false
	}
	_, ok := o.keys[ptr]
	return ok
}

// Keys returns the sorted keys of m, see Sort.
func Keys[V any](o *KeyOrder, ptr string, m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return o.Sort(ptr, keys)
}

// Pointer builds a JSON pointer from raw (unescaped) reference tokens.
func Pointer(tokens ...string) string {
	return Join("", tokens...)
}

// Join appends raw reference tokens to an existing pointer.
func Join(ptr string, tokens ...string) string {
	var b strings.Builder
	b.WriteString(ptr)
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(jsonpointer.Escape(t))
	}
	return b.String()
}
