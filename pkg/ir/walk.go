package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Children returns the direct sub types of t in declaration order.
func Children(t AnyType) []AnyType {
	switch v := t.(type) {
	case Array:
		return []AnyType{v.Element}
	case Dictionary:
		return []AnyType{v.Value}
	case Union:
		return v.Members
	case Intersect:
		return v.Members
	case Record:
		out := make([]AnyType, 0, len(v.Fields))
		for _, f := range v.Fields {
			out = append(out, f.Type)
		}
		return out
	}
	return nil
}

// CollectNamed returns the distinct Named references reachable inside t,
// in first occurrence order. It does not follow the references themselves.
func CollectNamed(t AnyType) []Named {
	var out []Named
	seen := map[string]bool{}
	var walk func(AnyType)
	walk = func(t AnyType) {
		if t == nil {
			return
		}
		if n, ok := t.(Named); ok {
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n)
			}
			return
		}
		for _, c := range Children(t) {
			walk(c)
		}
	}
	walk(t)
	return out
}

// Format renders t as a compact, language neutral expression used in reports and
// diagnostics, e.g. record(id: number, tag?: string).
func Format(t AnyType) string {
	var b strings.Builder
	format(&b, t)
	return b.String()
}

func format(b *strings.Builder, t AnyType) {
	switch v := t.(type) {
	case nil:
		b.WriteString("<nil>")
	case Literal:
		b.WriteString("literal(")
		b.WriteString(formatLiteral(v.Value))
		b.WriteString(")")
	case Array:
		if v.Readonly {
			b.WriteString("readonly ")
		}
		b.WriteString("array(")
		format(b, v.Element)
		b.WriteString(")")
	case Dictionary:
		b.WriteString("dictionary(")
		format(b, v.Value)
		b.WriteString(")")
	case Union:
		formatList(b, "union", v.Members)
	case Intersect:
		formatList(b, "intersect", v.Members)
	case Named:
		b.WriteString("named(")
		b.WriteString(v.Name)
		b.WriteString(")")
	case Record:
		b.WriteString("record(")
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			if f.Readonly {
				b.WriteString("readonly ")
			}
			b.WriteString(f.Name)
			if f.Nullable {
				b.WriteString("?")
			}
			b.WriteString(": ")
			format(b, f.Type)
		}
		b.WriteString(")")
	default:
		b.WriteString(string(t.Kind()))
	}
}

func formatList(b *strings.Builder, name string, members []AnyType) {
	b.WriteString(name)
	b.WriteString("(")
	for i, m := range members {
		if i > 0 {
			b.WriteString(", ")
		}
		format(b, m)
	}
	b.WriteString(")")
}

func formatLiteral(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

// String returns "default", the status class ("4XX") or the numeric code
func (s ResponseStatus) String() string {
	if s.Default {
		return "default"
	}
	if s.Range {
		return strconv.Itoa(s.Code/100) + "XX"
	}
	return strconv.Itoa(s.Code)
}
