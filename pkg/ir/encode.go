package ir

// Encode converts t into a tagged tree of maps and slices that encodes
// deterministically with encoding/json and gopkg.in/yaml.v3.
func Encode(t AnyType) map[string]any {
	if t == nil {
		return nil
	}
	out := map[string]any{"kind": string(t.Kind())}
	switch v := t.(type) {
	case Literal:
		out["value"] = v.Value
	case Array:
		out["element"] = Encode(v.Element)
		if v.Readonly {
			out["readonly"] = true
		}
	case Dictionary:
		out["value"] = Encode(v.Value)
	case Union:
		out["members"] = encodeList(v.Members)
	case Intersect:
		out["members"] = encodeList(v.Members)
	case Named:
		out["name"] = v.Name
	case Record:
		fields := make([]map[string]any, 0, len(v.Fields))
		for _, f := range v.Fields {
			field := map[string]any{
				"name":     f.Name,
				"type":     Encode(f.Type),
				"nullable": f.Nullable,
			}
			if f.Readonly {
				field["readonly"] = true
			}
			fields = append(fields, field)
		}
		out["fields"] = fields
	}
	return out
}

func encodeList(members []AnyType) []map[string]any {
	out := make([]map[string]any, 0, len(members))
	for _, m := range members {
		out = append(out, Encode(m))
	}
	return out
}
