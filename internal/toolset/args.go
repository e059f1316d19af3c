// args.go — typed argument extraction from the decoded arguments map. By
// the time a handler runs, ValidateArguments has already enforced shape and
// type per tool's JSON Schema, so these helpers assume well-formed input and
// only handle the JSON-number-is-float64 and optional-field conventions.
package toolset

import "github.com/ashfox/ashfox-mcp/internal/project"

func strArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func strPtrArg(args map[string]any, key string) *string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	s, _ := v.(string)
	return &s
}

func boolArg(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func boolPtrArg(args map[string]any, key string) *bool {
	v, ok := args[key]
	if !ok {
		return nil
	}
	b, _ := v.(bool)
	return &b
}

func floatArg(args map[string]any, key string) float64 {
	v, _ := args[key].(float64)
	return v
}

func floatPtrArg(args map[string]any, key string) *float64 {
	v, ok := args[key]
	if !ok {
		return nil
	}
	f, _ := v.(float64)
	return &f
}

func intArg(args map[string]any, key string) int {
	return int(floatArg(args, key))
}

func intPtrArg(args map[string]any, key string) *int {
	f := floatPtrArg(args, key)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

func vec3Arg(args map[string]any, key string) project.Vec3 {
	v, _ := args[key].([]any)
	var out project.Vec3
	for i := 0; i < 3 && i < len(v); i++ {
		f, _ := v[i].(float64)
		out[i] = f
	}
	return out
}

func vec3PtrArg(args map[string]any, key string) *project.Vec3 {
	if _, ok := args[key]; !ok {
		return nil
	}
	v := vec3Arg(args, key)
	return &v
}

func floatSliceArg(args map[string]any, key string) []float64 {
	v, _ := args[key].([]any)
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	for i, e := range v {
		out[i], _ = e.(float64)
	}
	return out
}

func uvArg(args map[string]any, key string) *[2]float64 {
	v, ok := args[key].([]any)
	if !ok || len(v) != 2 {
		return nil
	}
	var out [2]float64
	out[0], _ = v[0].(float64)
	out[1], _ = v[1].(float64)
	return &out
}

func facesArg(args map[string]any, key string) map[string]project.FaceUV {
	raw, ok := args[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]project.FaceUV, len(raw))
	for face, v := range raw {
		obj, _ := v.(map[string]any)
		var fu project.FaceUV
		if uv, ok := obj["uv"].([]any); ok && len(uv) == 4 {
			for i := 0; i < 4; i++ {
				fu.UV[i], _ = uv[i].(float64)
			}
		}
		fu.Texture, _ = obj["texture"].(string)
		out[face] = fu
	}
	return out
}

func metaArg(args map[string]any, key string) map[string]any {
	v, _ := args[key].(map[string]any)
	return v
}
