// schema.go — per-tool JSON Schema definitions and the compiled-schema
// cache (spec.md §4.3 "Validate arguments against the tool's JSON Schema
// (additionalProperties: false enforced)"). Schemas are literal
// map[string]any values compiled once via santhosh-tekuri/jsonschema/v6,
// following the sync.Once compile-cache pattern used for CLI schema
// loading elsewhere in the retrieval pack.
package toolset

import (
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

func vec3Schema() map[string]any {
	return map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "number"},
		"minItems": 3,
		"maxItems": 3,
	}
}

func faceUVSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"uv": map[string]any{
				"type": "array", "items": map[string]any{"type": "number"}, "minItems": 4, "maxItems": 4,
			},
			"texture": map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	}
}

// toolSchemas maps tool name to its JSON Schema for arguments.
var toolSchemas = map[string]map[string]any{
	"get_project_state": {
		"type":                 "object",
		"properties":           map[string]any{},
		"additionalProperties": false,
	},
	"add_bone": {
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"parent":     map[string]any{"type": "string"},
			"pivot":      vec3Schema(),
			"rotation":   vec3Schema(),
			"scale":      vec3Schema(),
			"visibility": map[string]any{"type": "boolean"},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name", "pivot"},
		"additionalProperties": false,
	},
	"update_bone": {
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"newName":    map[string]any{"type": "string"},
			"parent":     map[string]any{"type": "string"},
			"pivot":      vec3Schema(),
			"rotation":   vec3Schema(),
			"scale":      vec3Schema(),
			"visibility": map[string]any{"type": "boolean"},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	},
	"delete_bone": {
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"policy":     map[string]any{"type": "string", "enum": []any{"cascade", "reparent"}},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	},
	"add_cube": {
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 1},
			"bone": map[string]any{"type": "string", "minLength": 1},
			"from": vec3Schema(),
			"to":   vec3Schema(),
			"uv": map[string]any{
				"type": "array", "items": map[string]any{"type": "number"}, "minItems": 2, "maxItems": 2,
			},
			"inflate":    map[string]any{"type": "number"},
			"mirror":     map[string]any{"type": "boolean"},
			"faces":      map[string]any{"type": "object", "additionalProperties": faceUVSchema()},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name", "bone", "from", "to"},
		"additionalProperties": false,
	},
	"update_cube": {
		"type": "object",
		"properties": map[string]any{
			"name":    map[string]any{"type": "string", "minLength": 1},
			"newName": map[string]any{"type": "string"},
			"bone":    map[string]any{"type": "string"},
			"from":    vec3Schema(),
			"to":      vec3Schema(),
			"uv": map[string]any{
				"type": "array", "items": map[string]any{"type": "number"}, "minItems": 2, "maxItems": 2,
			},
			"inflate":    map[string]any{"type": "number"},
			"mirror":     map[string]any{"type": "boolean"},
			"faces":      map[string]any{"type": "object", "additionalProperties": faceUVSchema()},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	},
	"delete_cube": {
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	},
	"add_texture": {
		"type": "object",
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"width":       map[string]any{"type": "integer", "minimum": 1},
			"height":      map[string]any{"type": "integer", "minimum": 1},
			"contentHash": map[string]any{"type": "string"},
			"meta":        map[string]any{"type": "object"},
			"ifRevision":  map[string]any{"type": "string"},
		},
		"required":             []any{"name", "width", "height"},
		"additionalProperties": false,
	},
	"update_texture": {
		"type": "object",
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"newName":     map[string]any{"type": "string"},
			"width":       map[string]any{"type": "integer", "minimum": 1},
			"height":      map[string]any{"type": "integer", "minimum": 1},
			"contentHash": map[string]any{"type": "string"},
			"meta":        map[string]any{"type": "object"},
			"ifRevision":  map[string]any{"type": "string"},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	},
	"delete_texture": {
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	},
	"add_animation": {
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"length":     map[string]any{"type": "number", "exclusiveMinimum": 0},
			"loop":       map[string]any{"type": "boolean"},
			"fps":        map[string]any{"type": "number", "exclusiveMinimum": 0},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name", "length", "fps"},
		"additionalProperties": false,
	},
	"update_animation": {
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"newName":    map[string]any{"type": "string"},
			"length":     map[string]any{"type": "number", "exclusiveMinimum": 0},
			"loop":       map[string]any{"type": "boolean"},
			"fps":        map[string]any{"type": "number", "exclusiveMinimum": 0},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	},
	"delete_animation": {
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	},
	"set_keyframe": {
		"type": "object",
		"properties": map[string]any{
			"animation": map[string]any{"type": "string", "minLength": 1},
			"bone":      map[string]any{"type": "string", "minLength": 1},
			"channel":   map[string]any{"type": "string", "enum": []any{"rot", "pos", "scale"}},
			"time":      map[string]any{"type": "number"},
			"value":     vec3Schema(),
			"interp":    map[string]any{"type": "string"},
			"easing":    map[string]any{"type": "string"},
			"easingArgs": map[string]any{
				"type": "array", "items": map[string]any{"type": "number"},
			},
			"pre":        vec3Schema(),
			"post":       vec3Schema(),
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"animation", "bone", "channel", "time", "value"},
		"additionalProperties": false,
	},
	"delete_keyframe": {
		"type": "object",
		"properties": map[string]any{
			"animation":  map[string]any{"type": "string", "minLength": 1},
			"bone":       map[string]any{"type": "string", "minLength": 1},
			"channel":    map[string]any{"type": "string", "enum": []any{"rot", "pos", "scale"}},
			"time":       map[string]any{"type": "number"},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"animation", "bone", "channel", "time"},
		"additionalProperties": false,
	},
	"set_trigger_key": {
		"type": "object",
		"properties": map[string]any{
			"animation":  map[string]any{"type": "string", "minLength": 1},
			"type":       map[string]any{"type": "string", "enum": []any{"sound", "particle", "timeline"}},
			"time":       map[string]any{"type": "number"},
			"value":      map[string]any{},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"animation", "type", "time", "value"},
		"additionalProperties": false,
	},
	"export_internal": {
		"type": "object",
		"properties": map[string]any{
			"geometryName": map[string]any{"type": "string", "minLength": 1},
			"writeTo":      map[string]any{"type": "string"},
			"ifRevision":   map[string]any{"type": "string"},
		},
		"required":             []any{"geometryName"},
		"additionalProperties": false,
	},
	"apply_pose_preset": {
		"type": "object",
		"properties": map[string]any{
			"animation": map[string]any{"type": "string", "minLength": 1},
			"time":      map[string]any{"type": "number"},
			"bones": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"bone":     map[string]any{"type": "string", "minLength": 1},
						"rotation": vec3Schema(),
					},
					"required":             []any{"bone", "rotation"},
					"additionalProperties": false,
				},
			},
			"ifRevision": map[string]any{"type": "string"},
		},
		"required":             []any{"animation", "time", "bones"},
		"additionalProperties": false,
	},
	"generate_walk_cycle": {
		"type": "object",
		"properties": map[string]any{
			"animation": map[string]any{"type": "string", "minLength": 1},
			"length":    map[string]any{"type": "number", "exclusiveMinimum": 0},
			"legBones": map[string]any{
				"type":     "array",
				"minItems": 2,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
			"swingDegrees": map[string]any{"type": "number"},
			"ifRevision":   map[string]any{"type": "string"},
		},
		"required":             []any{"animation", "length", "legBones"},
		"additionalProperties": false,
	},
}

var (
	compileOnce sync.Once
	compiler    *jsonschema.Compiler
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func schemaURL(name string) string {
	return "mem://ashfox/tools/" + name + ".schema.json"
}

func getCompiledSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for name, schema := range toolSchemas {
			if err := c.AddResource(schemaURL(name), schema); err != nil {
				compileErr = fmt.Errorf("register schema %s: %w", name, err)
				return
			}
		}
		out := make(map[string]*jsonschema.Schema, len(toolSchemas))
		for name := range toolSchemas {
			s, err := c.Compile(schemaURL(name))
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			out[name] = s
		}
		compiler = c
		compiled = out
	})
	return compiled, compileErr
}

// ValidateArguments validates args against tool's compiled schema, and
// returns the first failing instance path on failure (spec.md §4.3.2).
func ValidateArguments(tool string, args map[string]any) error {
	schemas, err := getCompiledSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[tool]
	if !ok {
		return fmt.Errorf("no schema registered for tool %q", tool)
	}
	return schema.Validate(args)
}

// Schema returns the raw JSON Schema literal for a tool, for discovery
// responses (tools/list inputSchema).
func Schema(tool string) (map[string]any, bool) {
	s, ok := toolSchemas[tool]
	return s, ok
}
