// store.go — static and templated resource listing/reading.
// Adapted from the teacher's cmd/dev-console/mcp_resources.go fixed
// resource catalog, with the project-model-specific playbook templates
// described in SPEC_FULL.md §4.7 replacing the browser-devtools demo set.
package resourcestore

import (
	"fmt"
	"strings"

	"github.com/ashfox/ashfox-mcp/internal/mcptypes"
)

// Store serves the server's fixed and templated resources. It is
// read-mostly after construction and safe for concurrent use.
type Store struct {
	fixed     map[string]fixedResource
	templates []mcptypes.ResourceTemplate
}

type fixedResource struct {
	resource mcptypes.Resource
	text     string
}

// New builds the default resource store.
func New() *Store {
	s := &Store{fixed: make(map[string]fixedResource)}
	for _, f := range defaultFixedResources() {
		s.fixed[f.resource.URI] = f
	}
	s.templates = defaultTemplates()
	return s
}

// List returns the fixed resource catalog.
func (s *Store) List() []mcptypes.Resource {
	out := make([]mcptypes.Resource, 0, len(s.fixed))
	for _, f := range s.fixed {
		out = append(out, f.resource)
	}
	return out
}

// ListTemplates returns the templated resource catalog.
func (s *Store) ListTemplates() []mcptypes.ResourceTemplate {
	return s.templates
}

// Read resolves uri to its content. Templated URIs
// (ashfox://playbook/{capability}/{level}) are resolved on demand; unknown
// URIs return ok=false, surfaced by the router as JSON-RPC -32602
// (spec.md §4.7).
func (s *Store) Read(uri string) (mcptypes.ResourceContent, bool) {
	if f, ok := s.fixed[uri]; ok {
		return mcptypes.ResourceContent{URI: uri, MimeType: f.resource.MimeType, Text: f.text}, true
	}
	if text, ok := resolvePlaybook(uri); ok {
		return mcptypes.ResourceContent{URI: uri, MimeType: "text/markdown", Text: text}, true
	}
	return mcptypes.ResourceContent{}, false
}

const playbookPrefix = "ashfox://playbook/"

func resolvePlaybook(uri string) (string, bool) {
	if !strings.HasPrefix(uri, playbookPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(uri, playbookPrefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	capability, level := parts[0], parts[1]
	body, known := playbookBodies[capability]
	if !known {
		return "", false
	}
	if level == "quick" {
		return body.quick, true
	}
	if level == "full" {
		return body.full, true
	}
	return "", false
}

type playbook struct{ quick, full string }

var playbookBodies = map[string]playbook{
	"model": {
		quick: "# model quick\nadd_bone -> add_cube -> get_project_state for the revision.",
		full:  "# model full\n1. add_bone{name,pivot}\n2. add_cube{name,bone,from,to,ifRevision}\n3. Inspect get_project_state for the bones/cubes tree and current revision.\nCube `bone` must reference an existing bone name; deletion cascades to descendants unless reparent policy is requested.",
	},
	"texture": {
		quick: "# texture quick\nadd_texture -> set cube uv within resolution.",
		full:  "# texture full\nTextures are capped at limits.maxTextureSize per axis. A cube's uv must fit the bound texture's resolution; replacing image bytes with identical hash+dimensions is a no_change no-op, not a new revision.",
	},
	"animation": {
		quick: "# animation quick\nadd_animation -> set_keyframe per (bone,channel,time).",
		full:  "# animation full\nChannels key on (bone, channel) with bucketed time (round(time/precision)*precision within timeEpsilon); same-bucket keys replace, not append. length>0 and fps>0 are required, length is capped at limits.maxAnimationSeconds.",
	},
	"export": {
		quick: "# export quick\nexport_internal returns geometry + animation artifacts deterministically.",
		full:  "# export full\nGeometry uses the mirrored-X origin convention (origin.x = -to.x). Animation rotation keys are Y-axis negated relative to the source; position/scale keys are not. Two exports of the same revision are byte-identical.",
	},
}

func defaultFixedResources() []fixedResource {
	return []fixedResource{
		{
			resource: mcptypes.Resource{
				URI:         "ashfox://capabilities",
				Name:        "Ashfox Capability Index",
				Description: "Compact capability index with task-to-playbook routing hints",
				MimeType:    "text/markdown",
			},
			text: "# Ashfox capabilities\n- model: bones, cubes\n- texture: textures and UV\n- animation: clips, channels, keyframes\n- export: deterministic internal export artifacts\n\nSee ashfox://guide for the full workflow and ashfox://playbook/{capability}/{level} for focused playbooks.",
		},
		{
			resource: mcptypes.Resource{
				URI:         "ashfox://guide",
				Name:        "Ashfox Usage Guide",
				Description: "How to use Ashfox MCP tools to build and export a project model",
				MimeType:    "text/markdown",
			},
			text: fmt.Sprintf("# Ashfox usage guide\n1. initialize, then tools/list to discover tools.\n2. get_project_state to read the current revision.\n3. Mutating tools (%s) require ifRevision matching the current revision unless called inside a composite proxy tool.\n4. export_internal produces byte-stable geometry + animation artifacts from the current snapshot.",
				"add_bone, update_bone, delete_bone, add_cube, update_cube, delete_cube, add_texture, update_texture, delete_texture, add_animation, update_animation, delete_animation, set_keyframe, delete_keyframe, set_trigger_key, apply_pose_preset, generate_walk_cycle"),
		},
		{
			resource: mcptypes.Resource{
				URI:         "ashfox://quickstart",
				Name:        "Ashfox MCP Quickstart",
				Description: "Short, canonical MCP call examples and workflows",
				MimeType:    "text/markdown",
			},
			text: "# Quickstart\n```json\n{\"jsonrpc\":\"2.0\",\"id\":1,\"method\":\"tools/call\",\"params\":{\"name\":\"add_bone\",\"arguments\":{\"name\":\"root\",\"pivot\":[0,0,0]}}}\n```",
		},
	}
}

func defaultTemplates() []mcptypes.ResourceTemplate {
	return []mcptypes.ResourceTemplate{
		{
			URITemplate: "ashfox://playbook/{capability}/{level}",
			Name:        "Ashfox Capability Playbook",
			Description: "On-demand playbooks for model, texture, animation, and export workflows. level is quick or full.",
			MimeType:    "text/markdown",
		},
	}
}
