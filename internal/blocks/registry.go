package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pagehaven/go-builder/internal/identity"
	"github.com/google/uuid"
)

// Definition describes one block type: its content schema, creation
// defaults, and the icon shown in the editor component picker.
type Definition struct {
	ID       uuid.UUID
	Type     Type
	Icon     string
	Schema   map[string]any
	Defaults map[string]any
}

// Registry holds the built-in block definitions and their compiled content
// schemas. All definitions are seeded with deterministic IDs so repeated
// bootstraps stay stable.
type Registry struct {
	mu       sync.RWMutex
	byType   map[Type]*Definition
	compiled map[Type]*jsonschema.Schema
}

// NewRegistry constructs a registry pre-loaded with the built-in block set.
func NewRegistry() *Registry {
	r := &Registry{
		byType:   make(map[Type]*Definition),
		compiled: make(map[Type]*jsonschema.Schema),
	}
	for _, def := range builtinDefinitions() {
		r.register(def)
	}
	return r
}

func (r *Registry) register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if def.ID == uuid.Nil {
		def.ID = identity.BlockDefinitionUUID(string(def.Type))
	}
	r.byType[def.Type] = def
}

// Get returns the definition for a block type, or nil for unknown types.
func (r *Registry) Get(t Type) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byType[t]
}

// List returns every registered definition in presentation order.
func (r *Registry) List() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Definition, 0, len(r.byType))
	for _, t := range Types() {
		if def, ok := r.byType[t]; ok {
			out = append(out, def)
		}
	}
	return out
}

// ValidateContent checks a content payload against the type's schema.
// Unknown types pass: forward compatibility treats them as opaque.
func (r *Registry) ValidateContent(t Type, content map[string]any) error {
	def := r.Get(t)
	if def == nil || def.Schema == nil {
		return nil
	}

	schema, err := r.compile(t, def.Schema)
	if err != nil {
		return fmt.Errorf("blocks: compile schema for %s: %w", t, err)
	}
	if content == nil {
		content = map[string]any{}
	}
	if err := schema.Validate(normalizeForSchema(content)); err != nil {
		return &ContentValidationError{Type: t, Cause: err}
	}
	return nil
}

func (r *Registry) compile(t Type, schema map[string]any) (*jsonschema.Schema, error) {
	r.mu.RLock()
	cached, ok := r.compiled[t]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.compiled[t] = compiled
	r.mu.Unlock()
	return compiled, nil
}

// normalizeForSchema round-trips the payload through JSON typing so schema
// validation sees the same shapes the store produces.
func normalizeForSchema(content map[string]any) any {
	encoded, err := json.Marshal(content)
	if err != nil {
		return content
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return content
	}
	return normalized
}

func builtinDefinitions() []*Definition {
	stringProp := func() map[string]any { return map[string]any{"type": "string"} }
	urlProp := func() map[string]any { return map[string]any{"type": "string"} }

	objectSchema := func(props map[string]any) map[string]any {
		props["is_visible"] = map[string]any{"type": "boolean"}
		return map[string]any{
			"type":                 "object",
			"properties":           props,
			"additionalProperties": false,
		}
	}

	linksSchema := func(entry map[string]any) map[string]any {
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"properties":           entry,
				"additionalProperties": false,
			},
		}
	}

	return []*Definition{
		{
			Type: TypeHeader,
			Icon: "user",
			Schema: objectSchema(map[string]any{
				"title":    stringProp(),
				"subtitle": stringProp(),
				"url":      urlProp(),
			}),
			Defaults: DefaultContent(TypeHeader),
		},
		{
			Type: TypeSocialGrid,
			Icon: "share",
			Schema: objectSchema(map[string]any{
				"links": linksSchema(map[string]any{
					"icon": stringProp(),
					"url":  urlProp(),
				}),
			}),
			Defaults: DefaultContent(TypeSocialGrid),
		},
		{
			Type:     TypeSeparator,
			Icon:     "minus",
			Schema:   objectSchema(map[string]any{}),
			Defaults: DefaultContent(TypeSeparator),
		},
		{
			Type: TypeTitle,
			Icon: "heading",
			Schema: objectSchema(map[string]any{
				"title": stringProp(),
				"align": map[string]any{
					"type": "string",
					"enum": []any{"left", "center", "right"},
				},
			}),
			Defaults: DefaultContent(TypeTitle),
		},
		{
			Type: TypeText,
			Icon: "text",
			Schema: objectSchema(map[string]any{
				"text": stringProp(),
			}),
			Defaults: DefaultContent(TypeText),
		},
		{
			Type: TypeHero,
			Icon: "image-plus",
			Schema: objectSchema(map[string]any{
				"title": stringProp(),
				"text":  stringProp(),
				"url":   urlProp(),
			}),
			Defaults: DefaultContent(TypeHero),
		},
		{
			Type: TypeLink,
			Icon: "link",
			Schema: objectSchema(map[string]any{
				"title": stringProp(),
				"url":   urlProp(),
			}),
			Defaults: DefaultContent(TypeLink),
		},
		{
			Type: TypeDoubleLink,
			Icon: "columns",
			Schema: objectSchema(map[string]any{
				"links": linksSchema(map[string]any{
					"label": stringProp(),
					"url":   urlProp(),
				}),
			}),
			Defaults: DefaultContent(TypeDoubleLink),
		},
		{
			Type: TypeFile,
			Icon: "file",
			Schema: objectSchema(map[string]any{
				"title": stringProp(),
				"url":   urlProp(),
			}),
			Defaults: DefaultContent(TypeFile),
		},
		{
			Type: TypeImage,
			Icon: "image",
			Schema: objectSchema(map[string]any{
				"title": stringProp(),
				"url":   urlProp(),
			}),
			Defaults: DefaultContent(TypeImage),
		},
		{
			Type: TypeEmbed,
			Icon: "code",
			Schema: objectSchema(map[string]any{
				"url": urlProp(),
			}),
			Defaults: DefaultContent(TypeEmbed),
		},
	}
}
