package blocks

import (
	"testing"

	"github.com/google/uuid"
)

func TestRegistrySeedsBuiltinTypes(t *testing.T) {
	registry := NewRegistry()

	for _, blockType := range Types() {
		def := registry.Get(blockType)
		if def == nil {
			t.Fatalf("missing definition for %s", blockType)
		}
		if def.ID == uuid.Nil {
			t.Fatalf("%s definition has no id", blockType)
		}
		if def.Schema == nil {
			t.Fatalf("%s definition has no schema", blockType)
		}
	}

	if len(registry.List()) != len(Types()) {
		t.Fatalf("expected %d definitions, got %d", len(Types()), len(registry.List()))
	}
}

func TestRegistryDefinitionIDsAreStable(t *testing.T) {
	first := NewRegistry().Get(TypeLink).ID
	second := NewRegistry().Get(TypeLink).ID
	if first != second {
		t.Fatalf("definition id changed between bootstraps: %s vs %s", first, second)
	}
}

func TestValidateContentAcceptsDefaults(t *testing.T) {
	registry := NewRegistry()

	for _, blockType := range Types() {
		if err := registry.ValidateContent(blockType, DefaultContent(blockType)); err != nil {
			t.Fatalf("default content for %s rejected: %v", blockType, err)
		}
	}
}

func TestValidateContentRejectsUnknownFields(t *testing.T) {
	registry := NewRegistry()

	err := registry.ValidateContent(TypeLink, map[string]any{
		"title":   "Docs",
		"url":     "https://example.com",
		"tooltip": "extra",
	})
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestValidateContentAllowsVisibilityFlag(t *testing.T) {
	registry := NewRegistry()

	if err := registry.ValidateContent(TypeText, map[string]any{
		"text":       "hello",
		"is_visible": false,
	}); err != nil {
		t.Fatalf("visibility flag rejected: %v", err)
	}
}

func TestValidateContentPassesUnknownTypes(t *testing.T) {
	registry := NewRegistry()

	if err := registry.ValidateContent(Type("carousel"), map[string]any{"anything": true}); err != nil {
		t.Fatalf("unknown type should be opaque: %v", err)
	}
}

func TestValidateContentNilPayload(t *testing.T) {
	registry := NewRegistry()

	if err := registry.ValidateContent(TypeSeparator, nil); err != nil {
		t.Fatalf("nil content for separator rejected: %v", err)
	}
}
