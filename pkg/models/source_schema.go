package models

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// sourceConfigSchemas holds the JSON schema for each connector type's
// config blob. Servers expose these so editors can render forms; the
// service validates against them authoritatively on create and update.
var sourceConfigSchemas = map[SourceType]map[string]any{
	SourceTypeFilesystem: {
		"type": "object",
		"properties": map[string]any{
			"root_path": map[string]any{
				"type":        "string",
				"description": "Absolute path of the directory to index",
				"minLength":   1,
			},
			"include_patterns": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"follow_symlinks": map[string]any{"type": "boolean"},
		},
		"required": []any{"root_path"},
	},
	SourceTypeURL: {
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"format":      "uri",
				"description": "Page or feed URL to fetch",
			},
			"crawl_depth": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 5,
			},
			"refresh_minutes": map[string]any{
				"type":    "integer",
				"minimum": 1,
			},
		},
		"required": []any{"url"},
	},
	SourceTypeIFinder: {
		"type": "object",
		"properties": map[string]any{
			"endpoint":       map[string]any{"type": "string", "format": "uri"},
			"search_profile": map[string]any{"type": "string"},
			"api_key_ref":    map[string]any{"type": "string"},
		},
		"required": []any{"endpoint", "search_profile"},
	},
	SourceTypePage: {
		"type": "object",
		"properties": map[string]any{
			"title":   map[string]any{"type": "string", "minLength": 1},
			"content": map[string]any{"type": "string"},
		},
		"required": []any{"title"},
	},
}

// SourceConfigSchema returns the JSON schema document for a connector type.
func SourceConfigSchema(sourceType SourceType) (map[string]any, error) {
	schema, ok := sourceConfigSchemas[sourceType]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s", sourceType)
	}

	return schema, nil
}

// ValidateSourceConfig checks a config blob against the schema for its type.
func ValidateSourceConfig(sourceType SourceType, config map[string]any) error {
	schema, err := SourceConfigSchema(sourceType)
	if err != nil {
		return err
	}

	if config == nil {
		config = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	dataLoader := gojsonschema.NewGoLoader(config)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("failed to validate source config: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			messages = append(messages, resultError.String())
		}

		return fmt.Errorf("source config validation failed: %s", strings.Join(messages, "; "))
	}

	return nil
}
