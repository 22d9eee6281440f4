// Package llm - output_schema.go describes the JSON a prompt expects back.
package llm

import (
	"fmt"
	"strings"
)

// OutputSchema defines the structure a model is asked to return.
type OutputSchema struct {
	Name      string        // Schema name (e.g., "Hooks")
	ArrayKey  string        // When set, the fields describe items of this top-level array
	ItemCount int           // Requested number of array items
	Fields    []SchemaField // Expected output fields
}

// SchemaField defines a single field in the output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "number"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildOutputInstructions renders the "return exactly this JSON" section of a prompt.
func BuildOutputInstructions(schema OutputSchema) string {
	var sb strings.Builder

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	indent := "  "
	if schema.ArrayKey != "" {
		sb.WriteString(fmt.Sprintf("{\n  %q: [\n    {\n", schema.ArrayKey))
		indent = "      "
	} else {
		sb.WriteString("{\n")
	}

	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("%s%q: %s%s", indent, field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	if schema.ArrayKey != "" {
		sb.WriteString("    }\n  ]\n}\n")
		if schema.ItemCount > 0 {
			sb.WriteString(fmt.Sprintf("The %q array must contain exactly %d objects.\n", schema.ArrayKey, schema.ItemCount))
		}
	} else {
		sb.WriteString("}\n")
	}

	sb.WriteString("Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	return sb.String()
}

// HooksSchema is the output schema for the ten-hook generation prompt.
func HooksSchema(count int) OutputSchema {
	return OutputSchema{
		Name:      "Hooks",
		ArrayKey:  "hooks",
		ItemCount: count,
		Fields: []SchemaField{
			{Name: "verbalHook", Type: "string", Description: "the spoken opening line", Required: true},
			{Name: "visualHook", Type: "string", Description: "what the viewer sees in the first second", Required: true},
			{Name: "textualHook", Type: "string", Description: "short on-screen text overlay", Required: true},
			{Name: "framework", Type: "string", Description: "copywriting framework name, e.g. Open Loop", Required: true},
			{Name: "rationale", Type: "string", Description: "one sentence on why it stops the scroll", Required: false},
		},
	}
}

// RewriteSchema is the output schema for a single verbal-line rewrite.
func RewriteSchema() OutputSchema {
	return OutputSchema{
		Name: "Rewrite",
		Fields: []SchemaField{
			{Name: "verbalHook", Type: "string", Description: "the rewritten spoken line only", Required: true},
		},
	}
}

// JudgeSchema is the output schema for optional hook judging.
func JudgeSchema() OutputSchema {
	return OutputSchema{
		Name: "Judge",
		Fields: []SchemaField{
			{Name: "curiosity", Type: "number", Description: "0.0-1.0, how strongly it opens a curiosity gap", Required: true},
			{Name: "clarity", Type: "number", Description: "0.0-1.0, how instantly it is understood", Required: true},
			{Name: "brand_fit", Type: "number", Description: "0.0-1.0, fit with the brand voice", Required: true},
			{Name: "reasoning", Type: "string", Description: "one short sentence", Required: false},
		},
	}
}
