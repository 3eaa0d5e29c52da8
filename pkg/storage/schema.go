package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidDocument indicates a workspace document that does not match its schema.
var ErrInvalidDocument = errors.New("invalid workspace document")

// SchemaError lists the schema violations of a workspace document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "invalid workspace document: " + strings.Join(e.Problems, "; ")
}

// Is allows errors.Is to match ErrInvalidDocument.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidDocument
}

const dateSchema = `{ "type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}" }`

const portfolioSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["projects"],
  "properties": {
    "name": { "type": "string" },
    "timeframe": {
      "type": "object",
      "properties": {
        "start_date": ` + dateSchema + `,
        "end_date": ` + dateSchema + `
      }
    },
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "start_date", "end_date", "budget"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "name": { "type": "string" },
          "status": { "enum": ["planning", "active", "on_hold", "completed", "cancelled"] },
          "start_date": ` + dateSchema + `,
          "end_date": ` + dateSchema + `,
          "actual_end_date": ` + dateSchema + `,
          "status_date": ` + dateSchema + `,
          "budget": {
            "type": "object",
            "required": ["total"],
            "properties": {
              "total": { "type": "number", "minimum": 0 },
              "spent": { "type": "number", "minimum": 0 }
            }
          },
          "revenue": { "type": "number" },
          "costs": { "type": "number" },
          "ratings": { "type": "array", "items": { "type": "number", "minimum": 1, "maximum": 5 } },
          "risks": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "status"],
              "properties": {
                "id": { "type": "string" },
                "status": { "enum": ["active", "mitigated", "resolved"] },
                "exposure": { "type": "number", "minimum": 0 }
              }
            }
          },
          "issues": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "opened_at"],
              "properties": {
                "id": { "type": "string" },
                "opened_at": ` + dateSchema + `,
                "resolved_at": ` + dateSchema + `
              }
            }
          },
          "resources": {
            "type": "object",
            "properties": {
              "available_hours": { "type": "number", "minimum": 0 },
              "used_hours": { "type": "number", "minimum": 0 }
            }
          },
          "required_skills": { "type": "array", "items": { "type": "string" } },
          "team_skills": { "type": "array", "items": { "type": "string" } },
          "progress": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "planned_value", "planned_start_date", "planned_end_date"],
              "properties": {
                "id": { "type": "string", "minLength": 1 },
                "title": { "type": "string" },
                "planned_value": { "type": "number" },
                "actual_cost": { "type": "number" },
                "percent_complete": { "type": "number", "minimum": 0, "maximum": 100 },
                "planned_start_date": ` + dateSchema + `,
                "planned_end_date": ` + dateSchema + `,
                "weight": { "type": "number" }
              }
            }
          },
          "history": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["date", "cpi", "spi"],
              "properties": {
                "date": ` + dateSchema + `,
                "cpi": { "type": "number" },
                "spi": { "type": "number" },
                "cv": { "type": "number" },
                "sv": { "type": "number" }
              }
            }
          },
          "cost_entries": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["category", "planned_amount", "actual_amount"],
              "properties": {
                "id": { "type": "string" },
                "task_id": { "type": "string" },
                "category": { "type": "string", "minLength": 1 },
                "planned_amount": { "type": "number" },
                "actual_amount": { "type": "number" },
                "date": ` + dateSchema + `
              }
            }
          }
        }
      }
    },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "project_id": { "type": "string" },
          "status": { "type": "string" },
          "rework_count": { "type": "integer", "minimum": 0 }
        }
      }
    }
  }
}`

var portfolioSchemaLoader = gojsonschema.NewStringLoader(portfolioSchemaJSON)

// ValidateDocument checks a decoded portfolio document against the portfolio schema.
func ValidateDocument(doc any) error {
	result, err := gojsonschema.Validate(portfolioSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to validate portfolio: %w", err)
	}
	if result.Valid() {
		return nil
	}

	serr := &SchemaError{}
	for _, desc := range result.Errors() {
		serr.Problems = append(serr.Problems, desc.String())
	}
	return serr
}
