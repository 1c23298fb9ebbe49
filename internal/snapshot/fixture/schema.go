package fixture

// schemaDocument is the JSON Schema a fixture file must satisfy before it is
// decoded. Kept as a Go literal (compiled once per Load) rather than an
// embedded file, in the manner of the teacher's inline schema construction
// in internal/schema.
var schemaDocument = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"required": []any{
		"rooms", "interviewers", "jobs", "applicants", "applications", "slots",
	},
	"properties": map[string]any{
		"rooms": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "name"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer"},
					"name": map[string]any{"type": "string"},
				},
			},
		},
		"interviewers": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id"},
				"properties": map[string]any{
					"id":         map[string]any{"type": "integer"},
					"first_name": map[string]any{"type": "string"},
					"last_name":  map[string]any{"type": "string"},
				},
			},
		},
		"jobs": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id"},
				"properties": map[string]any{
					"id":         map[string]any{"type": "integer"},
					"name":       map[string]any{"type": "string"},
					"p1":         map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
					"p2":         map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
					"p3":         map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
					"require_p1": map[string]any{"type": "boolean"},
					"ignore":     map[string]any{"type": "boolean"},
				},
			},
		},
		"applicants": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer"},
					"name": map[string]any{"type": "string"},
				},
			},
		},
		"applications": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"applicant_id", "job_id"},
				"properties": map[string]any{
					"applicant_id": map[string]any{"type": "integer"},
					"job_id":       map[string]any{"type": "integer"},
					"withdrawn":    map[string]any{"type": "boolean"},
					"confirmed":    map[string]any{"type": "boolean"},
					"slot_id":      map[string]any{"type": []any{"integer", "null"}},
				},
			},
		},
		"slots": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "room_id", "start", "end"},
				"properties": map[string]any{
					"id":      map[string]any{"type": "integer"},
					"room_id": map[string]any{"type": "integer"},
					"start":   map[string]any{"type": "string", "format": "date-time"},
					"end":     map[string]any{"type": "string", "format": "date-time"},
				},
			},
		},
		"applicant_busy": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"applicant_id", "begin", "end"},
				"properties": map[string]any{
					"applicant_id": map[string]any{"type": "integer"},
					"begin":        map[string]any{"type": "string", "format": "date-time"},
					"end":          map[string]any{"type": "string", "format": "date-time"},
				},
			},
		},
		"interviewer_busy": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"interviewer_id", "begin", "end"},
				"properties": map[string]any{
					"interviewer_id": map[string]any{"type": "integer"},
					"begin":          map[string]any{"type": "string", "format": "date-time"},
					"end":            map[string]any{"type": "string", "format": "date-time"},
					"room_id":        map[string]any{"type": []any{"integer", "null"}},
				},
			},
		},
	},
}
