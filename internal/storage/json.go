package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasklist-go/internal/task"
)

// SchemaVersion is the export format version.
const SchemaVersion = 1

const schemaURL = "tasks.schema.json"

//go:embed tasks.schema.json
var schemaJSON []byte

// Export is the JSON document written by ExportJSON.
type Export struct {
	SchemaVersion int          `json:"schema_version"`
	Tasks         []ExportTask `json:"tasks"`
}

// ExportTask is one task in an Export.
type ExportTask struct {
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	DueDate     string `json:"due_date"`
	Completed   bool   `json:"completed"`
}

// ValidationError is a schema violation at a JSON path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult collects every schema violation in a document.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Err joins the violations into one error, or returns nil.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("invalid task export: %s", strings.Join(msgs, "; "))
}

// ExportJSON writes tasks as an indented JSON document with a trailing newline.
func ExportJSON(w io.Writer, tasks []task.Task) error {
	doc := Export{
		SchemaVersion: SchemaVersion,
		Tasks:         make([]ExportTask, 0, len(tasks)),
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, ExportTask{
			Description: t.Description,
			Priority:    int(t.Priority),
			DueDate:     t.Due(),
			Completed:   t.Completed,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ValidateJSON checks data against the embedded export schema.
func ValidateJSON(data []byte) (*ValidationResult, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	result := &ValidationResult{Valid: true, Errors: make([]error, 0)}
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result, nil
}

// ImportJSON validates and decodes an export document.
func ImportJSON(data []byte) ([]task.Task, error) {
	result, err := ValidateJSON(data)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	var doc Export
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	tasks := make([]task.Task, 0, len(doc.Tasks))
	for i, et := range doc.Tasks {
		desc := strings.TrimSpace(et.Description)
		if err := task.ValidateDescription(desc); err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("tasks[%d].description", i), Err: err}
		}
		priority, err := task.ParsePriority(strconv.Itoa(et.Priority))
		if err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("tasks[%d].priority", i), Err: err}
		}
		due, err := task.ParseDueDate(et.DueDate)
		if err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("tasks[%d].due_date", i), Err: err}
		}
		tasks = append(tasks, task.Task{
			Description: desc,
			Priority:    priority,
			DueDate:     due,
			Completed:   et.Completed,
		})
	}
	return tasks, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load export schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile export schema: %w", err)
	}
	return schema, nil
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/tasks/0/priority" into "tasks[0].priority".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
