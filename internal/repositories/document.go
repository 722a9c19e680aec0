package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

// TimestampLayout is fixed-width so stored timestamps sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

const schemaURL = "tasks.schema.json"

//go:embed schema/tasks.schema.json
var documentSchemaSource string

var documentSchema = mustCompileSchema()

type document struct {
	LastID int          `json:"lastId"`
	Tasks  []taskRecord `json:"tasks"`
}

type taskRecord struct {
	ID          int                  `json:"id"`
	Description string               `json:"description"`
	Status      constants.TaskStatus `json:"status"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
}

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(schemaURL, strings.NewReader(documentSchemaSource)); err != nil {
		panic(fmt.Sprintf("add task document schema: %v", err))
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile task document schema: %v", err))
	}
	return schema
}

func encodeDocument(collection model.TaskCollection) ([]byte, error) {
	doc := document{
		LastID: collection.LastID,
		Tasks:  make([]taskRecord, 0, len(collection.Tasks)),
	}
	for _, task := range collection.Tasks {
		doc.Tasks = append(doc.Tasks, taskRecord{
			ID:          task.ID,
			Description: task.Description,
			Status:      task.Status,
			CreatedAt:   formatTimestamp(task.CreatedAt),
			UpdatedAt:   formatTimestamp(task.UpdatedAt),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task document: %w", err)
	}

	// Never write a document that Load would reject.
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("reparse task document: %w", err)
	}
	if err := documentSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate task document: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeDocument(data []byte) (model.TaskCollection, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.TaskCollection{}, fmt.Errorf("parse task document: %w", err)
	}
	if err := documentSchema.Validate(raw); err != nil {
		return model.TaskCollection{}, fmt.Errorf("validate task document: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.TaskCollection{}, fmt.Errorf("decode task document: %w", err)
	}

	collection := model.TaskCollection{
		LastID: doc.LastID,
		Tasks:  make([]model.Task, 0, len(doc.Tasks)),
	}
	seen := make(map[int]struct{}, len(doc.Tasks))

	for i, record := range doc.Tasks {
		if _, dup := seen[record.ID]; dup {
			return model.TaskCollection{}, fmt.Errorf("tasks[%d]: duplicate id %d", i, record.ID)
		}
		seen[record.ID] = struct{}{}

		createdAt, err := parseTimestamp(record.CreatedAt)
		if err != nil {
			return model.TaskCollection{}, fmt.Errorf("tasks[%d].createdAt: %w", i, err)
		}
		updatedAt, err := parseTimestamp(record.UpdatedAt)
		if err != nil {
			return model.TaskCollection{}, fmt.Errorf("tasks[%d].updatedAt: %w", i, err)
		}

		collection.Tasks = append(collection.Tasks, model.Task{
			ID:          record.ID,
			Description: record.Description,
			Status:      record.Status,
			CreatedAt:   createdAt,
			UpdatedAt:   updatedAt,
		})
	}

	return collection, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
