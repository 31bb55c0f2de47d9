package charmeta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// correctedMarkers are the inline suffixes the source dataset used to flag a
// hand-corrected value. Import strips them and records the fact in the
// explicit Provenance field instead.
var correctedMarkers = []string{"（corrected）", "(corrected)"}

// datasetSchema validates an import file before any row is decoded.
const datasetSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"character":        {"type": "string", "minLength": 1},
			"readings":         {"type": "array", "items": {"type": "string"}, "minItems": 1},
			"radical":          {"type": "string"},
			"stroke_count":     {"type": "integer", "minimum": 0},
			"structure":        {"type": "string"},
			"example_words":    {"type": "array", "items": {"type": "string"}},
			"example_sentence": {"type": "string"},
			"gloss":            {"type": "string"},
			"gloss_zh":         {"type": "string"},
			"frequency_rank":   {"type": "integer", "minimum": 1}
		},
		"required": ["character", "readings", "frequency_rank"],
		"additionalProperties": false
	}
}`

// datasetEntry mirrors one raw record of the import file. Provenance is
// still string-encoded here; ParseDataset converts it to tagged fields.
type datasetEntry struct {
	Character       string   `json:"character"`
	Readings        []string `json:"readings"`
	Radical         string   `json:"radical"`
	StrokeCount     int      `json:"stroke_count"`
	Structure       string   `json:"structure"`
	ExampleWords    []string `json:"example_words"`
	ExampleSentence string   `json:"example_sentence"`
	Gloss           string   `json:"gloss"`
	GlossZh         string   `json:"gloss_zh"`
	FrequencyRank   int      `json:"frequency_rank"`
}

// ParseDataset reads, validates, and converts a JSON character dataset.
func ParseDataset(r io.Reader) ([]*CharacterItem, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	compiled, err := compileDatasetSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("dataset schema validation failed: %w", err)
	}

	var entries []datasetEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	items := make([]*CharacterItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, &CharacterItem{
			Character:       e.Character,
			Readings:        trimAll(e.Readings),
			Radical:         taggedField(e.Radical),
			StrokeCount:     e.StrokeCount,
			Structure:       taggedField(e.Structure),
			ExampleWords:    NormalizeExampleWords(e.ExampleWords),
			ExampleSentence: taggedField(e.ExampleSentence),
			Gloss:           taggedField(e.Gloss),
			GlossZh:         taggedField(e.GlossZh),
			FrequencyRank:   e.FrequencyRank,
		})
	}
	return items, nil
}

// Import parses a dataset and writes every record into the sqlite repository.
func Import(ctx context.Context, repo *SQLiteRepository, r io.Reader) (int, error) {
	items, err := ParseDataset(r)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		if err := repo.Put(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

// taggedField strips a trailing corrected marker and tags the provenance.
func taggedField(value string) Field {
	value = strings.TrimSpace(value)
	for _, marker := range correctedMarkers {
		if strings.HasSuffix(value, marker) {
			return Field{
				Value:      strings.TrimSpace(strings.TrimSuffix(value, marker)),
				Provenance: ProvenanceCorrected,
			}
		}
	}
	return Field{Value: value, Provenance: ProvenancePage}
}

func trimAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func compileDatasetSchema() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal([]byte(datasetSchema), &def); err != nil {
		return nil, fmt.Errorf("parse dataset schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	const url = "schema://character-dataset.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile dataset schema: %w", err)
	}
	return compiled, nil
}
