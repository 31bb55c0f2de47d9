package charmeta

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLiteRepository reads character metadata from the `characters` table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository wraps an open database. The schema is owned by the
// store package's migration.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const characterColumns = `character, readings, radical, radical_prov, stroke_count,
	structure, structure_prov, example_words, example_sentence, example_sentence_prov,
	gloss, gloss_prov, gloss_zh, gloss_zh_prov, frequency_rank`

func (r *SQLiteRepository) Lookup(ctx context.Context, character string) (*CharacterItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE character = ?`, character)
	item, err := scanCharacter(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", character, err)
	}
	return item, nil
}

func (r *SQLiteRepository) RangeByFrequencyRank(ctx context.Context, lo, hi int) ([]*CharacterItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters
		 WHERE frequency_rank BETWEEN ? AND ?
		 ORDER BY frequency_rank, character`, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("range by rank [%d,%d]: %w", lo, hi, err)
	}
	defer rows.Close()
	return collectCharacters(rows)
}

func (r *SQLiteRepository) All(ctx context.Context) ([]*CharacterItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters ORDER BY frequency_rank, character`)
	if err != nil {
		return nil, fmt.Errorf("load all characters: %w", err)
	}
	defer rows.Close()
	return collectCharacters(rows)
}

func (r *SQLiteRepository) MaxFrequencyRank(ctx context.Context) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(frequency_rank) FROM characters`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max frequency rank: %w", err)
	}
	return int(max.Int64), nil
}

// Put inserts or replaces one character's metadata. Used by the import
// command; the practice paths never write this table.
func (r *SQLiteRepository) Put(ctx context.Context, item *CharacterItem) error {
	readings, err := json.Marshal(item.Readings)
	if err != nil {
		return fmt.Errorf("marshal readings for %q: %w", item.Character, err)
	}
	words, err := json.Marshal(item.ExampleWords)
	if err != nil {
		return fmt.Errorf("marshal example words for %q: %w", item.Character, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO characters (`+characterColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Character, string(readings),
		item.Radical.Value, string(item.Radical.Provenance), item.StrokeCount,
		item.Structure.Value, string(item.Structure.Provenance),
		string(words),
		item.ExampleSentence.Value, string(item.ExampleSentence.Provenance),
		item.Gloss.Value, string(item.Gloss.Provenance),
		item.GlossZh.Value, string(item.GlossZh.Provenance),
		item.FrequencyRank,
	)
	if err != nil {
		return fmt.Errorf("put %q: %w", item.Character, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (*CharacterItem, error) {
	var (
		item                        CharacterItem
		readings, words             string
		radicalProv, structureProv  string
		sentenceProv, glossProv     string
		glossZhProv                 string
	)
	err := row.Scan(
		&item.Character, &readings,
		&item.Radical.Value, &radicalProv, &item.StrokeCount,
		&item.Structure.Value, &structureProv,
		&words,
		&item.ExampleSentence.Value, &sentenceProv,
		&item.Gloss.Value, &glossProv,
		&item.GlossZh.Value, &glossZhProv,
		&item.FrequencyRank,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(readings), &item.Readings); err != nil {
		return nil, fmt.Errorf("decode readings for %q: %w", item.Character, err)
	}
	if words != "" {
		if err := json.Unmarshal([]byte(words), &item.ExampleWords); err != nil {
			return nil, fmt.Errorf("decode example words for %q: %w", item.Character, err)
		}
	}
	item.Radical.Provenance = Provenance(radicalProv)
	item.Structure.Provenance = Provenance(structureProv)
	item.ExampleSentence.Provenance = Provenance(sentenceProv)
	item.Gloss.Provenance = Provenance(glossProv)
	item.GlossZh.Provenance = Provenance(glossZhProv)
	return &item, nil
}

func collectCharacters(rows *sql.Rows) ([]*CharacterItem, error) {
	var out []*CharacterItem
	for rows.Next() {
		item, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
