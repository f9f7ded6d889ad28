package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"hr-chatbot/internal/models"

	"go.uber.org/zap"
)

var (
	ErrDataLoad      = errors.New("knowledge base load failed")
	ErrMissingColumn = fmt.Errorf("%w: missing required column", ErrDataLoad)
)

// Source columns, in the naming of the HR export.
var requiredColumns = []string{"question", "profil", "domaine", "reponse"}

// KnowledgeStore holds the immutable knowledge base. It is loaded once
// at startup and read concurrently without locking afterwards.
type KnowledgeStore struct {
	entries []models.KnowledgeEntry
}

// LoadKnowledgeStore reads the CSV knowledge base. Every row must carry
// all four required fields; a malformed or empty source aborts startup.
// Row order defines the stable ordinal ids 0..N-1.
func LoadKnowledgeStore(path string, logger *zap.Logger) (*KnowledgeStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrDataLoad, path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	rows := records[1:]
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no entries in %s", ErrDataLoad, path)
	}

	entries := make([]models.KnowledgeEntry, 0, len(rows))
	for i, row := range rows {
		entry := models.KnowledgeEntry{
			ID:       i,
			Question: strings.TrimSpace(row[columns["question"]]),
			Profile:  strings.TrimSpace(row[columns["profil"]]),
			Domain:   strings.TrimSpace(row[columns["domaine"]]),
			Answer:   row[columns["reponse"]],
		}
		if entry.Question == "" || entry.Profile == "" || entry.Answer == "" {
			return nil, fmt.Errorf("%w: row %d has empty required fields", ErrDataLoad, i+1)
		}
		entries = append(entries, entry)
	}

	logger.Info("Knowledge base loaded",
		zap.String("path", path),
		zap.Int("entries", len(entries)),
	)

	return &KnowledgeStore{entries: entries}, nil
}

// Entry returns the entry with the given ordinal id.
func (s *KnowledgeStore) Entry(id int) (models.KnowledgeEntry, bool) {
	if id < 0 || id >= len(s.entries) {
		return models.KnowledgeEntry{}, false
	}
	return s.entries[id], true
}

// Questions returns the canonical question texts in load order, which is
// the corpus the embedding index is built from.
func (s *KnowledgeStore) Questions() []string {
	questions := make([]string, len(s.entries))
	for i, e := range s.entries {
		questions[i] = e.Question
	}
	return questions
}

func (s *KnowledgeStore) Len() int {
	return len(s.entries)
}
