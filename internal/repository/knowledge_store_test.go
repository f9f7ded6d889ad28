package repository

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeKnowledgeCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge_base.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	require.NoError(t, f.Close())
	return path
}

func TestLoadKnowledgeStore(t *testing.T) {
	path := writeKnowledgeCSV(t, [][]string{
		{"question", "profil", "domaine", "reponse"},
		{"Comment poser un congé ?", "CDI", "Congés", "Via le portail RH."},
		{"Comment déclarer des heures supplémentaires ?", "CADRE", "Temps de travail", "Via le manager."},
	})

	store, err := LoadKnowledgeStore(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	first, ok := store.Entry(0)
	require.True(t, ok)
	assert.Equal(t, 0, first.ID)
	assert.Equal(t, "Comment poser un congé ?", first.Question)
	assert.Equal(t, "CDI", first.Profile)
	assert.Equal(t, "Congés", first.Domain)
	assert.Equal(t, "Via le portail RH.", first.Answer)

	second, ok := store.Entry(1)
	require.True(t, ok)
	assert.Equal(t, 1, second.ID)
	assert.Equal(t, "CADRE", second.Profile)
}

func TestLoadKnowledgeStoreReordersColumns(t *testing.T) {
	// Column order in the export is not fixed; the header decides.
	path := writeKnowledgeCSV(t, [][]string{
		{"reponse", "domaine", "profil", "question"},
		{"Via le portail RH.", "Congés", "CDI", "Comment poser un congé ?"},
	})

	store, err := LoadKnowledgeStore(path, zap.NewNop())
	require.NoError(t, err)

	entry, ok := store.Entry(0)
	require.True(t, ok)
	assert.Equal(t, "Comment poser un congé ?", entry.Question)
	assert.Equal(t, "Via le portail RH.", entry.Answer)
}

func TestLoadKnowledgeStorePreservesAnswerVerbatim(t *testing.T) {
	answer := "  Via le portail RH.\nOnglet « Absences ».  "
	path := writeKnowledgeCSV(t, [][]string{
		{"question", "profil", "domaine", "reponse"},
		{"Comment poser un congé ?", "CDI", "Congés", answer},
	})

	store, err := LoadKnowledgeStore(path, zap.NewNop())
	require.NoError(t, err)

	entry, _ := store.Entry(0)
	assert.Equal(t, answer, entry.Answer)
}

func TestLoadKnowledgeStoreMissingFile(t *testing.T) {
	_, err := LoadKnowledgeStore(filepath.Join(t.TempDir(), "absent.csv"), zap.NewNop())
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoadKnowledgeStoreMissingColumn(t *testing.T) {
	path := writeKnowledgeCSV(t, [][]string{
		{"question", "profil", "reponse"},
		{"Comment poser un congé ?", "CDI", "Via le portail RH."},
	})

	_, err := LoadKnowledgeStore(path, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoadKnowledgeStoreHeaderOnly(t *testing.T) {
	path := writeKnowledgeCSV(t, [][]string{
		{"question", "profil", "domaine", "reponse"},
	})

	_, err := LoadKnowledgeStore(path, zap.NewNop())
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoadKnowledgeStoreEmptyRequiredField(t *testing.T) {
	path := writeKnowledgeCSV(t, [][]string{
		{"question", "profil", "domaine", "reponse"},
		{"", "CDI", "Congés", "Via le portail RH."},
	})

	_, err := LoadKnowledgeStore(path, zap.NewNop())
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestKnowledgeStoreQuestionsOrder(t *testing.T) {
	path := writeKnowledgeCSV(t, [][]string{
		{"question", "profil", "domaine", "reponse"},
		{"Q1", "CDI", "D1", "A1"},
		{"Q2", "CDD", "D2", "A2"},
		{"Q3", "CADRE", "D3", "A3"},
	})

	store, err := LoadKnowledgeStore(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, store.Questions())
}

func TestKnowledgeStoreEntryOutOfRange(t *testing.T) {
	path := writeKnowledgeCSV(t, [][]string{
		{"question", "profil", "domaine", "reponse"},
		{"Q1", "CDI", "D1", "A1"},
	})

	store, err := LoadKnowledgeStore(path, zap.NewNop())
	require.NoError(t, err)

	_, ok := store.Entry(-1)
	assert.False(t, ok)
	_, ok = store.Entry(1)
	assert.False(t, ok)
}
