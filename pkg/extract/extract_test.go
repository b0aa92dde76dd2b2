package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := NewExtractor(zap.NewNop())
	require.NoError(t, err)
	return e
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	e := newTestExtractor(t)

	path := writeTempCSV(t, "player_name,team,points_per_game\nA. Wilson,LVA,26.9\nN. Collier,MIN,20.4\n")

	table, err := e.LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"player_name", "team", "points_per_game"}, table.Columns)
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, "A. Wilson", table.Rows[0]["player_name"])
	assert.Equal(t, "26.9", table.Rows[0]["points_per_game"], "cells load as strings")
}

func TestLoadCSV_MissingFile(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.LoadCSV(filepath.Join(t.TempDir(), "does_not_exist.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist.csv")
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.LoadCSV(writeTempCSV(t, ""))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.LoadCSV(writeTempCSV(t, "player_name,team\n"))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestLoadCSV_NASpellings(t *testing.T) {
	e := newTestExtractor(t)

	path := writeTempCSV(t, "a,b,c,d,e\nNA,n/a,NULL,none,-\n")

	table, err := e.LoadCSV(path)
	require.NoError(t, err)

	for _, col := range table.Columns {
		assert.Nil(t, table.Rows[0][col], "column %s", col)
	}
}

func TestLoadCSV_EmptyFieldIsNull(t *testing.T) {
	e := newTestExtractor(t)

	path := writeTempCSV(t, "a,b\n1,\n")

	table, err := e.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "1", table.Rows[0]["a"])
	assert.Nil(t, table.Rows[0]["b"])
}

func TestLoadCSV_RaggedRows(t *testing.T) {
	e := newTestExtractor(t)

	path := writeTempCSV(t, "a,b,c\n1,2\n4,5,6,7\n")

	table, err := e.LoadCSV(path)
	require.NoError(t, err)

	require.Equal(t, 2, table.NumRows())
	assert.Nil(t, table.Rows[0]["c"], "short row pads with null")
	assert.Equal(t, "6", table.Rows[1]["c"], "extra field dropped")
}
