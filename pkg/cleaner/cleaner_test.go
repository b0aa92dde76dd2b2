package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hoopsight/data-quality/pkg/model"
)

func newTestCleaner(t *testing.T) *DataCleaner {
	t.Helper()
	c, err := NewDataCleaner(model.WNBASchema(), model.TeamAliases(), zap.NewNop())
	require.NoError(t, err)
	return c
}

func tableWith(columns []string, rows ...model.Row) *model.Table {
	table := model.NewTable(columns)
	table.Rows = rows
	return table
}

func TestNewDataCleaner(t *testing.T) {
	_, err := NewDataCleaner(nil, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewDataCleaner(model.WNBASchema(), nil, nil)
	assert.Error(t, err)

	c, err := NewDataCleaner(model.WNBASchema(), nil, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestClean_CanonicalizesColumnNames(t *testing.T) {
	c := newTestCleaner(t)

	raw := tableWith(
		[]string{"Player Name", "TEAM", "Points-Per-Game"},
		model.Row{"Player Name": "A. Wilson", "TEAM": "Las Vegas Aces", "Points-Per-Game": "26.9"},
	)

	cleaned, _, err := c.Clean(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"player_name", "team", "points_per_game"}, cleaned.Columns)
	assert.Equal(t, "A. Wilson", cleaned.Rows[0]["player_name"])
	assert.Equal(t, 26.9, cleaned.Rows[0]["points_per_game"])
}

func TestClean_CollidingColumnNames(t *testing.T) {
	c := newTestCleaner(t)

	// "Player Name" canonicalizes to "player_name", which already exists
	// as a source column; both values must survive under distinct names.
	raw := tableWith(
		[]string{"Player Name", "player_name"},
		model.Row{"Player Name": "A. Wilson", "player_name": "S. Stewart"},
	)

	cleaned, _, err := c.Clean(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"player_name", "player_name_2"}, cleaned.Columns)
	assert.Equal(t, "A. Wilson", cleaned.Rows[0]["player_name"])
	assert.Equal(t, "S. Stewart", cleaned.Rows[0]["player_name_2"])
}

func TestClean_TrimsWhitespace(t *testing.T) {
	c := newTestCleaner(t)

	raw := tableWith(
		[]string{"player_name", "team"},
		model.Row{"player_name": "  A. Wilson  ", "team": "Las Vegas Aces"},
	)

	cleaned, ops, err := c.Clean(raw)
	require.NoError(t, err)

	assert.Equal(t, "A. Wilson", cleaned.Rows[0]["player_name"])
	require.Len(t, ops, 1)
	assert.Equal(t, model.OpWhitespaceTrim, ops[0].Operation)
}

func TestClean_CoercesNumericColumns(t *testing.T) {
	c := newTestCleaner(t)

	tests := []struct {
		name string
		raw  interface{}
		want interface{}
	}{
		{name: "plain float", raw: "19.2", want: 19.2},
		{name: "thousands separator", raw: "1,234", want: 1234.0},
		{name: "stray whitespace", raw: " 7.5 ", want: 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tableWith(
				[]string{"player_name", "points_per_game"},
				model.Row{"player_name": "A", "points_per_game": tt.raw},
			)
			cleaned, _, err := c.Clean(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cleaned.Rows[0]["points_per_game"])
		})
	}
}

func TestClean_UnparseableNumericBecomesNullThenImputed(t *testing.T) {
	c := newTestCleaner(t)

	// "abc" fails coercion, becomes null, then imputes to the column
	// mean of the remaining values.
	raw := tableWith(
		[]string{"player_name", "points_per_game"},
		model.Row{"player_name": "A", "points_per_game": "10"},
		model.Row{"player_name": "B", "points_per_game": "20"},
		model.Row{"player_name": "C", "points_per_game": "abc"},
		model.Row{"player_name": "D", "points_per_game": "30"},
	)

	cleaned, _, err := c.Clean(raw)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cleaned.Rows[2]["points_per_game"])
}

func TestClean_ImputesNumericMean(t *testing.T) {
	c := newTestCleaner(t)

	raw := tableWith(
		[]string{"player_name", "points_per_game"},
		model.Row{"player_name": "A", "points_per_game": "10"},
		model.Row{"player_name": "B", "points_per_game": "20"},
		model.Row{"player_name": "C", "points_per_game": nil},
		model.Row{"player_name": "D", "points_per_game": "30"},
	)

	cleaned, ops, err := c.Clean(raw)
	require.NoError(t, err)

	assert.Equal(t, 20.0, cleaned.Rows[2]["points_per_game"])

	var imputations int
	for _, op := range ops {
		if op.Operation == model.OpImputation {
			imputations++
			assert.Equal(t, "points_per_game", op.ColumnName)
			assert.Equal(t, 2, op.Row)
		}
	}
	assert.Equal(t, 1, imputations)
}

func TestClean_AllNullNumericColumnStaysNull(t *testing.T) {
	c := newTestCleaner(t)

	raw := tableWith(
		[]string{"player_name", "points_per_game"},
		model.Row{"player_name": "A", "points_per_game": nil},
		model.Row{"player_name": "B", "points_per_game": nil},
	)

	cleaned, _, err := c.Clean(raw)
	require.NoError(t, err)

	assert.Nil(t, cleaned.Rows[0]["points_per_game"])
	assert.Nil(t, cleaned.Rows[1]["points_per_game"])
}

func TestClean_ImputesTextSentinel(t *testing.T) {
	c := newTestCleaner(t)

	raw := tableWith(
		[]string{"player_name", "team"},
		model.Row{"player_name": "A. Wilson", "team": nil},
		model.Row{"player_name": "", "team": "Atlanta Dream"},
	)

	cleaned, _, err := c.Clean(raw)
	require.NoError(t, err)

	assert.Equal(t, model.UnknownSentinel, cleaned.Rows[0]["team"])
	assert.Equal(t, model.UnknownSentinel, cleaned.Rows[1]["player_name"])
}

func TestClean_NormalizesTeamNames(t *testing.T) {
	c := newTestCleaner(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "known alias", in: "LVA", want: "Las Vegas Aces"},
		{name: "known city", in: "Minnesota", want: "Minnesota Lynx"},
		{name: "already canonical", in: "Atlanta Dream", want: "Atlanta Dream"},
		{name: "unrecognized passes through", in: "XYZ", want: "XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tableWith(
				[]string{"player_name", "team"},
				model.Row{"player_name": "A", "team": tt.in},
			)
			cleaned, _, err := c.Clean(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cleaned.Rows[0]["team"])
		})
	}
}

func TestClean_RemovesFullyIdenticalRows(t *testing.T) {
	c := newTestCleaner(t)

	raw := tableWith(
		[]string{"player_name", "team", "points_per_game"},
		model.Row{"player_name": "A", "team": "Atlanta Dream", "points_per_game": "10"},
		model.Row{"player_name": "B", "team": "Chicago Sky", "points_per_game": "12"},
		model.Row{"player_name": "A", "team": "Atlanta Dream", "points_per_game": "10"},
	)

	cleaned, _, err := c.Clean(raw)
	require.NoError(t, err)

	require.Equal(t, 2, cleaned.NumRows())
	assert.Equal(t, "A", cleaned.Rows[0]["player_name"])
	assert.Equal(t, "B", cleaned.Rows[1]["player_name"])
}

func TestClean_NearDuplicateRowsSurvive(t *testing.T) {
	c := newTestCleaner(t)

	// Same player, different points: not fully identical, both kept.
	raw := tableWith(
		[]string{"player_name", "points_per_game"},
		model.Row{"player_name": "A", "points_per_game": "10"},
		model.Row{"player_name": "A", "points_per_game": "11"},
	)

	cleaned, _, err := c.Clean(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, cleaned.NumRows())
}

func TestClean_Idempotent(t *testing.T) {
	c := newTestCleaner(t)

	raw := tableWith(
		[]string{"Player Name", "Team", "Points Per Game", "Games Played"},
		model.Row{"Player Name": " A. Wilson ", "Team": "LVA", "Points Per Game": "26.9", "Games Played": "38"},
		model.Row{"Player Name": "N. Collier", "Team": "MIN", "Points Per Game": nil, "Games Played": "33"},
		model.Row{"Player Name": "N. Collier", "Team": "MIN", "Points Per Game": nil, "Games Played": "33"},
	)

	once, onceOps, err := c.Clean(raw)
	require.NoError(t, err)
	require.NotEmpty(t, onceOps)

	twice, twiceOps, err := c.Clean(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Empty(t, twiceOps)
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	c := newTestCleaner(t)

	raw := tableWith(
		[]string{"Team"},
		model.Row{"Team": "LVA"},
	)

	_, _, err := c.Clean(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Team"}, raw.Columns)
	assert.Equal(t, "LVA", raw.Rows[0]["Team"])
}

func TestClean_EmptyTable(t *testing.T) {
	c := newTestCleaner(t)

	cleaned, ops, err := c.Clean(model.NewTable([]string{"player_name"}))
	require.NoError(t, err)
	assert.Equal(t, 0, cleaned.NumRows())
	assert.Empty(t, ops)
}

func TestClean_NilTable(t *testing.T) {
	c := newTestCleaner(t)

	_, _, err := c.Clean(nil)
	assert.Error(t, err)
}

func TestCanonicalColumnName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Player Name", want: "player_name"},
		{in: "  Points-Per-Game ", want: "points_per_game"},
		{in: "TEAM", want: "team"},
		{in: "rebounds__per__game", want: "rebounds_per_game"},
		{in: "Blocks / Game", want: "blocks_game"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalColumnName(tt.in), "input %q", tt.in)
	}
}
