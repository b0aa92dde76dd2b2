package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone(t *testing.T) {
	table := NewTable([]string{"player_name", "points_per_game"})
	table.Rows = []Row{{"player_name": "A", "points_per_game": 10.0}}

	clone := table.Clone()
	clone.Columns[0] = "changed"
	clone.Rows[0]["player_name"] = "B"

	assert.Equal(t, "player_name", table.Columns[0])
	assert.Equal(t, "A", table.Rows[0]["player_name"])
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{name: "float64", in: 26.9, want: 26.9, ok: true},
		{name: "int64", in: int64(38), want: 38, ok: true},
		{name: "nil", in: nil, ok: false},
		{name: "string", in: "26.9", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "A. Wilson", AsString("A. Wilson"))
	assert.Equal(t, "38", AsString(int64(38)))
	assert.Equal(t, "26.9", AsString(26.9))
}

func TestWNBASchema(t *testing.T) {
	schema := WNBASchema()

	name := schema.ColumnByName("player_name")
	require.NotNil(t, name)
	assert.True(t, name.Critical)

	points := schema.ColumnByName("POINTS_PER_GAME")
	require.NotNil(t, points, "lookup is case-insensitive")
	assert.True(t, points.IsNumeric())
	assert.Equal(t, 40.0, *points.Max)

	assert.Nil(t, schema.ColumnByName("turnovers_per_game"))
	assert.Equal(t,
		[]string{"player_name", "team", "games_played", "points_per_game"},
		schema.RequiredColumns())
}

func TestTeamAliases(t *testing.T) {
	aliases := TeamAliases()
	assert.Equal(t, "Las Vegas Aces", aliases["LVA"])

	// Every alias target is a canonical team.
	canonical := make(map[string]bool)
	for _, team := range WNBATeams {
		canonical[team] = true
	}
	for alias, team := range aliases {
		assert.True(t, canonical[team], "alias %q maps to unknown team %q", alias, team)
	}
}
