// pkg/model/schema.go
package model

import "strings"

// ColumnType is the declared semantic type of a schema column.
type ColumnType string

const (
	TypeText  ColumnType = "text"
	TypeInt   ColumnType = "int"
	TypeFloat ColumnType = "float"
)

// Column describes one column of the expected dataset schema.
type Column struct {
	Name     string     // Canonical column name
	Type     ColumnType // Semantic type driving coercion and range checks
	Required bool       // Whether the column must be present
	Critical bool       // Whether a record is unusable without a real value
	Unique   bool       // Whether values must be unique across the dataset
	Min      *float64   // Lower plausibility bound (numeric columns)
	Max      *float64   // Upper plausibility bound (numeric columns)
	Allowed  []string   // Allowed value set (categorical columns)
}

// IsNumeric reports whether the column holds numeric values.
func (c *Column) IsNumeric() bool {
	return c.Type == TypeInt || c.Type == TypeFloat
}

// Schema is the declared structure of the dataset. It is injected into
// the cleaner and validator so tests can supply alternate domains.
type Schema struct {
	Columns []Column
}

// ColumnByName returns the schema column matching name, or nil if the
// schema does not declare it. Lookup is case-insensitive.
func (s *Schema) ColumnByName(name string) *Column {
	normalized := strings.ToLower(name)
	for i, col := range s.Columns {
		if strings.ToLower(col.Name) == normalized {
			return &s.Columns[i]
		}
	}
	return nil
}

// RequiredColumns returns the names of all required columns.
func (s *Schema) RequiredColumns() []string {
	var required []string
	for _, col := range s.Columns {
		if col.Required {
			required = append(required, col.Name)
		}
	}
	return required
}

func bound(v float64) *float64 { return &v }

// PlayerPositions is the allowed set of position values.
var PlayerPositions = []string{"G", "F", "C", "G/F", "F/C"}

// WNBATeams is the allowed set of canonical team names.
var WNBATeams = []string{
	"Atlanta Dream",
	"Chicago Sky",
	"Connecticut Sun",
	"Dallas Wings",
	"Indiana Fever",
	"Las Vegas Aces",
	"Los Angeles Sparks",
	"Minnesota Lynx",
	"New York Liberty",
	"Phoenix Mercury",
	"Seattle Storm",
	"Washington Mystics",
}

// WNBASchema returns the schema for a WNBA player-season extract.
// Ranges reflect plausible single-season per-game figures; the WNBA
// regular season caps games_played at 50 with room for playoffs.
func WNBASchema() *Schema {
	return &Schema{
		Columns: []Column{
			{Name: "player_name", Type: TypeText, Required: true, Critical: true},
			{Name: "team", Type: TypeText, Required: true, Allowed: WNBATeams},
			{Name: "position", Type: TypeText, Allowed: PlayerPositions},
			{Name: "season_year", Type: TypeInt},
			{Name: "player_id", Type: TypeInt, Unique: true},
			{Name: "games_played", Type: TypeInt, Required: true, Min: bound(0), Max: bound(50)},
			{Name: "points_per_game", Type: TypeFloat, Required: true, Min: bound(0), Max: bound(40)},
			{Name: "rebounds_per_game", Type: TypeFloat, Min: bound(0), Max: bound(30)},
			{Name: "assists_per_game", Type: TypeFloat, Min: bound(0), Max: bound(20)},
			{Name: "steals_per_game", Type: TypeFloat, Min: bound(0), Max: bound(10)},
			{Name: "blocks_per_game", Type: TypeFloat, Min: bound(0), Max: bound(10)},
		},
	}
}

// TeamAliases maps common team abbreviations and shorthand to canonical
// team names. Unrecognized values pass through cleaning unchanged and
// are flagged during validation instead.
func TeamAliases() map[string]string {
	return map[string]string{
		"ATL":         "Atlanta Dream",
		"Atlanta":     "Atlanta Dream",
		"CHI":         "Chicago Sky",
		"Chicago":     "Chicago Sky",
		"CON":         "Connecticut Sun",
		"CONN":        "Connecticut Sun",
		"Connecticut": "Connecticut Sun",
		"DAL":         "Dallas Wings",
		"Dallas":      "Dallas Wings",
		"IND":         "Indiana Fever",
		"Indiana":     "Indiana Fever",
		"LV":          "Las Vegas Aces",
		"LVA":         "Las Vegas Aces",
		"Las Vegas":   "Las Vegas Aces",
		"LA":          "Los Angeles Sparks",
		"LAS":         "Los Angeles Sparks",
		"Los Angeles": "Los Angeles Sparks",
		"MIN":         "Minnesota Lynx",
		"Min":         "Minnesota Lynx",
		"Minnesota":   "Minnesota Lynx",
		"NY":          "New York Liberty",
		"NYL":         "New York Liberty",
		"New York":    "New York Liberty",
		"PHO":         "Phoenix Mercury",
		"PHX":         "Phoenix Mercury",
		"Phoenix":     "Phoenix Mercury",
		"SEA":         "Seattle Storm",
		"Seattle":     "Seattle Storm",
		"WAS":         "Washington Mystics",
		"WSH":         "Washington Mystics",
		"Washington":  "Washington Mystics",
	}
}
