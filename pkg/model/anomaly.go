// pkg/model/anomaly.go
package model

// AnomalyRecord identifies one row whose metric value lies outside the
// IQR-derived bounds for its column.
type AnomalyRecord struct {
	Row        int     // Row index into the source table
	PlayerName string  // Player name, empty if the table has no player_name column
	Team       string  // Team name, empty if the table has no team column
	Metric     string  // Metric column that triggered the flag
	Value      float64 // The offending value
}
