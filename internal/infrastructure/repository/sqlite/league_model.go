package sqlite

type leagueSnapshotTableModel struct {
	Path     string `db:"path"`
	LeagueID string `db:"league_id"`
	Payload  string `db:"payload"`
	SavedAt  string `db:"saved_at"`
}
