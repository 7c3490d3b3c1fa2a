package repositories

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The repositories reference columns by name in raw SQL; a column missing
// from the migration only surfaces at runtime. This cross-checks every
// referenced column against the CREATE TABLE blocks of the init migration.
func TestInitMigrationDefinesAllQueriedColumns(t *testing.T) {
	raw, err := os.ReadFile("../migrations/000001_init.up.sql")
	require.NoError(t, err)
	schema := string(raw)

	queried := map[string][]string{
		"users": {"id", "name", "email", "created_at"},
		"cards": {"id", "category", "title", "src", "content", "button_text",
			"button_link", "created_by", "created_at"},
		"tournaments": {"id", "card_id", "name", "description", "format", "status",
			"entry_fee_amount", "max_participants", "start_date", "end_date",
			"created_at", "updated_at"},
		"registrations": {"id", "user_id", "tournament_id", "status",
			"registration_date", "created_at"},
		"matches": {"id", "tournament_id", "round_number", "match_number",
			"player1_id", "player2_id", "winner_id", "player1_score",
			"player2_score", "status", "created_at", "updated_at", "completed_at"},
		"tournament_results": {"id", "tournament_id", "user_id", "placement", "created_at"},
	}

	for table, columns := range queried {
		body := createTableBody(t, schema, table)
		for _, column := range columns {
			matched, err := regexp.MatchString(`(?m)^\s*`+column+`\s`, body)
			require.NoError(t, err)
			require.True(t, matched, "table %s is missing column %s", table, column)
		}
	}
}

func createTableBody(t *testing.T, schema, table string) string {
	t.Helper()
	marker := "CREATE TABLE " + table + " ("
	start := strings.Index(schema, marker)
	require.GreaterOrEqual(t, start, 0, "no CREATE TABLE block for %s", table)
	rest := schema[start+len(marker):]
	end := strings.Index(rest, ");")
	require.GreaterOrEqual(t, end, 0, "unterminated CREATE TABLE block for %s", table)
	return rest[:end]
}
