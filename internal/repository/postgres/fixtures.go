package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// FixtureTables lists the fixture tables in foreign key order. Load walks it
// forwards.
var FixtureTables = []string{
	"country",
	"city",
	"role",
	"user_account",
	"user_role",
	"hotel",
	"hotel_image",
	"review",
	"booking",
	"favorite",
}

var serialTables = map[string]bool{
	"country":     true,
	"city":        true,
	"hotel":       true,
	"hotel_image": true,
	"review":      true,
	"booking":     true,
	"favorite":    true,
}

type FixtureStore struct {
	db *sqlx.DB
}

func NewFixtureStore(db *sqlx.DB) *FixtureStore {
	return &FixtureStore{db: db}
}

// Dump returns every row of table as a JSON array ordered by its first column.
func (s *FixtureStore) Dump(ctx context.Context, table string) (json.RawMessage, error) {
	if err := checkFixtureTable(table); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT COALESCE(json_agg(row_to_json(t)), '[]'::json) FROM (SELECT * FROM %s ORDER BY 1) t`, table)
	var out []byte
	if err := s.db.GetContext(ctx, &out, query); err != nil {
		return nil, err
	}
	return json.RawMessage(out), nil
}

// Load inserts the rows of a JSON array produced by Dump. Existing primary
// keys are skipped and serial sequences are moved past the loaded ids.
func (s *FixtureStore) Load(ctx context.Context, table string, rows json.RawMessage) (int64, error) {
	if err := checkFixtureTable(table); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	insert := fmt.Sprintf(`INSERT INTO %[1]s SELECT * FROM json_populate_recordset(NULL::%[1]s, $1::json) ON CONFLICT DO NOTHING`, table)
	result, err := tx.ExecContext(ctx, insert, string(rows))
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", table, err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if serialTables[table] {
		reset := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM %[1]s`, table)
		if _, err := tx.ExecContext(ctx, reset); err != nil {
			return 0, fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}
	return inserted, tx.Commit()
}

func checkFixtureTable(table string) error {
	for _, t := range FixtureTables {
		if t == table {
			return nil
		}
	}
	return fmt.Errorf("unknown fixture table %q", table)
}
