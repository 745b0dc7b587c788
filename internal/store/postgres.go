package store

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DefaultTableName = "village_problems"

// idColumn is the surrogate key added by the migrations. It orders rows when
// present and is never exposed as a data column.
const idColumn = "id"

// PostgresStore serves the village problem table out of Postgres.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresStore(ctx context.Context, databaseURL, table string) (*PostgresStore, error) {
	if table == "" {
		table = DefaultTableName
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool, table: table}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Load reads every row. Column names come from the result set so optional
// columns (taluka, linked_scheme) are reported only when the table has them.
// Rows come back in id order when the table has an id column, otherwise in
// whatever order Postgres returns them.
func (s *PostgresStore) Load(ctx context.Context) (*Table, error) {
	ident := pgx.Identifier{s.table}.Sanitize()
	names, err := s.columnNames(ctx, ident)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, loadQuery(ident, names))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	table := &Table{}
	for _, f := range fields {
		if f.Name == idColumn {
			continue
		}
		table.Columns = append(table.Columns, f.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		rec := make(Record, len(table.Columns))
		for i, v := range values {
			name := fields[i].Name
			if name == idColumn {
				continue
			}
			if text, ok := textValue(v); ok {
				rec[name] = text
			}
		}
		table.Rows = append(table.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table, err)
	}
	return table, nil
}

func (s *PostgresStore) columnNames(ctx context.Context, ident string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT * FROM `+ident+` LIMIT 0`)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", s.table, err)
	}
	var names []string
	for _, f := range rows.FieldDescriptions() {
		names = append(names, f.Name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describe %s: %w", s.table, err)
	}
	return names, nil
}

func loadQuery(ident string, columns []string) string {
	for _, c := range columns {
		if c == idColumn {
			return `SELECT * FROM ` + ident + ` ORDER BY ` + idColumn
		}
	}
	return `SELECT * FROM ` + ident
}

// Import bulk-loads t into the table with COPY. Only documented columns are copied.
func (s *PostgresStore) Import(ctx context.Context, t *Table) (int64, error) {
	var columns []string
	for _, c := range Columns {
		if t.HasColumn(c) {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("import: table has none of the known columns")
	}

	rows := make([][]any, 0, len(t.Rows))
	for i, rec := range t.Rows {
		row := make([]any, len(columns))
		for j, c := range columns {
			v, err := copyValue(rec, c)
			if err != nil {
				return 0, fmt.Errorf("import row %d: %w", i+1, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{s.table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", s.table, err)
	}
	return n, nil
}

func copyValue(rec Record, column string) (any, error) {
	switch column {
	case ColDistrict, ColTaluka, ColProblemType, ColLinkedScheme:
		if v, ok := rec.Get(column); ok {
			return v, nil
		}
		return nil, nil
	case ColPopulation:
		f, ok, err := rec.Float(column)
		if err != nil || !ok {
			return nil, err
		}
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("field %s: %v is not a whole number", column, f)
		}
		return int64(f), nil
	default:
		f, ok, err := rec.Float(column)
		if err != nil || !ok {
			return nil, err
		}
		return f, nil
	}
}

func textValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case pgtype.Numeric:
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return "", false
		}
		return strconv.FormatFloat(f.Float64, 'f', -1, 64), true
	default:
		return fmt.Sprint(x), true
	}
}
