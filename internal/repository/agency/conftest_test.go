package agency

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mockQuerier records queries and replays canned rows.
type mockQuerier struct {
	rows    [][]any
	err     error
	sql     string
	args    []any
	queries int
}

func (m *mockQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.queries++
	m.sql = sql
	m.args = args
	if m.err != nil {
		return nil, m.err
	}
	return &fakeRows{rows: m.rows, pos: -1}, nil
}

// fakeRows implements pgx.Rows over in-memory values.
// Each value must have the exact type of its scan destination; nil leaves the zero value.
type fakeRows struct {
	rows   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed {
		return false
	}
	r.pos++
	return r.pos < len(r.rows)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		if row[i] == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		v := reflect.ValueOf(row[i])
		if !v.Type().AssignableTo(dv.Type()) {
			return fmt.Errorf("scan column %d: cannot assign %s to %s", i, v.Type(), dv.Type())
		}
		dv.Set(v)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

// agencyRow builds a row in agencyColumns order.
func agencyRow(id int64, slug string, specs []string, minBudget *int64) []any {
	return []any{
		id, "Agency " + slug, slug,
		"desc", "London",
		specs, []string{"B2B Marketing Agency"}, []string{"UK"},
		minBudget, ptr(4.8), ptr(12), ptr(int(id)),
		ptr("https://" + slug + ".example"), nil,
	}
}
