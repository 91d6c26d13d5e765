package records

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/strataministry/internal/app/system/normalize"
	"github.com/dalemusser/strataministry/internal/domain/models"
)

// Memory is an in-memory Client with the same query semantics as Store.
// It is used by tests and by local runs without a database.
type Memory struct {
	mu     sync.Mutex
	tables map[string][]models.Record
	errs   map[string]error
	calls  map[string]int
}

// NewMemory returns an empty in-memory record store.
func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string][]models.Record),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

// Put appends rows to a table in insertion (store-native) order.
func (m *Memory) Put(table string, rows ...models.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], rows...)
}

// FailWith makes every read of table fail with err. A nil err clears it.
func (m *Memory) FailWith(table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, table)
		return
	}
	m.errs[table] = err
}

// Calls reports how many reads were issued against table.
func (m *Memory) Calls(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[table]
}

// FetchCollection implements Client.
func (m *Memory) FetchCollection(ctx context.Context, q Query) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Table: q.Table, Err: err}
	}

	m.mu.Lock()
	m.calls[q.Table]++
	if err := m.errs[q.Table]; err != nil {
		m.mu.Unlock()
		return nil, &FetchError{Table: q.Table, Err: err}
	}
	rows := m.tables[q.Table]
	out := make([]models.Record, 0, len(rows))
	for _, r := range rows {
		if !matches(r, q) {
			continue
		}
		cp := make(models.Record, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out = append(out, cp)
	}
	m.mu.Unlock()

	if q.OrderBy != nil {
		field, asc := q.OrderBy.Field, q.OrderBy.Ascending
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i][field], out[j][field])
			if asc {
				return c < 0
			}
			return c > 0
		})
	}
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func matches(r models.Record, q Query) bool {
	for k, want := range q.Filters {
		if !equal(r[k], want) {
			return false
		}
	}
	if q.ActiveField != "" && !normalize.Active(r[q.ActiveField]) {
		return false
	}
	return true
}

// equal compares a stored value with a filter value the way the database
// does: numbers match across int and float types, and a string never
// matches a number or a bool.
func equal(a, b any) bool {
	ra, rb := rank(a), rank(b)
	switch {
	case ra == 1 && rb == 1:
		return toFloat(a) == toFloat(b)
	case ra == 3 && rb == 3:
		return a.(time.Time).Equal(b.(time.Time))
	}
	return reflect.DeepEqual(a, b)
}

// compare orders two field values. Missing values sort first, then
// numbers, then strings, then times.
func compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 1:
		fa, fb := toFloat(a), toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	case 2:
		sa, sb := a.(string), b.(string)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
	case 3:
		ta, tb := a.(time.Time), b.(time.Time)
		return ta.Compare(tb)
	}
	return 0
}

func rank(v any) int {
	switch v.(type) {
	case int, int32, int64, float64:
		return 1
	case string:
		return 2
	case time.Time:
		return 3
	default:
		return 0
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}
