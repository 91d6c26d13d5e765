// Package sections loads the content sections that make up a public page.
//
// A section is one filtered, ordered read of a content collection. Loads
// never return an error: a failed read degrades to an empty section so the
// rest of the page still renders. Every row passes through normalize.Active
// before it is used.
package sections

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/strataministry/internal/app/store/records"
	"github.com/dalemusser/strataministry/internal/app/system/metrics"
	"github.com/dalemusser/strataministry/internal/app/system/normalize"
	"github.com/dalemusser/strataministry/internal/app/system/timeouts"
	"github.com/dalemusser/strataministry/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Order selects how a section's rows are sorted.
type Order int

const (
	// ByPosition sorts ascending by the position field.
	ByPosition Order = iota
	// ByCreatedDesc sorts newest first by created_at.
	ByCreatedDesc
)

// Cardinality says whether a section shows one row or all of them.
type Cardinality int

const (
	List Cardinality = iota
	Single
)

// State is the settled state of a section load.
type State string

const (
	Loaded State = "loaded"
	Empty  State = "empty"
	Failed State = "failed"
)

// Spec describes one section of a page.
type Spec struct {
	Name        string
	Table       string
	Filters     map[string]any
	Order       Order
	Cardinality Cardinality
}

// Result is a settled section. Records is never nil. Err is set only when
// State is Failed and is kept for logging.
type Result struct {
	Section string
	Records []models.Record
	State   State
	Err     error
}

// First returns the first record, if any.
func (r Result) First() (models.Record, bool) {
	if len(r.Records) == 0 {
		return nil, false
	}
	return r.Records[0], true
}

// Loader loads sections from a record store.
type Loader struct {
	client  records.Client
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewLoader creates a Loader. m may be nil.
func NewLoader(client records.Client, log *zap.Logger, m *metrics.Metrics) *Loader {
	return &Loader{client: client, log: log, metrics: m}
}

// Load issues exactly one fetch for spec and settles it.
func (l *Loader) Load(ctx context.Context, spec Spec) Result {
	start := time.Now()
	res := l.load(ctx, spec)
	l.metrics.SectionLoaded(spec.Name, string(res.State), time.Since(start).Seconds())
	return res
}

func (l *Loader) load(ctx context.Context, spec Spec) Result {
	q := records.Query{
		Table:       spec.Table,
		Filters:     spec.Filters,
		ActiveField: models.FieldActive,
	}
	switch spec.Order {
	case ByCreatedDesc:
		q.OrderBy = &records.Order{Field: models.FieldCreatedAt, Ascending: false}
	default:
		q.OrderBy = &records.Order{Field: models.FieldPosition, Ascending: true}
	}
	if spec.Cardinality == Single {
		q.Limit = 1
	}

	fetchCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Section(), l.log, "section:"+spec.Name)
	rows, err := l.client.FetchCollection(fetchCtx, q)
	cancel()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			l.log.Debug("section load cancelled", zap.String("section", spec.Name))
		} else {
			l.log.Warn("section load failed",
				zap.String("section", spec.Name),
				zap.String("table", spec.Table),
				zap.Error(err))
		}
		return Result{Section: spec.Name, Records: []models.Record{}, State: Failed, Err: err}
	}

	active := make([]models.Record, 0, len(rows))
	for _, r := range rows {
		if normalize.Active(r[models.FieldActive]) {
			active = append(active, r)
		}
	}
	if spec.Cardinality == Single && len(active) > 1 {
		active = active[:1]
	}

	state := Loaded
	if len(active) == 0 {
		state = Empty
	}
	return Result{Section: spec.Name, Records: active, State: state}
}

// Page is the set of settled sections for one page view.
type Page struct {
	// Discarded is true when the request went away before every section
	// settled. A discarded page carries no results.
	Discarded bool
	results   map[string]Result
}

// Section returns the named result. Unknown or discarded sections read as
// Empty.
func (p Page) Section(name string) Result {
	if r, ok := p.results[name]; ok {
		return r
	}
	return Result{Section: name, Records: []models.Record{}, State: Empty}
}

// LoadPage loads all specs concurrently and returns once every load has
// settled. Section names must be unique within a page.
func (l *Loader) LoadPage(ctx context.Context, specs ...Spec) Page {
	out := make([]Result, len(specs))

	var g errgroup.Group
	for i, spec := range specs {
		g.Go(func() error {
			out[i] = l.Load(ctx, spec)
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		l.log.Debug("page load discarded", zap.Int("sections", len(specs)))
		l.metrics.PageDiscarded()
		return Page{Discarded: true}
	}

	results := make(map[string]Result, len(out))
	for _, r := range out {
		results[r.Section] = r
	}
	return Page{results: results}
}
