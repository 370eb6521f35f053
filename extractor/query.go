package extractor

import (
	"fmt"
	"log/slog"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/use-agent/prodscrape/models"
)

// FieldQuery binds a record field to an XPath location query. The query may
// select elements, text nodes or attributes.
type FieldQuery struct {
	Field string
	XPath string
}

type compiledQuery struct {
	field string
	expr  *xpath.Expr
	err   error
}

// QueryTable is a compiled, ordered set of field queries.
// It is safe for concurrent use.
type QueryTable struct {
	queries []compiledQuery
}

// NewQueryTable compiles every query. A query that fails to compile is kept
// and reported as a field extraction failure each time the table is applied,
// so one bad expression never disables the rest of the table.
func NewQueryTable(queries []FieldQuery) *QueryTable {
	t := &QueryTable{queries: make([]compiledQuery, 0, len(queries))}
	for _, q := range queries {
		expr, err := xpath.Compile(q.XPath)
		t.queries = append(t.queries, compiledQuery{field: q.Field, expr: expr, err: err})
	}
	return t
}

// Fields returns the field names in table order.
func (t *QueryTable) Fields() []string {
	fields := make([]string, len(t.queries))
	for i, q := range t.queries {
		fields[i] = q.field
	}
	return fields
}

// Apply evaluates every query against doc and returns the fields that
// produced a cleaned, non-empty value.
func (t *QueryTable) Apply(doc *html.Node) models.Record {
	rec := models.Record{}
	for _, q := range t.queries {
		if q.err != nil {
			slog.Warn("field query invalid",
				"field", q.field,
				"error", models.NewScrapeError(models.ErrCodeFieldExtraction, "compile query", q.err),
			)
			continue
		}

		values, err := evaluate(doc, q.expr)
		if err != nil {
			slog.Warn("field query failed",
				"field", q.field,
				"error", models.NewScrapeError(models.ErrCodeFieldExtraction, "evaluate query", err),
			)
			continue
		}

		if v, ok := Clean(values); ok {
			rec.SetString(q.field, v)
			slog.Debug("field extracted", "field", q.field, "value", v)
		}
	}
	return rec
}

// evaluate collects the string value of every node selected by expr.
// Attribute selections come back from htmlquery as synthetic elements whose
// inner text is the attribute value.
func evaluate(doc *html.Node, expr *xpath.Expr) (values []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("xpath: %v", r)
		}
	}()

	for _, n := range htmlquery.QuerySelectorAll(doc, expr) {
		values = append(values, htmlquery.InnerText(n))
	}
	return values, nil
}
