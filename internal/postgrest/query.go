package postgrest

import (
	"fmt"
	"net/url"
	"strings"
)

// Query accumulates the table, projection, filters and ordering of a
// PostgREST request.
type Query struct {
	table   string
	columns []string
	filters url.Values
	order   []string
}

// From starts a query against table.
func From(table string) *Query {
	return &Query{table: table, filters: url.Values{}}
}

// Select restricts the returned columns.
func (q *Query) Select(columns ...string) *Query {
	q.columns = append(q.columns, columns...)
	return q
}

// Eq adds an equality filter on column.
func (q *Query) Eq(column string, value any) *Query {
	q.filters.Add(column, "eq."+fmt.Sprint(value))
	return q
}

// Order sorts by column, descending when desc is true.
func (q *Query) Order(column string, desc bool) *Query {
	dir := "asc"
	if desc {
		dir = "desc"
	}
	q.order = append(q.order, column+"."+dir)
	return q
}

// Path returns the URL path of the table endpoint.
func (q *Query) Path() string {
	return "/rest/v1/" + url.PathEscape(q.table)
}

// Values returns the query-string parameters of the request.
func (q *Query) Values() url.Values {
	v := url.Values{}
	for col, vals := range q.filters {
		v[col] = append([]string(nil), vals...)
	}
	if len(q.columns) > 0 {
		v.Set("select", strings.Join(q.columns, ","))
	}
	if len(q.order) > 0 {
		v.Set("order", strings.Join(q.order, ","))
	}
	return v
}
