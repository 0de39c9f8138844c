package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// restPath is the record store's REST root.
const restPath = "/rest/v1/"

// Query builds one record-store request: a target collection plus
// accumulated filter, order, projection, and representation options.
// Queries are single-use; the terminal methods (Get, Insert, Update,
// Upsert, Delete, Count) execute the request.
type Query struct {
	client *Client
	table  string
	params url.Values
	single bool
}

// Select sets the column projection, including embedded-resource
// projections such as "*,product:products(id,title)".
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", columns)
	return q
}

// Eq adds an equality filter on the given column.
func (q *Query) Eq(column string, value any) *Query {
	q.params.Add(column, fmt.Sprintf("eq.%v", value))
	return q
}

// Order sets the result ordering on the given column.
func (q *Query) Order(column string, ascending bool) *Query {
	direction := "desc"
	if ascending {
		direction = "asc"
	}
	q.params.Set("order", column+"."+direction)
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// Single requests exactly one object instead of an array. A request that
// matches no rows fails with the store's no-rows error, which the store
// implementations translate to their not-found sentinels.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

// Get executes a read and decodes the result into dest.
func (q *Query) Get(ctx context.Context, dest any) error {
	return q.client.do(ctx, http.MethodGet, restPath+q.table, q.params, q.headers(false), nil, dest)
}

// Insert executes an insert. When dest is non-nil the inserted
// representation is requested and decoded into it.
func (q *Query) Insert(ctx context.Context, record, dest any) error {
	return q.client.do(ctx, http.MethodPost, restPath+q.table, q.params, q.headers(dest != nil), record, dest)
}

// Update executes a partial update constrained by the accumulated
// filters. The filters double as the write-time guard: a row that no
// longer matches them is left untouched and absent from the result.
func (q *Query) Update(ctx context.Context, patch, dest any) error {
	return q.client.do(ctx, http.MethodPatch, restPath+q.table, q.params, q.headers(dest != nil), patch, dest)
}

// Upsert executes an insert that merges into the existing row on conflict
// with the given column.
func (q *Query) Upsert(ctx context.Context, record, dest any, onConflict string) error {
	if onConflict != "" {
		q.params.Set("on_conflict", onConflict)
	}
	headers := q.headers(dest != nil)
	prefer := "resolution=merge-duplicates"
	if dest != nil {
		prefer += ",return=representation"
	}
	headers.Set("Prefer", prefer)
	return q.client.do(ctx, http.MethodPost, restPath+q.table, q.params, headers, record, dest)
}

// Delete executes a delete constrained by the accumulated filters. When
// dest is non-nil the deleted rows are returned, which lets callers
// distinguish a no-match delete from a successful one.
func (q *Query) Delete(ctx context.Context, dest any) error {
	return q.client.do(ctx, http.MethodDelete, restPath+q.table, q.params, q.headers(dest != nil), nil, dest)
}

// Count executes an exact-count request and returns the number of rows
// matching the accumulated filters without transferring them.
func (q *Query) Count(ctx context.Context) (int, error) {
	headers := http.Header{}
	headers.Set("Prefer", "count=exact")

	respHeaders, err := q.client.head(ctx, restPath+q.table, q.params, headers)
	if err != nil {
		return 0, err
	}

	// Content-Range is "0-24/3021" or "*/0" when empty.
	contentRange := respHeaders.Get("Content-Range")
	slash := strings.LastIndex(contentRange, "/")
	if slash < 0 {
		return 0, fmt.Errorf("malformed Content-Range %q", contentRange)
	}
	count, err := strconv.Atoi(contentRange[slash+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed Content-Range %q: %w", contentRange, err)
	}
	return count, nil
}

// headers assembles the per-request headers implied by the query state.
func (q *Query) headers(wantRepresentation bool) http.Header {
	headers := http.Header{}
	if q.single {
		headers.Set("Accept", "application/vnd.pgrst.object+json")
	}
	if wantRepresentation {
		headers.Set("Prefer", "return=representation")
	}
	return headers
}
