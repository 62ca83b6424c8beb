package catalogue

import (
	"strings"

	"github.com/karim3554/akram-library/internal/openlibrary"
)

const (
	// PageSize is the fixed number of records requested per search call. It
	// also drives the hasMore heuristic: a full page means more pages likely
	// exist.
	PageSize = 20

	// DefaultTopic replaces blank queries before dispatch. The displayed
	// query keeps whatever the user typed.
	DefaultTopic = "Fiction"

	// FetchErrorMessage is the single user-facing message for any failed
	// search or page fetch.
	FetchErrorMessage = "The archive is currently inaccessible. Please try again soon."
)

// Categories are the fixed browse shortcuts shown above the result list.
var Categories = []string{
	"Fiction", "Mystery", "Fantasy", "Science Fiction",
	"History", "Biography", "Classic", "Science", "Philosophy",
}

// SortMode is the sort token sent to the search gateway. The empty token
// selects relevance ranking.
type SortMode string

const (
	SortRelevance SortMode = ""
	SortNewest    SortMode = "new"
	SortOldest    SortMode = "old"
)

// Label returns the human-readable name of a sort mode.
func (s SortMode) Label() string {
	switch s {
	case SortNewest:
		return "Newest"
	case SortOldest:
		return "Classical"
	default:
		return "Relevance"
	}
}

// Next cycles through the sort modes in display order.
func (s SortMode) Next() SortMode {
	switch s {
	case SortRelevance:
		return SortNewest
	case SortNewest:
		return SortOldest
	default:
		return SortRelevance
	}
}

// State is the controller's fetch lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
)

// Request describes one dispatched search call. Responses must be handed
// back to Resolve together with the Request they answer so a late reply for
// a superseded query can be discarded.
type Request struct {
	Query  string
	Page   int
	Sort   SortMode
	Append bool

	generation uint64
}

// Controller owns the query text, sort mode, page cursor and accumulated
// result list, and mediates every transition between them. It is not safe
// for concurrent use; callers serialize through a single event loop.
type Controller struct {
	displayed  string
	query      string
	sort       SortMode
	page       int
	books      []openlibrary.Book
	total      int
	hasMore    bool
	loading    bool
	errMessage string
	generation uint64
}

// New returns an empty controller. Nothing is fetched until Submit.
func New() *Controller {
	return &Controller{page: 1}
}

// SetQuery replaces the pending query text without triggering a fetch.
func (c *Controller) SetQuery(text string) {
	c.displayed = text
}

// Submit starts a fresh search at page 1, replacing the accumulated set once
// the returned request resolves. Blank text dispatches DefaultTopic while
// the displayed query keeps the raw input. Submitting supersedes any fetch
// still in flight; its eventual response will be dropped as stale.
func (c *Controller) Submit(text string, sort SortMode) Request {
	c.displayed = text
	query := strings.TrimSpace(text)
	if query == "" {
		query = DefaultTopic
	}
	c.query = query
	c.sort = sort
	c.loading = true
	c.errMessage = ""
	c.generation++
	return Request{Query: query, Page: 1, Sort: sort, generation: c.generation}
}

// LoadMore requests the next page for the current query and sort. It reports
// false when no fetch may start: one is already in flight, or the last page
// was short.
func (c *Controller) LoadMore() (Request, bool) {
	if c.loading || !c.hasMore {
		return Request{}, false
	}
	c.loading = true
	c.errMessage = ""
	c.generation++
	return Request{
		Query:      c.query,
		Page:       c.page + 1,
		Sort:       c.sort,
		Append:     true,
		generation: c.generation,
	}, true
}

// ChangeSort re-runs the current query from page 1 under the new sort mode.
func (c *Controller) ChangeSort(sort SortMode) Request {
	return c.Submit(c.displayed, sort)
}

// SelectCategory searches for the category label under the current sort.
func (c *Controller) SelectCategory(label string) Request {
	return c.Submit(label, c.sort)
}

// Resolve applies a gateway response. It reports false when the response is
// stale, i.e. the controller has since dispatched a newer request; stale
// responses leave all state untouched. A failed response sets the error
// message and preserves the accumulated records; the page cursor only
// advances on success, so a retried LoadMore re-fetches the same page. A
// failed fresh submit additionally disables paging: the query has already
// moved on, and appending its pages onto the old query's records would mix
// result sets. Recovery there is another submit.
func (c *Controller) Resolve(req Request, result openlibrary.SearchResult, err error) bool {
	if req.generation != c.generation {
		return false
	}
	c.loading = false
	if err != nil {
		c.errMessage = FetchErrorMessage
		if !req.Append {
			c.hasMore = false
		}
		return true
	}
	c.errMessage = ""
	c.total = result.NumFound
	if req.Append {
		c.books = append(c.books, result.Docs...)
	} else {
		c.books = append([]openlibrary.Book(nil), result.Docs...)
	}
	c.page = req.Page
	c.hasMore = len(result.Docs) == PageSize
	return true
}

// Books returns the accumulated record list. The slice is shared; callers
// must not mutate it.
func (c *Controller) Books() []openlibrary.Book {
	return c.books
}

// DisplayedQuery is the raw text the user typed, possibly blank.
func (c *Controller) DisplayedQuery() string {
	return c.displayed
}

// ActiveQuery is the text actually dispatched to the gateway.
func (c *Controller) ActiveQuery() string {
	return c.query
}

// Sort returns the current sort mode.
func (c *Controller) Sort() SortMode {
	return c.sort
}

// Page is the highest page successfully folded into the result set.
func (c *Controller) Page() int {
	return c.page
}

// Total is the gateway-reported number of matches for the current query.
func (c *Controller) Total() int {
	return c.total
}

// HasMore reports whether the most recent page came back full, the heuristic
// for "another page likely exists".
func (c *Controller) HasMore() bool {
	return c.hasMore
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// ErrMessage returns the user-facing error for the last failed fetch, or "".
func (c *Controller) ErrMessage() string {
	return c.errMessage
}

// State condenses the loading and error flags into the fetch lifecycle.
func (c *Controller) State() State {
	switch {
	case c.loading:
		return StateLoading
	case c.errMessage != "":
		return StateError
	default:
		return StateIdle
	}
}
