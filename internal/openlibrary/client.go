package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL points at the public Open Library instance.
const DefaultBaseURL = "https://openlibrary.org"

// searchFields is the fixed field set requested from the search endpoint.
const searchFields = "key,title,author_name,author_key,first_publish_year,cover_i,number_of_pages_median,isbn,cover_edition_key"

// Client talks to the Open Library search and detail endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a gateway client. An empty baseURL selects the public
// instance; httpClient may be nil.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Search fetches one page of records for a free-text query. The sort token is
// passed through verbatim ("new", "old", or "" for relevance ranking).
func (c *Client) Search(ctx context.Context, query string, page, limit int, sort string) (SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", searchFields)
	if sort != "" {
		params.Set("sort", sort)
	}

	var result SearchResult
	if err := c.getJSON(ctx, c.baseURL+"/search.json?"+params.Encode(), &result); err != nil {
		return SearchResult{}, fmt.Errorf("search %q: %w", query, err)
	}
	return result, nil
}

// Work fetches the full record for a work or edition key such as
// "/works/OL15626917W". A missing leading slash is tolerated.
func (c *Client) Work(ctx context.Context, key string) (*Book, error) {
	if !strings.HasPrefix(key, "/") {
		key = "/" + key
	}
	var book Book
	if err := c.getJSON(ctx, c.baseURL+key+".json", &book); err != nil {
		return nil, fmt.Errorf("work %s: %w", key, err)
	}
	return &book, nil
}

// Author fetches an author record. Bare OLIDs such as "OL33421A" are expanded
// to the full /authors/ path.
func (c *Client) Author(ctx context.Context, id string) (*Author, error) {
	path := id
	if !strings.Contains(path, "/") {
		path = "/authors/" + path
	} else if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	var author Author
	if err := c.getJSON(ctx, c.baseURL+path+".json", &author); err != nil {
		return nil, fmt.Errorf("author %s: %w", id, err)
	}
	return &author, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("open library API error: %s (%s)", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode open library response: %w", err)
	}
	return nil
}
