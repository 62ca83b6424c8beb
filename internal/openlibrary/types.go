package openlibrary

import "strings"

// Book carries the subset of record metadata the catalogue renders. Search
// results and work detail responses share the shape; any field may be absent.
type Book struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name,omitempty"`
	AuthorKeys       []string `json:"author_key,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	CoverID          int      `json:"cover_i,omitempty"`
	CoverEditionKey  string   `json:"cover_edition_key,omitempty"`
	ISBNs            []string `json:"isbn,omitempty"`
	PageCountMedian  int      `json:"number_of_pages_median,omitempty"`
	Description      Text     `json:"description,omitempty"`
	Subject          []string `json:"subject,omitempty"`
	Subjects         []string `json:"subjects,omitempty"`
	Languages        []KeyRef `json:"languages,omitempty"`
}

// Author is the full author record served by the detail gateway.
type Author struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	PersonalName   string   `json:"personal_name,omitempty"`
	BirthDate      string   `json:"birth_date,omitempty"`
	DeathDate      string   `json:"death_date,omitempty"`
	Bio            Text     `json:"bio,omitempty"`
	Photos         []int    `json:"photos,omitempty"`
	AlternateNames []string `json:"alternate_names,omitempty"`
	Links          []Link   `json:"links,omitempty"`
}

// Link is an external reference attached to an author record.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// KeyRef wraps the "/languages/eng" style references used across the API.
type KeyRef struct {
	Key string `json:"key"`
}

// SearchResult is one page of records plus the gateway's total match count.
type SearchResult struct {
	Docs     []Book `json:"docs"`
	NumFound int    `json:"numFound"`
	Start    int    `json:"start"`
}

// PrimaryAuthor returns the first listed author name.
func (b Book) PrimaryAuthor() string {
	if len(b.AuthorNames) > 0 && strings.TrimSpace(b.AuthorNames[0]) != "" {
		return b.AuthorNames[0]
	}
	return "Unknown Author"
}

// PrimaryAuthorKey returns the first listed author key, or "".
func (b Book) PrimaryAuthorKey() string {
	if len(b.AuthorKeys) > 0 {
		return b.AuthorKeys[0]
	}
	return ""
}

// SubjectTags merges the search-shaped "subject" and work-shaped "subjects"
// fields; detail responses populate one or the other.
func (b Book) SubjectTags() []string {
	if len(b.Subject) > 0 {
		return b.Subject
	}
	return b.Subjects
}

// LanguageCode extracts the trailing code of the first language reference,
// defaulting to "en" when the record carries none.
func (b Book) LanguageCode() string {
	if len(b.Languages) == 0 {
		return "en"
	}
	key := b.Languages[0].Key
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		key = key[idx+1:]
	}
	if key == "" {
		return "en"
	}
	return key
}

// OLID returns the bare identifier of an author key such as "/authors/OL33421A".
func (a Author) OLID() string {
	if idx := strings.LastIndex(a.Key, "/"); idx >= 0 {
		return a.Key[idx+1:]
	}
	return a.Key
}
