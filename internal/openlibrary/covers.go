package openlibrary

import (
	"fmt"
	"math/rand"
	"strconv"
)

const (
	coversBaseURL       = "https://covers.openlibrary.org/b"
	authorPhotosBaseURL = "https://covers.openlibrary.org/a"
)

// CoverKind selects which identifier namespace a cover is looked up in.
type CoverKind string

const (
	CoverByID   CoverKind = "id"
	CoverByISBN CoverKind = "isbn"
	CoverByOLID CoverKind = "olid"
	CoverByLCCN CoverKind = "lccn"
	CoverByOCLC CoverKind = "oclc"
)

// CoverSize is one of the covers CDN size classes.
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

// CoverURL templates a cover image URL for the given identifier. An empty
// value yields a placeholder instead of a dead CDN link.
func CoverURL(kind CoverKind, value string, size CoverSize) string {
	if value == "" {
		return PlaceholderCoverURL()
	}
	return fmt.Sprintf("%s/%s/%s-%s.jpg", coversBaseURL, kind, value, size)
}

// PlaceholderCoverURL returns a desaturated stand-in image. The seed is
// random on purpose: the placeholder carries no information, it only has to
// look distinct from a real cover.
func PlaceholderCoverURL() string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/300/450?grayscale&blur=2", rand.Int())
}

// AuthorPhotoURL templates an author portrait URL for a bare OLID.
func AuthorPhotoURL(olid string, size CoverSize) string {
	if olid == "" {
		return "https://picsum.photos/200/200?text=Author"
	}
	return fmt.Sprintf("%s/olid/%s-%s.jpg", authorPhotosBaseURL, olid, size)
}

// CoverURL resolves the best available cover for a record. Precedence is the
// internal cover id, then the cover edition key, then the first ISBN, then
// the placeholder.
func (b Book) CoverURL(size CoverSize) string {
	switch {
	case b.CoverID != 0:
		return CoverURL(CoverByID, strconv.Itoa(b.CoverID), size)
	case b.CoverEditionKey != "":
		return CoverURL(CoverByOLID, b.CoverEditionKey, size)
	case len(b.ISBNs) > 0 && b.ISBNs[0] != "":
		return CoverURL(CoverByISBN, b.ISBNs[0], size)
	default:
		return PlaceholderCoverURL()
	}
}

// PhotoURL resolves the portrait for an author record.
func (a Author) PhotoURL(size CoverSize) string {
	return AuthorPhotoURL(a.OLID(), size)
}
