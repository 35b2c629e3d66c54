// Package book defines the book records that flow from the search provider
// to the workspace, and the normalization between them.
package book

import (
	"strings"
	"time"
)

// DateLayout is the date-only ISO 8601 layout used for capture dates.
const DateLayout = "2006-01-02"

// Candidate is one search result as returned by the book-search provider.
type Candidate struct {
	Title        string `json:"title"`
	Author       string `json:"author"` // Raw, comma-separated with role markers
	Publisher    string `json:"publisher"`
	PubDate      string `json:"pubDate"`
	CategoryName string `json:"categoryName"` // '>'-delimited path
	Cover        string `json:"cover"`        // Cover image URL
	Link         string `json:"link"`         // Info page URL
}

// Book is a normalized, schema-ready record for the workspace.
type Book struct {
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Translator string    `json:"translator"`
	Publisher  string    `json:"publisher"`
	Category   string    `json:"category"`
	Cover      string    `json:"cover"`
	InfoURL    string    `json:"info_url"`
	CapturedOn time.Time `json:"-"`
}

// CapturedDate returns the capture date as YYYY-MM-DD.
func (b Book) CapturedDate() string {
	return b.CapturedOn.Format(DateLayout)
}

// IsValidTitle reports whether s can be used as a search query.
func IsValidTitle(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Normalize converts a selected candidate into a Book captured at now.
func Normalize(c Candidate, now time.Time) Book {
	author, translator := SplitAuthors(c.Author)
	return Book{
		Title:      c.Title,
		Author:     author,
		Translator: translator,
		Publisher:  c.Publisher,
		Category:   MapCategory(CategoryLabel(c.CategoryName)),
		Cover:      c.Cover,
		InfoURL:    c.Link,
		CapturedOn: now,
	}
}
