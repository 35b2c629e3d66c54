package notion

import (
	"context"

	"github.com/bookrecord/bookrec/internal/book"
)

// Property names in the book database.
const (
	PropTitle      = "title"
	PropAuthor     = "지은이"
	PropTranslator = "번역"
	PropPublisher  = "출판사"
	PropInfoURL    = "책 정보(알라딘)"
	PropReadDate   = "읽은 날짜"
	PropCategory   = "분류"
	PropProgress   = "진행도"
)

// PageOptions holds optional page content.
type PageOptions struct {
	// ProgressStatus, when set, is written to the progress select property.
	ProgressStatus string
}

// NewBookPage builds the create-page request for a normalized book.
// Empty URL and select values are left out since Notion rejects them.
func NewBookPage(databaseID string, b book.Book, opts PageOptions) PageRequest {
	props := map[string]Property{
		PropTitle:      TitleProperty(b.Title),
		PropAuthor:     RichTextProperty(b.Author),
		PropTranslator: RichTextProperty(b.Translator),
		PropReadDate:   DateProperty(b.CapturedDate()),
		PropCategory:   MultiSelectProperty(b.Category),
	}
	if b.Publisher != "" {
		props[PropPublisher] = SelectProperty(b.Publisher)
	}
	if b.InfoURL != "" {
		props[PropInfoURL] = URLProperty(b.InfoURL)
	}
	if opts.ProgressStatus != "" {
		props[PropProgress] = SelectProperty(opts.ProgressStatus)
	}

	page := PageRequest{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: props,
	}
	if b.Cover != "" {
		page.Cover = &File{Type: "external", External: ExternalFile{URL: b.Cover}}
	}
	return page
}

// Sink submits normalized books to one database.
type Sink struct {
	client     *Client
	databaseID string
	opts       PageOptions
}

// NewSink creates a Sink that writes to databaseID.
func NewSink(client *Client, databaseID string, opts PageOptions) *Sink {
	return &Sink{client: client, databaseID: databaseID, opts: opts}
}

// Submit creates a page for b.
func (s *Sink) Submit(ctx context.Context, b book.Book) error {
	return s.client.CreatePage(ctx, NewBookPage(s.databaseID, b, s.opts))
}
