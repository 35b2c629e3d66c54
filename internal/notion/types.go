package notion

// PageRequest is the body of a create-page request.
type PageRequest struct {
	Parent     Parent              `json:"parent"`
	Cover      *File               `json:"cover,omitempty"`
	Properties map[string]Property `json:"properties"`
}

// Parent references the database a page is created in.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// File is an externally hosted file such as a cover image.
type File struct {
	Type     string       `json:"type"`
	External ExternalFile `json:"external"`
}

// ExternalFile holds the URL of an external file.
type ExternalFile struct {
	URL string `json:"url"`
}

// Property is a typed page property value. Exactly one field is set.
type Property struct {
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *DateRange     `json:"date,omitempty"`
}

// RichText is a plain text run.
type RichText struct {
	Type string `json:"type,omitempty"`
	Text Text   `json:"text"`
}

// Text is the content of a text run.
type Text struct {
	Content string `json:"content"`
}

// SelectOption names a select or multi-select option.
type SelectOption struct {
	Name string `json:"name"`
}

// DateRange is a date property. A nil End is sent as null (open end).
type DateRange struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

// errorResponse is the error object returned by the Notion API.
type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TitleProperty returns a title property.
func TitleProperty(s string) Property {
	return Property{Title: []RichText{{Text: Text{Content: s}}}}
}

// RichTextProperty returns a rich text property.
func RichTextProperty(s string) Property {
	return Property{RichText: []RichText{{Type: "text", Text: Text{Content: s}}}}
}

// URLProperty returns a URL property.
func URLProperty(u string) Property {
	return Property{URL: &u}
}

// SelectProperty returns a single-select property.
func SelectProperty(name string) Property {
	return Property{Select: &SelectOption{Name: name}}
}

// MultiSelectProperty returns a multi-select property.
func MultiSelectProperty(names ...string) Property {
	opts := make([]SelectOption, len(names))
	for i, n := range names {
		opts[i] = SelectOption{Name: n}
	}
	return Property{MultiSelect: opts}
}

// DateProperty returns a date property with an open end.
func DateProperty(start string) Property {
	return Property{Date: &DateRange{Start: start}}
}
