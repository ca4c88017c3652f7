package store

import "time"

// Wire types for the store's REST API. Decoding is deliberately tolerant:
// a property of an unknown kind decodes with Type set and every payload nil,
// which the normalizer treats the same as a missing property.

// Record is one entry in the tracker collection (a "page").
type Record struct {
	ID          string              `json:"id"`
	CreatedTime time.Time           `json:"created_time"`
	Properties  map[string]Property `json:"properties"`
}

// Property is the tagged variant carried by each record field. Exactly one
// payload matches Type; the rest stay at their zero values.
type Property struct {
	Type     string        `json:"type"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Status   *SelectOption `json:"status,omitempty"`
	Date     *DateRange    `json:"date,omitempty"`
	Email    string        `json:"email,omitempty"`
	Files    []File        `json:"files,omitempty"`
}

// RichText is one text segment; only the plain content matters here.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is one choice of a select or status property.
type SelectOption struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// DateRange is a date property value. Start is an ISO date or datetime.
type DateRange struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// File is one attachment. Internally hosted files carry File, externally
// linked ones carry External.
type File struct {
	Name     string   `json:"name"`
	File     *FileRef `json:"file,omitempty"`
	External *FileRef `json:"external,omitempty"`
}

// FileRef holds the download URL of an attachment.
type FileRef struct {
	URL string `json:"url"`
}

// Comment is one entry in a record's comment thread.
type Comment struct {
	ID          string     `json:"id"`
	CreatedTime time.Time  `json:"created_time"`
	RichText    []RichText `json:"rich_text"`
}

// Schema describes the collection's properties, whichever API revision it
// was fetched through.
type Schema struct {
	Properties map[string]SchemaProperty `json:"properties"`
}

// SchemaProperty describes one collection property. Status and Select carry
// the declared option lists for their respective kinds.
type SchemaProperty struct {
	Type   string      `json:"type"`
	Status *OptionList `json:"status,omitempty"`
	Select *OptionList `json:"select,omitempty"`
}

// OptionList is the ordered set of options a select-like property declares.
type OptionList struct {
	Options []SelectOption `json:"options"`
}
