package normalize

import (
	"sort"
	"strings"

	"tracker/internal/model"
	"tracker/internal/store"
)

// Package normalize turns loosely-structured store records into the stable
// shapes the rest of the service consumes. Every function here is pure and
// total: malformed or absent input yields the documented default, never an
// error.

// Defaults applied when a source field is absent or empty.
const (
	DefaultProjectName = "Untitled"
	DefaultClientName  = "N/A"
	DefaultStatus      = "Backlog"
)

// Accepted property names per logical field, in priority order. Collections
// configured by hand drift in naming and casing; the first present alias
// wins, with a case-insensitive pass as the last resort.
var (
	nameAliases     = []string{"Name", "Project Name", "Title"}
	descAliases     = []string{"Description", "Details"}
	clientAliases   = []string{"Client", "Client Name", "Customer"}
	statusAliases   = []string{"Status", "Stage"}
	timelineAliases = []string{"Timeline", "Start Date", "Date"}
	emailAliases    = []string{"Email", "Contact Email"}
	docAliases      = []string{"Documents", "Files", "Attachments"}
	publicIDAliases = []string{store.FieldPublicID, "PublicID"}
)

func lookup(props map[string]store.Property, aliases []string) (store.Property, bool) {
	for _, a := range aliases {
		if p, ok := props[a]; ok {
			return p, true
		}
	}
	// Case-insensitive fallback over sorted keys so the winner is stable.
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, a := range aliases {
		for _, k := range keys {
			if strings.EqualFold(k, a) {
				return props[k], true
			}
		}
	}
	return store.Property{}, false
}

// text extracts plain content from a title or rich-text property, whichever
// shape the field actually has.
func text(p store.Property) string {
	if len(p.Title) > 0 {
		return p.Title[0].PlainText
	}
	if len(p.RichText) > 0 {
		return p.RichText[0].PlainText
	}
	return ""
}

// selectName extracts the chosen option of a status or select property,
// falling back to plain text for collections that model these as text.
func selectName(p store.Property) string {
	if p.Status != nil {
		return p.Status.Name
	}
	if p.Select != nil {
		return p.Select.Name
	}
	return text(p)
}

func dateStart(p store.Property) *string {
	if p.Date != nil && p.Date.Start != "" {
		s := p.Date.Start
		return &s
	}
	return nil
}

// documents collects attachment links, preferring the internally-hosted URL
// over the external one. Attachments with no usable URL are skipped.
func documents(p store.Property) []model.DocumentLink {
	links := make([]model.DocumentLink, 0, len(p.Files))
	for _, f := range p.Files {
		var u string
		switch {
		case f.File != nil && f.File.URL != "":
			u = f.File.URL
		case f.External != nil && f.External.URL != "":
			u = f.External.URL
		default:
			continue
		}
		links = append(links, model.DocumentLink{Name: f.Name, URL: u})
	}
	return links
}

// Fields normalizes one raw record into a ProjectView. Every output field is
// populated: missing, renamed, or differently-typed source properties
// degrade to the documented defaults.
func Fields(rec store.Record) model.ProjectView {
	v := model.ProjectView{
		ProjectID:   rec.ID,
		ProjectName: DefaultProjectName,
		ClientName:  DefaultClientName,
		Status:      DefaultStatus,
		Documents:   []model.DocumentLink{},
	}

	if p, ok := lookup(rec.Properties, nameAliases); ok {
		if s := text(p); s != "" {
			v.ProjectName = s
		}
	}
	if p, ok := lookup(rec.Properties, descAliases); ok {
		v.Description = text(p)
	}
	if p, ok := lookup(rec.Properties, clientAliases); ok {
		if s := selectName(p); s != "" {
			v.ClientName = s
		}
	}
	if p, ok := lookup(rec.Properties, statusAliases); ok {
		if s := selectName(p); s != "" {
			v.Status = s
		}
	}
	if p, ok := lookup(rec.Properties, timelineAliases); ok {
		v.Timeline = dateStart(p)
	}
	if p, ok := lookup(rec.Properties, emailAliases); ok {
		v.Email = p.Email
	}
	if p, ok := lookup(rec.Properties, docAliases); ok {
		v.Documents = documents(p)
	}

	return v
}

// PublicID returns the record's public identifier, or "" when unset.
// Used by the issuer to re-check emptiness right before writing.
func PublicID(rec store.Record) string {
	if p, ok := lookup(rec.Properties, publicIDAliases); ok {
		return text(p)
	}
	return ""
}
