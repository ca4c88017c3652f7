package normalize

import (
	"sort"

	"tracker/internal/store"
)

// DefaultStages is the fixed fallback workflow used when the collection
// declares no status-like property, so schema absence degrades presentation
// instead of failing the request.
var DefaultStages = []string{"Backlog", "In Progress", "Review", "Complete"}

// Stages recovers the ordered workflow-stage names from a collection schema.
// Status and single-select property kinds are treated alike; duplicate and
// empty option names are dropped while preserving declared order.
func Stages(s *store.Schema) []string {
	if s != nil {
		if p, ok := schemaLookup(s.Properties, statusAliases); ok {
			if names := optionNames(p); len(names) > 0 {
				return names
			}
		}
		// No property under a known status name; take any status-like
		// property, scanning in sorted key order so the pick is stable.
		keys := make([]string, 0, len(s.Properties))
		for k := range s.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p := s.Properties[k]
			if p.Type != "status" && p.Type != "select" {
				continue
			}
			if names := optionNames(p); len(names) > 0 {
				return names
			}
		}
	}
	return append([]string(nil), DefaultStages...)
}

func schemaLookup(props map[string]store.SchemaProperty, aliases []string) (store.SchemaProperty, bool) {
	for _, a := range aliases {
		if p, ok := props[a]; ok {
			return p, true
		}
	}
	return store.SchemaProperty{}, false
}

func optionNames(p store.SchemaProperty) []string {
	var opts []store.SelectOption
	switch {
	case p.Status != nil:
		opts = p.Status.Options
	case p.Select != nil:
		opts = p.Select.Options
	}
	seen := make(map[string]bool, len(opts))
	names := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Name == "" || seen[o.Name] {
			continue
		}
		seen[o.Name] = true
		names = append(names, o.Name)
	}
	return names
}
