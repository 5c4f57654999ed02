package webset

import (
	"reflect"

	"github.com/websetgate/websetgate/internal/exa"
)

// FormatItem flattens an upstream item. Missing optional fields fall back
// to defaults; it never fails.
func FormatItem(item exa.Item) FormattedItem {
	out := FormattedItem{ID: item.ID, Type: "unknown"}

	if props := item.Properties; props != nil {
		if props.Type != "" {
			out.Type = props.Type
		}
		out.URL = props.URL
		out.Description = props.Description
		out.keys = append(out.keys, "url", "description")

		switch e := props.Entity.(type) {
		case *exa.Person:
			out.Name = e.Name
			out.Position = e.Position
			out.Location = e.Location
			out.PictureURL = e.PictureURL
			out.keys = append(out.keys, "name", "position", "location", "picture_url")
			if e.Company != nil {
				out.CompanyName = e.Company.Name
				out.keys = append(out.keys, "company_name")
			}
		case *exa.Company:
			out.Name = e.Name
			out.Industry = e.Industry
			out.Location = e.Location
			out.LogoURL = e.LogoURL
			out.keys = append(out.keys, "name", "industry", "location", "logo_url")
		}
	}

	if len(item.Evaluations) > 0 {
		out.Evaluations = make([]FormattedEvaluation, 0, len(item.Evaluations))
		for _, ev := range item.Evaluations {
			satisfied := string(ev.Satisfied)
			if satisfied == "" {
				satisfied = "unclear"
			}
			out.Evaluations = append(out.Evaluations, FormattedEvaluation{
				Criterion: ev.Criterion,
				Satisfied: satisfied,
				Reasoning: ev.Reasoning,
			})
		}
	}

	if len(item.Enrichments) > 0 {
		enrichments := make(map[string]any)
		for _, e := range item.Enrichments {
			if !present(e.Result) {
				continue
			}
			key := e.EnrichmentID
			if key == "" {
				key = "enrichment"
			}
			if list, ok := e.Result.([]any); ok {
				enrichments[key] = list[0]
			} else {
				enrichments[key] = e.Result
			}
		}
		if len(enrichments) > 0 {
			out.Enrichments = enrichments
		}
	}

	return out
}

// present reports whether an enrichment result carries a value: nil, empty
// strings and collections, false and zero numbers do not.
func present(v any) bool {
	if v == nil {
		return false
	}
	return !reflect.ValueOf(v).IsZero() && !isEmptyCollection(v)
}

func isEmptyCollection(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return rv.Len() == 0
	}
	return false
}
