package webset

import "encoding/json"

// Item limits accepted by the poll endpoint.
const (
	DefaultItemLimit = 20
	MaxItemLimit     = 100
)

// PollOptions controls what a poll returns.
type PollOptions struct {
	IncludeItems bool
	ItemLimit    int
}

// DefaultPollOptions returns the options used when the caller sets none.
func DefaultPollOptions() PollOptions {
	return PollOptions{IncludeItems: true, ItemLimit: DefaultItemLimit}
}

// Progress is the search progress of a webset.
type Progress struct {
	Found      int      `json:"found"`
	Analyzed   int      `json:"analyzed"`
	Completion float64  `json:"completion"`
	TimeLeft   *float64 `json:"time_left"`
}

// StatusResponse is the snapshot returned to a polling client.
type StatusResponse struct {
	WebsetID      string          `json:"webset_id"`
	Status        string          `json:"status"`
	SearchStatus  *string         `json:"search_status"`
	IsProcessing  bool            `json:"is_processing"`
	IsComplete    bool            `json:"is_complete"`
	Progress      *Progress       `json:"progress"`
	ItemsFound    int             `json:"items_found"`
	ItemsReturned int             `json:"items_returned"`
	Items         []FormattedItem `json:"items"`
	Message       string          `json:"message"`
}

// FormattedItem is the flattened form of a webset item. Property keys are
// emitted only when the item carried them; an empty value encodes as null.
type FormattedItem struct {
	ID          string
	Type        string
	URL         string
	Description string
	Name        string
	Position    string
	Location    string
	PictureURL  string
	CompanyName string
	Industry    string
	LogoURL     string
	Evaluations []FormattedEvaluation
	Enrichments map[string]any

	keys []string
}

func (f FormattedItem) MarshalJSON() ([]byte, error) {
	values := map[string]string{
		"url":          f.URL,
		"description":  f.Description,
		"name":         f.Name,
		"position":     f.Position,
		"location":     f.Location,
		"picture_url":  f.PictureURL,
		"company_name": f.CompanyName,
		"industry":     f.Industry,
		"logo_url":     f.LogoURL,
	}

	out := map[string]any{"id": f.ID, "type": f.Type}
	for _, k := range f.keys {
		if v := values[k]; v != "" {
			out[k] = v
		} else {
			out[k] = nil
		}
	}
	if len(f.Evaluations) > 0 {
		out["evaluations"] = f.Evaluations
	}
	if len(f.Enrichments) > 0 {
		out["enrichments"] = f.Enrichments
	}
	return json.Marshal(out)
}

// FormattedEvaluation is one criterion judgment on a formatted item.
type FormattedEvaluation struct {
	Criterion string  `json:"criterion"`
	Satisfied string  `json:"satisfied"`
	Reasoning *string `json:"reasoning"`
}
