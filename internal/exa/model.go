package exa

import "encoding/json"

// Webset is the upstream record for a webset job.
type Webset struct {
	ID          string       `json:"id"`
	Status      Status       `json:"status"`
	Searches    []Search     `json:"searches"`
	Enrichments []Enrichment `json:"enrichments"`
	Items       []Item       `json:"items"`
}

// Search is one search sub-job of a webset.
type Search struct {
	ID       string          `json:"id"`
	Status   Status          `json:"status"`
	Progress *SearchProgress `json:"progress"`
}

// SearchProgress reports how far a search has come. TimeLeft is in seconds.
type SearchProgress struct {
	Found      int      `json:"found"`
	Analyzed   int      `json:"analyzed"`
	Completion float64  `json:"completion"`
	TimeLeft   *float64 `json:"timeLeft"`
}

// Enrichment is one enrichment sub-job of a webset.
type Enrichment struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

// Item is an entity discovered by a webset search.
type Item struct {
	ID          string             `json:"id"`
	Properties  *ItemProperties    `json:"properties"`
	Evaluations []Evaluation       `json:"evaluations"`
	Enrichments []EnrichmentResult `json:"enrichments"`
}

// Evaluation is a criterion judgment attached to an item.
type Evaluation struct {
	Criterion string  `json:"criterion"`
	Satisfied Status  `json:"satisfied"`
	Reasoning *string `json:"reasoning"`
}

// EnrichmentResult holds the output of one enrichment for an item.
// Result is either a scalar or a list of values.
type EnrichmentResult struct {
	EnrichmentID string `json:"enrichmentId"`
	Status       Status `json:"status"`
	Result       any    `json:"result"`
}

// Entity is the typed payload of an item. It is *Person or *Company.
type Entity interface {
	entity()
}

// Person is the person variant of item properties.
type Person struct {
	Name       string         `json:"name"`
	Position   string         `json:"position"`
	Location   string         `json:"location"`
	PictureURL string         `json:"pictureUrl"`
	Company    *PersonCompany `json:"company"`
}

// PersonCompany is the employer attached to a person.
type PersonCompany struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Company is the company variant of item properties.
type Company struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Location string `json:"location"`
	LogoURL  string `json:"logoUrl"`
}

func (*Person) entity()  {}
func (*Company) entity() {}

// ItemProperties is the common part of an item plus its typed entity.
// Entity is nil for entity kinds other than person and company.
type ItemProperties struct {
	Type        string
	URL         string
	Description string
	Entity      Entity
}

// UnmarshalJSON resolves the entity variant. A record carrying both a
// person and a company resolves to the person.
func (p *ItemProperties) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type        string   `json:"type"`
		URL         string   `json:"url"`
		Description string   `json:"description"`
		Person      *Person  `json:"person"`
		Company     *Company `json:"company"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*p = ItemProperties{
		Type:        wire.Type,
		URL:         wire.URL,
		Description: wire.Description,
	}
	switch {
	case wire.Person != nil:
		p.Entity = wire.Person
	case wire.Company != nil:
		p.Entity = wire.Company
	}
	return nil
}
