package webset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/websetgate/websetgate/internal/exa"
)

func decodeItem(t *testing.T, raw string) exa.Item {
	t.Helper()
	var item exa.Item
	require.NoError(t, json.Unmarshal([]byte(raw), &item))
	return item
}

func TestFormatItem_NoProperties(t *testing.T) {
	got := FormatItem(exa.Item{ID: "i1"})
	assert.Equal(t, FormattedItem{ID: "i1", Type: "unknown"}, got)
}

func TestFormatItem_PersonTakesPrecedence(t *testing.T) {
	item := decodeItem(t, `{
		"id": "i2",
		"properties": {
			"type": "person",
			"url": "https://linkedin.example/ada",
			"description": "Mathematician",
			"person": {"name": "Ada", "position": "Analyst", "location": "London", "pictureUrl": "https://img/ada.png", "company": {"name": "Engines Ltd"}},
			"company": {"name": "Ignored Co", "industry": "Ignored", "logoUrl": "https://img/ignored.png"}
		}
	}`)

	raw, err := json.Marshal(FormatItem(item))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "i2",
		"type": "person",
		"url": "https://linkedin.example/ada",
		"description": "Mathematician",
		"name": "Ada",
		"position": "Analyst",
		"location": "London",
		"picture_url": "https://img/ada.png",
		"company_name": "Engines Ltd"
	}`, string(raw))
}

func TestFormatItem_Company(t *testing.T) {
	item := decodeItem(t, `{
		"id": "i3",
		"properties": {
			"type": "company",
			"url": "https://acme.io",
			"company": {"name": "Acme", "industry": "Tools", "location": "Austin", "logoUrl": "https://acme.io/logo.png"}
		}
	}`)

	got := FormatItem(item)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "Tools", got.Industry)
	assert.Equal(t, "Austin", got.Location)
	assert.Equal(t, "https://acme.io/logo.png", got.LogoURL)
	assert.Empty(t, got.CompanyName)
	assert.Empty(t, got.PictureURL)
}

func TestFormatItem_PropertiesWithoutType(t *testing.T) {
	got := FormatItem(decodeItem(t, `{"id":"i4","properties":{"url":"https://x"}}`))
	assert.Equal(t, "unknown", got.Type)
	assert.Equal(t, "https://x", got.URL)
}

func TestFormatItem_JSONKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "no properties",
			raw:  `{"id":"i1"}`,
			want: `{"id":"i1","type":"unknown"}`,
		},
		{
			name: "properties without fields",
			raw:  `{"id":"i2","properties":{"type":"article"}}`,
			want: `{"id":"i2","type":"article","url":null,"description":null}`,
		},
		{
			name: "person without optional fields",
			raw:  `{"id":"i3","properties":{"type":"person","person":{"name":"Ada"}}}`,
			want: `{"id":"i3","type":"person","url":null,"description":null,"name":"Ada","position":null,"location":null,"picture_url":null}`,
		},
		{
			name: "person with nameless company",
			raw:  `{"id":"i4","properties":{"type":"person","person":{"name":"Ada","company":{}}}}`,
			want: `{"id":"i4","type":"person","url":null,"description":null,"name":"Ada","position":null,"location":null,"picture_url":null,"company_name":null}`,
		},
		{
			name: "company",
			raw:  `{"id":"i5","properties":{"type":"company","url":"https://acme.io","company":{"name":"Acme"}}}`,
			want: `{"id":"i5","type":"company","url":"https://acme.io","description":null,"name":"Acme","industry":null,"location":null,"logo_url":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(FormatItem(decodeItem(t, tt.raw)))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestFormatItem_Evaluations(t *testing.T) {
	item := decodeItem(t, `{
		"id": "i5",
		"evaluations": [
			{"criterion": "Based in EU", "satisfied": "yes", "reasoning": "Lives in Berlin"},
			{"satisfied": null}
		]
	}`)

	got := FormatItem(item)
	require.Len(t, got.Evaluations, 2)
	assert.Equal(t, "Based in EU", got.Evaluations[0].Criterion)
	assert.Equal(t, "yes", got.Evaluations[0].Satisfied)
	require.NotNil(t, got.Evaluations[0].Reasoning)
	assert.Equal(t, "Lives in Berlin", *got.Evaluations[0].Reasoning)

	assert.Equal(t, "", got.Evaluations[1].Criterion)
	assert.Equal(t, "unclear", got.Evaluations[1].Satisfied)
	assert.Nil(t, got.Evaluations[1].Reasoning)
}

func TestFormatItem_Enrichments(t *testing.T) {
	item := decodeItem(t, `{
		"id": "i6",
		"enrichments": [
			{"enrichmentId": "email", "result": ["ada@engines.io", "ada@home.io"]},
			{"enrichmentId": "headcount", "result": 42},
			{"result": "no id"},
			{"enrichmentId": "empty-list", "result": []},
			{"enrichmentId": "null", "result": null},
			{"enrichmentId": "blank", "result": ""}
		]
	}`)

	got := FormatItem(item)
	assert.Equal(t, map[string]any{
		"email":      "ada@engines.io",
		"headcount":  float64(42),
		"enrichment": "no id",
	}, got.Enrichments)
}

func TestFormatItem_EnrichmentsAllEmpty(t *testing.T) {
	item := decodeItem(t, `{"id":"i7","enrichments":[{"enrichmentId":"e","result":null}]}`)

	got := FormatItem(item)
	assert.Nil(t, got.Enrichments)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "enrichments")
}
