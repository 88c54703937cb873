package service

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/deppfellow/news-api/internal/model"
)

const (
	noDescription     = "No description found"
	noQueries         = "No queries found"
	noExampleResponse = "no example response found"
)

//go:embed data/endpoints.json
var endpointsJSON []byte

type endpointDetails struct {
	Description     string          `json:"description"`
	Queries         any             `json:"queries"`
	ExampleResponse json.RawMessage `json:"exampleResponse"`
}

// EndpointService serves the API's own documentation for GET /api.
type EndpointService struct {
	docs []model.EndpointDoc
}

// NewEndpointService parses the embedded endpoint documentation once.
func NewEndpointService() (*EndpointService, error) {
	docs, err := parseEndpoints(endpointsJSON)
	if err != nil {
		return nil, err
	}
	return &EndpointService{docs: docs}, nil
}

func (s *EndpointService) ListEndpoints() []model.EndpointDoc {
	return s.docs
}

// parseEndpoints maps {"<METHOD path>": details} onto EndpointDocs sorted by
// endpoint, filling in a fallback text for every missing detail.
func parseEndpoints(raw []byte) ([]model.EndpointDoc, error) {
	var byEndpoint map[string]endpointDetails
	if err := json.Unmarshal(raw, &byEndpoint); err != nil {
		return nil, fmt.Errorf("decoding endpoints: %w", err)
	}

	keys := make([]string, 0, len(byEndpoint))
	for k := range byEndpoint {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	docs := make([]model.EndpointDoc, 0, len(keys))
	for _, k := range keys {
		details := byEndpoint[k]

		doc := model.EndpointDoc{
			Endpoint:        k,
			Description:     details.Description,
			Queries:         details.Queries,
			ExampleResponse: noExampleResponse,
		}
		if doc.Description == "" {
			doc.Description = noDescription
		}
		if q, ok := doc.Queries.(string); doc.Queries == nil || (ok && q == "") {
			doc.Queries = noQueries
		}
		if len(details.ExampleResponse) > 0 && !bytes.Equal(details.ExampleResponse, []byte("null")) {
			var compact bytes.Buffer
			if err := json.Compact(&compact, details.ExampleResponse); err != nil {
				return nil, fmt.Errorf("compacting example response of %q: %w", k, err)
			}
			doc.ExampleResponse = compact.String()
		}

		docs = append(docs, doc)
	}

	return docs, nil
}
