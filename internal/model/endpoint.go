package model

// EndpointDoc is one entry of the GET /api listing.
//
// Queries is either the documented list of query parameters or the string
// "No queries found". ExampleResponse is the example encoded as a JSON string.
type EndpointDoc struct {
	Endpoint        string `json:"endpoint"`
	Description     string `json:"description"`
	Queries         any    `json:"queries"`
	ExampleResponse string `json:"exampleResponse"`
}
