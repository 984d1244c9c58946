package response_models

import "tralli/internal/schema"

// QueryResult is the uniform answer envelope: the category the query was
// routed to and the canonicalized records retrieved for it. It deliberately
// carries no free-text narrative.
type QueryResult struct {
	Category schema.Category `json:"category"`
	Results  []schema.Record `json:"results"`
}
