package request_models

type QueryRequest struct {
	City    string        `json:"city" binding:"required"`
	Query   string        `json:"query" binding:"required"`
	Filters *QueryFilters `json:"filters,omitempty"`
}

// QueryFilters are optional soft predicates applied after similarity ranking.
type QueryFilters struct {
	Category  string  `json:"category,omitempty"`
	MinRating float64 `json:"minRating,omitempty"`
}
