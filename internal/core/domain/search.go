package domain

// DefaultPageCount is the number of pages returned when none is requested.
const DefaultPageCount = 1

// QueryOptions configures a question.
type QueryOptions struct {
	// Limit is the number of pages to return.
	// Values outside [1, page count] are clamped.
	Limit int
}

// PageHit is a single ranked answer page.
type PageHit struct {
	// Rank is the 1-based position in the result list.
	Rank int `json:"rank" yaml:"rank"`

	// Index is the page's position in Index.Pages.
	Index int `json:"index" yaml:"index"`

	// Score is the dot product of the weighted page and question vectors.
	Score float64 `json:"score" yaml:"score"`

	// Text is the full page text.
	Text string `json:"text" yaml:"text"`
}
