package geode

const Unknown = "Unknown"

// Analysis is how a model reads a page.
type Analysis struct {
	PrimaryTopic   string   `json:"primary_topic"`
	TargetAudience string   `json:"target_audience"`
	Ambiguities    []string `json:"ambiguities"`
}

// Response is the payload the analysis endpoint returns and the page renders.
type Response struct {
	Analysis Analysis `json:"analysis"`
	Diffs    []string `json:"diffs"`
}

// MockPayload is returned when no model credential is configured.
func MockPayload() Response {
	return Response{
		Analysis: Analysis{
			PrimaryTopic:   "Digital Marketing",
			TargetAudience: "Startups and SMEs",
			Ambiguities:    []string{"SEO", "Content Optimization"},
		},
		Diffs: []string{
			"Added meta description for better AI search visibility",
			"Reworded headings for clarity",
		},
	}
}

// FallbackPayload replaces a model completion that is not JSON.
func FallbackPayload() Response {
	return Response{
		Analysis: Analysis{
			PrimaryTopic:   Unknown,
			TargetAudience: Unknown,
			Ambiguities:    []string{},
		},
		Diffs: []string{"Could not parse AI response"},
	}
}
