package insight

import "strings"

// recommendationKeywords are the case-sensitive substrings that mark a line
// of the analysis text as a recommendation.
var recommendationKeywords = []string{"recommendation", "suggestion", "try", "consider"}

// defaultRecommendations are returned when no line of the analysis matched.
var defaultRecommendations = []string{
	"Focus on self-care and mindfulness",
	"Consider talking to a trusted friend or professional",
}

// ExtractRecommendations scans free-form analysis text line by line and keeps
// every line containing a recommendation keyword. The matching is a crude
// substring check and can pick up unrelated lines; downstream consumers treat
// the result as best-effort.
func ExtractRecommendations(text string) []string {
	var recommendations []string
	for _, line := range strings.Split(text, "\n") {
		for _, kw := range recommendationKeywords {
			if strings.Contains(line, kw) {
				recommendations = append(recommendations, strings.TrimSpace(line))
				break
			}
		}
	}
	if len(recommendations) == 0 {
		return append([]string(nil), defaultRecommendations...)
	}
	return recommendations
}
