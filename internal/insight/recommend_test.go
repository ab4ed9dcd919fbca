package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRecommendations(t *testing.T) {
	text := "You had a difficult day.\n" +
		"Maybe consider a short evening walk.\n" +
		"Things will get better.\n" +
		"You could try writing down three good moments.\n" +
		"Keep going!"

	got := ExtractRecommendations(text)
	require.Len(t, got, 2)
	assert.Equal(t, "Maybe consider a short evening walk.", got[0])
	assert.Equal(t, "You could try writing down three good moments.", got[1])
}

func TestExtractRecommendationsCaseSensitive(t *testing.T) {
	// The keyword match is case-sensitive; capitalized variants do not count.
	got := ExtractRecommendations("Consider this.\nTry that.\nSUGGESTION: rest.")
	assert.Equal(t, defaultRecommendations, got)
}

func TestExtractRecommendationsDefaults(t *testing.T) {
	got := ExtractRecommendations("Nothing actionable here.\nJust kind words.")
	require.Len(t, got, 2)
	assert.Equal(t, "Focus on self-care and mindfulness", got[0])
	assert.Equal(t, "Consider talking to a trusted friend or professional", got[1])
}

func TestExtractRecommendationsTrimsLines(t *testing.T) {
	got := ExtractRecommendations("   try deep breathing   \n")
	require.Len(t, got, 1)
	assert.Equal(t, "try deep breathing", got[0])
}

func TestExtractRecommendationsKeywordPerLine(t *testing.T) {
	// A line matching several keywords is kept once.
	got := ExtractRecommendations("My suggestion: try to consider resting.")
	require.Len(t, got, 1)
}
