package insight

import "fmt"

const analyzeSystemPrompt = "You are a compassionate mental health wellness assistant. Provide supportive, helpful insights and practical recommendations for mental wellness. Always be encouraging and professional."

const chatSystemPromptTemplate = `You are a compassionate mental health wellness chatbot. Your role is to:
- Provide supportive, encouraging responses
- Offer practical wellness advice and coping strategies
- Help users with stress management, mood improvement, and self-care
- Always maintain a warm, professional, and helpful tone
- If someone is in crisis, encourage them to seek professional help
- Focus on evidence-based wellness practices

Context: %s`

const defaultChatContext = "General wellness conversation"

// buildAnalyzePrompt renders the user prompt for a journal entry analysis.
func buildAnalyzePrompt(content, mood, activities string) string {
	if mood == "" {
		mood = "Not specified"
	}
	if activities == "" {
		activities = "Not specified"
	}
	return fmt.Sprintf(`Analyze this mental health journal entry and provide helpful insights and recommendations:

Entry: %s
Mood: %s
Activities: %s

Please provide:
1. A brief analysis of the entry
2. 2-3 specific, actionable wellness recommendations
3. Encouraging words or insights

Keep the response warm, supportive, and focused on mental wellness.`, content, mood, activities)
}

// buildChatSystemPrompt renders the chat system prompt with the conversation
// context line.
func buildChatSystemPrompt(contextNote string) string {
	if contextNote == "" {
		contextNote = defaultChatContext
	}
	return fmt.Sprintf(chatSystemPromptTemplate, contextNote)
}
