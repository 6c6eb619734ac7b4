package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Session log limits
	SessionMaxMessages    = 50
	SessionRecentContext  = 10
	SessionStorageKeyBase = "session:messages:"

	// Retrieval and generation parameters
	RetrievalTopK         = 5
	GenerationMaxTokens   = 512
	GenerationTemperature = 0.7

	IngestChunkSize = 10
)

const ChatSystemPromptV1 = `You are an AI assistant for a personal portfolio. Your role is to answer questions about the portfolio owner's background, experience, projects, and skills in a professional and friendly manner.

Key guidelines:
- Answer questions based ONLY on the provided context from the portfolio
- If you don't have information to answer a question, politely say so
- Be concise but informative
- Highlight relevant achievements and technical skills when appropriate
- Use a professional yet conversational tone
- If asked about contact information, provide the email or LinkedIn from the context

Context will be provided with each query containing relevant information from the portfolio.`

const (
	ChatFallbackNoResponse = "I apologize, but I was unable to generate a response."

	ContextNoRelevantInformation = "No relevant information found in the portfolio."
	ContextHeader                = "Relevant information from the portfolio:\n\n"
)
