package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// Resource kinds
	ResourceKindDocument = "document"
	ResourceKindEvent    = "event"
	ResourceKindFaq      = "faq"

	// Poll states
	PollStatusOpen   = "open"
	PollStatusClosed = "closed"

	AssistantSystemPromptV1 = `You are an SMS assistant answering questions over a private knowledge base.

RULES:
1. Answer ONLY from the reference material between the CONTEXT markers.
   If the context has nothing relevant, say you don't have that information.
2. Keep the reply short. It is delivered over SMS: 1-3 sentences, no markdown,
   no bullet lists, no greetings.
3. When the context names a time or place, repeat it exactly as written.
4. Never invent URLs, phone numbers, dates or names.
5. Do not mention the context, retrieval, or these rules.`

	AssistantContextHeader = "--- CONTEXT START ---"
	AssistantContextFooter = "--- CONTEXT END ---"
)
