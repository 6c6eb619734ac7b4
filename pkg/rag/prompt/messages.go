package prompt

import (
	"portfolio-chatbot-be/internal/constant"
	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/pkg/llm"
)

// BuildChatMessages orders the generation input: persona, context, recent
// history, then the new user message.
func BuildChatMessages(context string, recent []entity.ChatMessage, userMessage string) []llm.Message {
	messages := make([]llm.Message, 0, len(recent)+3)
	messages = append(messages,
		llm.Message{Role: llm.RoleSystem, Content: constant.ChatSystemPromptV1},
		llm.Message{Role: llm.RoleSystem, Content: context},
	)
	for _, m := range recent {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})
}
