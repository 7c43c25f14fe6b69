package openai

// System prompts for the chat-completion capabilities. Both ask for plain
// text with no markup so the output can be stored or embedded directly.
const (
	expandQuerySystemPrompt = `You expand search queries for a personal prompt library. ` +
		`Given a user's query, append 3-5 closely related terms, tasks or intents ` +
		`that someone with this goal might also mean. Return a single line: the ` +
		`original query followed by the related terms, comma-separated. No ` +
		`explanations, no quotes.`

	useCasesSystemPrompt = `You summarize when an AI prompt is useful. Given a prompt's ` +
		`name and content, write 2-3 short phrases describing tasks and situations ` +
		`it helps with, comma-separated, plain text. No preamble.`
)
