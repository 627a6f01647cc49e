package constant

const (
	// DataChatContextPrompt frames the working table for the local model.
	// The rendered table is appended after this header.
	DataChatContextPrompt = `Here is the data you are analyzing:

%s

Now, please answer the user's question based on this data.`

	// AssistantContextPrompt is injected as the first user turn of the cloud
	// assistant conversation when a working table exists.
	AssistantContextPrompt = `CONTEXT: Here is some data the user just searched for. Use it to answer their questions.

%s`

	// AssistantContextAck is the canned model turn acknowledging the context.
	AssistantContextAck = "Got it! I have the data. What would you like to know?"

	// Messages returned in place of an assistant reply on transport
	// failures; the session itself keeps working.
	OllamaUnreachableMessage = "Can't connect to the local Ollama server. Make sure Ollama is running, or use the cloud assistant instead."
	OllamaBadResponseMessage = "Error: could not decode the response from Ollama."
	GeminiMissingKeyMessage  = "The cloud assistant is unavailable: no Gemini API key is configured."
)
