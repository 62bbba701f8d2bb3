// Package llm provides the language model layer behind the concierge's chat replies.
// It supports OpenAI and Anthropic chat APIs, with retry logic, rate limiting,
// and response caching applied by Responder.
package llm
