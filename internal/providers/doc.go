// Package providers implements inference clients for locally hosted LLM
// servers: the native Ollama chat API and OpenAI-compatible endpoints.
//
// Each Review call issues exactly one blocking HTTP request. There are no
// retries and no streaming. Transport and API failures surface as
// InferenceError; an incomplete generation (the backend reports the
// response as not done) yields empty content without an error.
package providers
