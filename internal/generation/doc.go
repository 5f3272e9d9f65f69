// Package generation enhances a user's card data through an external
// text-generation model: it builds the prompt, calls the model client,
// extracts structured JSON from the reply, and falls back to the original
// data on any parse or shape failure.
package generation
