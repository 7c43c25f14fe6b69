// Package ai defines the capability interfaces for the hosted model
// services: embedding generation, query expansion and use-case generation.
// The openai subpackage implements them against the OpenAI API; the mock
// subpackage provides deterministic test doubles.
package ai
