// Package huggingface provides HTTP embedding clients for the hosted
// inference endpoint and the last-resort local embedding microservice.
//
// Both clients implement ai.Embedder and serve as the second and third tiers
// of the embedding fallback chain. They speak plain JSON over net/http; no
// SDK exists for either surface.
package huggingface
