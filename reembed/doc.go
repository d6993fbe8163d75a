// Package reembed regenerates embeddings for every stored corpus chunk.
//
// Switching embedding models invalidates the vectors in the knowledge base;
// this package walks all chunks in batches, re-embeds their content with the
// configured embedder, and writes the normalized vectors back. Progress is
// reported to a writer, and embedding calls retry with exponential backoff.
package reembed
