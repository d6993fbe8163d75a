// Package ingestion loads scraped corpus files, embeds their chunks in
// concurrent batches, and stores them in the chunk repository.
//
// Chunk IDs are derived from content, so re-ingesting the same corpus
// overwrites records in place instead of duplicating them. Embedding calls
// are retried with exponential backoff before a batch is given up on.
package ingestion
