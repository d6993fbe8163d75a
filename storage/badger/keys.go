package badger

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
)

// Key prefixes for different data types
const (
	chunkPrefix      = "chkrec"
	chunkTopicPrefix = "chktop"
	chunkFlagPrefix  = "chkflg"
)

// Flag markers used in the flag index.
const (
	flagMarkerPDF = "pdf"
	flagMarkerFAQ = "faq"
)

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkPrefix, id))
}

// parseChunkKey recovers the chunk ID from a key produced by makeChunkKey.
func parseChunkKey(key []byte) (core.ID, error) {
	suffix, ok := strings.CutPrefix(string(key), chunkPrefix+":")
	if !ok {
		return 0, fmt.Errorf("not a chunk key: %q", key)
	}
	id, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed chunk key %q: %w", key, err)
	}
	return core.ID(id), nil
}

// makeChunkTopicKey generates a composite key for the topic index.
// Format: prefix:topic:id
func makeChunkTopicKey(topic string, id core.ID) []byte {
	prefix := chunkTopicPrefix + ":" + topic + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, []byte(prefix))
	// BigEndian so lexicographic sort matches numeric order
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChunkTopicKey generates the iteration prefix for one topic.
func makePartialChunkTopicKey(topic string) []byte {
	return []byte(chunkTopicPrefix + ":" + topic + ":")
}

// makeChunkFlagKey generates a composite key for the boolean flag index.
// Format: prefix:marker:id
func makeChunkFlagKey(marker string, id core.ID) []byte {
	prefix := chunkFlagPrefix + ":" + marker + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, []byte(prefix))
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChunkFlagKey generates the iteration prefix for one flag.
func makePartialChunkFlagKey(marker string) []byte {
	return []byte(chunkFlagPrefix + ":" + marker + ":")
}
