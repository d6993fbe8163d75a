// Copyright 2025 The jiopay-rag-chatbot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package prompt

import (
	"fmt"
	"strings"

	"github.com/HarVkr/jiopay-rag-chatbot/core"
)

// BuildContext formats retrieved chunks into the numbered context block the
// answer prompt cites from. Entries are 1-based so the numbering matches the
// [1], [2] citations the model is instructed to emit, and the same numbering
// the response's source list uses.
//
// Source types are matched by substring, so "faq_web" formats as an FAQ
// entry. Unknown types fall through with the raw type as the label.
func BuildContext(chunks []*core.Chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	entries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		sourceType := chunk.SourceType
		if sourceType == "" {
			sourceType = "unknown"
		}
		topic := chunk.Topic
		if topic == "" {
			topic = "general"
		}

		var entry string
		switch {
		case strings.Contains(sourceType, "faq"):
			entry = fmt.Sprintf("[%d] FAQ (Topic: %s): %s", i+1, topic, chunk.Content)
		case strings.Contains(sourceType, "pdf"):
			entry = fmt.Sprintf("[%d] Policy Document: %s", i+1, chunk.Content)
		case strings.Contains(sourceType, "web"):
			entry = fmt.Sprintf("[%d] Web Information: %s", i+1, chunk.Content)
		default:
			entry = fmt.Sprintf("[%d] %s: %s", i+1, sourceType, chunk.Content)
		}
		entries = append(entries, entry)
	}

	return strings.Join(entries, "\n\n")
}
