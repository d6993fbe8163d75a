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


// Package search routes a classified query through an ordered chain of
// retrieval strategies against the chunk store.
//
// The Router tries specialized strategies first (PDF policy, detected topic,
// operational FAQ, hybrid) and stops at the first non-empty result. Queries
// that trigger no specialized strategy, or drain them all empty, land on the
// comprehensive low-threshold search. Strategy errors never escape the
// router; a failing step falls through to the next, and a failure in the
// comprehensive step degrades to the basic semantic safety net.
package search
