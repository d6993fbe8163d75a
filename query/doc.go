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


// Package query classifies raw support questions before retrieval.
//
// Analyze is a pure function over an ordered rule table: keyword lists decide
// whether a question is policy/compliance oriented, an operational "how to"
// question, or scoped to a known product topic. The search router consumes the
// resulting Analysis to pick a retrieval strategy; topic detection is
// first-match-wins in the declared table order, so routing depends on topic
// identity, not merely on whether some topic matched.
//
// The tables in keywords.go are data, not control flow. Editing a keyword list
// changes classification without touching the analyzer.
package query
