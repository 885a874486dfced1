// Copyright 2025 Poiesic Systems
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

// Package ingestion orchestrates the flow from raw row sources to the
// conversation store.
//
// A Source yields raw rows for one (dataset, split) pair. The Pipeline
// maps each row through a dataset adapter and the normalizer, then hands
// surviving records to a BatchWriter that bulk-upserts them in bounded
// batches. The store enforces first-write-wins on the conversation ID,
// which makes re-running a source over the same data a no-op: already
// stored conversations are counted as rejected, never overwritten.
//
// Sources run independently. RunAll fans them out over a worker pool,
// one report per source, and a failing source never stops its siblings.
package ingestion
