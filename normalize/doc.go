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


// Package normalize turns heterogeneous raw rows into canonical
// conversation records.
//
// The Normalizer applies the scrub and identity stages and enforces the
// filtering policy: a row whose user and agent texts are both empty after
// scrubbing produces no record at all, which keeps content-free rows out
// of the store.
//
// The language detector is taken as a small interface so tests can supply
// a deterministic double instead of loading detection models.
package normalize
