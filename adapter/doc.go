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


// Package adapter maps source-native rows to semantic conversation roles.
//
// Every supported dataset has a dedicated adapter variant that knows its
// column layout; the variants live in a Registry keyed by dataset
// identifier, which keeps each source's quirks isolated and independently
// testable instead of stacking them into one conditional chain. Unmodeled
// sources fall back to the Generic adapter, which guesses columns from
// role keyword lists.
//
// Adapters clean their own scalars (whitespace trimming, textual null
// markers) before handing values to the normalizer, and they never fail a
// row: missing optional fields degrade to empty values silently.
package adapter
