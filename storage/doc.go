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


// Package storage provides the storage abstraction layer for canonize.
//
// This package defines the repository interface that decouples the
// document store implementation from the ingestion logic, so different
// backends (BadgerDB, in-memory, etc.) can be used interchangeably and
// the batch writer can be exercised against test doubles.
//
// # Constructor Return Type Pattern
//
// Public constructors follow a strict "return interface" pattern to
// enforce abstraction:
//
//	repo, err := badger.NewRepository(path)  // returns storage.ConversationRepository
//
// Internal package constructors may return concrete types since they're
// only used within the implementation package.
//
// # Uniqueness
//
// The conversation ID is the primary key. Implementations enforce its
// uniqueness at the write boundary with first-write-wins semantics:
// re-ingesting a document whose identity already exists rejects the new
// copy and counts it, which is how idempotent re-runs are achieved.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
