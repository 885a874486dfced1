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

package canonize

import (
	"log/slog"

	"github.com/poiesic/canonize/adapter"
	"github.com/poiesic/canonize/ingestion"
	"github.com/poiesic/canonize/lang"
	"github.com/poiesic/canonize/normalize"
	"github.com/poiesic/canonize/storage"
	"github.com/poiesic/canonize/storage/badger"
)

// Database is the top-level handle bundling the storage backend and the
// conversation repository built on it.
type Database struct {
	backend  *badger.Backend
	convRepo storage.ConversationRepository
	logger   *slog.Logger
}

func NewDatabase(filePath string) (*Database, error) {
	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	return &Database{
		backend:  backend,
		convRepo: badger.NewConversationRepository(backend),
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) Conversations() storage.ConversationRepository {
	return db.convRepo
}

// NewIngestionPipeline wires the default adapter registry and a fresh
// language-aware normalizer to this database's conversation store.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	detector := lang.NewDetector()
	normalizer, err := normalize.New(detector)
	if err != nil {
		return nil, err
	}
	return ingestion.NewPipeline(db.convRepo, adapter.Default(), normalizer, opts...)
}
