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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a CanonicalRecord failed validation.
	ErrInvalidRecord = errors.New("invalid canonical record")

	// ErrNoMessages indicates the Messages sequence is empty.
	ErrNoMessages = errors.New("record has no messages")

	// ErrEmptyConversationID indicates the ConversationID field is empty.
	ErrEmptyConversationID = errors.New("conversation id cannot be empty")

	// ErrEmptyMessageText indicates a message Text field is empty.
	ErrEmptyMessageText = errors.New("message text cannot be empty")

	// ErrInvalidRole indicates an invalid Role value.
	ErrInvalidRole = errors.New("invalid message role")

	// ErrEmptyDataset indicates the Source.Dataset field is empty.
	ErrEmptyDataset = errors.New("source dataset cannot be empty")
)
