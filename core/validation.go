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

import "fmt"

// ValidateCanonicalRecord validates a CanonicalRecord according to domain
// rules.
//
// Validation rules:
//   - ConversationID must not be empty
//   - Source.Dataset must not be empty
//   - Messages must contain at least one message
//   - every message must have a valid role and non-empty text
//
// NOT validated (heuristic, best-effort by design):
//   - message language tags
//   - label values
func ValidateCanonicalRecord(record *CanonicalRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.ConversationID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyConversationID)
	}

	if record.Source.Dataset == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyDataset)
	}

	if len(record.Messages) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrNoMessages)
	}

	for i, msg := range record.Messages {
		if err := ValidateRole(msg.Role); err != nil {
			return fmt.Errorf("%w: message %d: %w", ErrInvalidRecord, i, err)
		}
		if msg.Text == "" {
			return fmt.Errorf("%w: message %d: %w", ErrInvalidRecord, i, ErrEmptyMessageText)
		}
	}

	return nil
}

// ValidateRole validates that a Role has a valid value.
func ValidateRole(role Role) error {
	if role != RoleUser && role != RoleAgent {
		return fmt.Errorf("%w: value %d", ErrInvalidRole, int(role))
	}
	return nil
}
