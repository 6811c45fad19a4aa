// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/docchat/internal/model"
)

// DefaultMockLatency is the delay before the mock reply arrives.
const DefaultMockLatency = time.Second

// Mock answers every message with a canned text after a fixed delay. It is
// the default responder so the UI can be exercised without a backend.
type Mock struct {
	latency time.Duration
}

// NewMock creates a mock responder. A negative latency is treated as zero.
func NewMock(latency time.Duration) *Mock {
	if latency < 0 {
		latency = 0
	}
	return &Mock{latency: latency}
}

// MockReply returns the canned reply text for content.
func MockReply(content string) string {
	return fmt.Sprintf("This is a mock response to: \"%s\". This is UI/UX testing mode - no actual backend connection.", content)
}

// Respond implements Responder.
func (m *Mock) Respond(ctx context.Context, req Request) (model.Message, error) {
	if m.latency > 0 {
		timer := time.NewTimer(m.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return model.Message{}, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return model.Message{}, err
	}
	return model.Message{Role: model.RoleAssistant, Content: MockReply(req.Content)}, nil
}
