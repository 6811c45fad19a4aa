// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat message. Timestamp is set at creation and never
// changed afterwards.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// Metadata carries retrieval details attached to assistant replies.
type Metadata struct {
	// Sources lists the documents the reply was grounded on, in rank order.
	Sources []string `json:"sources,omitempty"`

	// DataSource names the corpus the question was routed to.
	DataSource string `json:"dataSource,omitempty"`

	// Agent is the persona that produced the reply.
	Agent string `json:"agent,omitempty"`

	// AgentThoughts is the hand-off trace of a multi-agent pipeline.
	AgentThoughts []AgentThought `json:"agentThoughts,omitempty"`
}

// AgentThought is one step of a multi-agent reply.
type AgentThought struct {
	Agent    string `json:"agent"`
	Thought  string `json:"thought"`
	PassedTo string `json:"passedTo,omitempty"`
}

// NewUserMessage creates a user message stamped with ts.
func NewUserMessage(content string, ts time.Time) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: ts}
}

// NewAssistantMessage creates an assistant message stamped with ts.
func NewAssistantMessage(content string, ts time.Time, meta *Metadata) Message {
	return Message{Role: RoleAssistant, Content: content, Timestamp: ts, Metadata: meta}
}

// IsUser reports whether the message was sent by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// HasSources reports whether the message cites any source documents.
func (m Message) HasSources() bool {
	return m.Metadata != nil && len(m.Metadata.Sources) > 0
}

// HasAgentThoughts reports whether the message carries an agent trace.
func (m Message) HasAgentThoughts() bool {
	return m.Metadata != nil && len(m.Metadata.AgentThoughts) > 0
}

// Validate checks the fields a persisted message must carry.
func (m Message) Validate() error {
	if !m.Role.Valid() {
		return fmt.Errorf("invalid role %q", m.Role)
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("missing timestamp")
	}
	return nil
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	c := m
	if m.Metadata != nil {
		meta := m.Metadata.Clone()
		c.Metadata = &meta
	}
	return c
}

// Clone returns a deep copy of the metadata.
func (md Metadata) Clone() Metadata {
	c := md
	if md.Sources != nil {
		c.Sources = append([]string(nil), md.Sources...)
	}
	if md.AgentThoughts != nil {
		c.AgentThoughts = append([]AgentThought(nil), md.AgentThoughts...)
	}
	return c
}

// CloneMessages deep-copies a message list. A nil list stays nil.
func CloneMessages(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clone()
	}
	return out
}
