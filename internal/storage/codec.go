// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/slot"
)

// EncodeCollection serializes conversations as a JSON array with RFC 3339
// timestamps.
func EncodeCollection(convs []model.Conversation) (string, error) {
	if convs == nil {
		convs = []model.Conversation{}
	}
	data, err := json.Marshal(convs)
	if err != nil {
		return "", fmt.Errorf("encode conversations: %w", err)
	}
	return string(data), nil
}

// DecodeCollection parses a JSON array written by EncodeCollection. Every
// message must carry a valid role and a timestamp.
func DecodeCollection(raw string) ([]model.Conversation, error) {
	var convs []model.Conversation
	if err := json.Unmarshal([]byte(raw), &convs); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}
	for _, c := range convs {
		if c.ID == "" {
			return nil, fmt.Errorf("decode conversations: entry without id")
		}
		for i, m := range c.Messages {
			if err := m.Validate(); err != nil {
				return nil, fmt.Errorf("decode conversations: %s message %d: %w", c.ID, i, err)
			}
		}
	}
	return convs, nil
}

// ReadCollection reads and decodes the saved collection. ok is false when
// nothing has been saved yet.
func ReadCollection(s slot.Slot) (convs []model.Conversation, ok bool, err error) {
	raw, ok, err := s.Read(slot.KeyConversations)
	if err != nil || !ok {
		return nil, ok, err
	}
	convs, err = DecodeCollection(raw)
	return convs, true, err
}

// WriteCollection encodes and writes the collection.
func WriteCollection(s slot.Slot, convs []model.Conversation) error {
	raw, err := EncodeCollection(convs)
	if err != nil {
		return err
	}
	return s.Write(slot.KeyConversations, raw)
}
