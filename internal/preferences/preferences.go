// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeranaias/docchat/internal/slot"
)

// Allowed enum values.
var (
	OutputFormats   = []string{"text", "table", "list", "json"}
	OutputLanguages = []string{"en", "lt"}
	Providers       = []string{"openai", "claude", "google", "anthropic"}
	Modes           = []string{"simple", "multi-agent"}
)

// ErrInvalid wraps every validation failure returned by Save.
var ErrInvalid = errors.New("invalid preferences")

// ModeMultiAgent enables the agent pipeline.
const ModeMultiAgent = "multi-agent"

// Agent is one stage of the multi-agent pipeline.
type Agent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Enabled bool   `json:"enabled"`
}

// AIPreferences are the user's reply-shaping settings. Empty fields are unset.
type AIPreferences struct {
	OutputFormat       string  `json:"outputFormat,omitempty"`
	OutputLanguage     string  `json:"outputLanguage,omitempty"`
	CustomInstructions string  `json:"customInstructions,omitempty"`
	Provider           string  `json:"provider,omitempty"`
	Model              string  `json:"model,omitempty"`
	Mode               string  `json:"mode,omitempty"`
	Agents             []Agent `json:"agents,omitempty"`
}

// DefaultAgents returns the pipeline used when multi-agent mode is set
// without an explicit agent list.
func DefaultAgents() []Agent {
	return []Agent{
		{ID: "filter", Name: "Filter Agent", Role: "Filters and preprocesses user queries", Enabled: true},
		{ID: "search", Name: "Search Agent", Role: "Searches and retrieves relevant documents", Enabled: true},
		{ID: "critic", Name: "Critic Agent", Role: "Validates and verifies response accuracy", Enabled: true},
	}
}

// IsMultiAgent reports whether the agent pipeline is selected.
func (p *AIPreferences) IsMultiAgent() bool {
	return p != nil && p.Mode == ModeMultiAgent
}

// EnabledAgents returns the enabled agents in pipeline order.
func (p *AIPreferences) EnabledAgents() []Agent {
	if p == nil {
		return nil
	}
	var out []Agent
	for _, a := range p.Agents {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a deep copy. Clone of nil is nil.
func (p *AIPreferences) Clone() *AIPreferences {
	if p == nil {
		return nil
	}
	c := *p
	if p.Agents != nil {
		c.Agents = append([]Agent(nil), p.Agents...)
	}
	return &c
}

// fillDefaults adds the default agents to a multi-agent profile with none.
func (p *AIPreferences) fillDefaults() {
	if p.Mode == ModeMultiAgent && p.Agents == nil {
		p.Agents = DefaultAgents()
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks every enum field that is set.
func (p *AIPreferences) Validate() error {
	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"outputFormat", p.OutputFormat, OutputFormats},
		{"outputLanguage", p.OutputLanguage, OutputLanguages},
		{"provider", p.Provider, Providers},
		{"mode", p.Mode, Modes},
	}
	for _, c := range checks {
		if c.value != "" && !contains(c.allowed, c.value) {
			return fmt.Errorf("%s must be one of %s, got %q",
				c.field, strings.Join(c.allowed, ", "), c.value)
		}
	}

	seen := make(map[string]bool, len(p.Agents))
	for _, a := range p.Agents {
		if a.ID == "" {
			return fmt.Errorf("agent id is required")
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate agent id %q", a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// Load reads the preferences from s. It returns nil when nothing is saved or
// the saved value cannot be decoded.
func Load(s slot.Slot, logger zerolog.Logger) *AIPreferences {
	raw, ok, err := s.Read(slot.KeyPreferences)
	if err != nil {
		logger.Warn().Err(err).Msg("read preferences")
		return nil
	}
	if !ok {
		return nil
	}

	var p AIPreferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		logger.Warn().Err(err).Msg("discarding malformed preferences")
		return nil
	}
	p.fillDefaults()
	return &p
}

// Save validates p and writes it to s.
func Save(s slot.Slot, p *AIPreferences) error {
	if p == nil {
		return fmt.Errorf("%w: nil", ErrInvalid)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.Write(slot.KeyPreferences, string(data)); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// =============================================================================
// KEY ACCESS
// =============================================================================

// Keys lists the names accepted by Set, sorted.
func Keys() []string {
	keys := []string{
		"outputFormat", "outputLanguage", "customInstructions",
		"provider", "model", "mode", "agent.<id>",
	}
	sort.Strings(keys)
	return keys
}

// Set changes one field by name. "agent.<id>" toggles an agent with a
// boolean value. The result is not validated; call Validate or Save.
func Set(p *AIPreferences, key, value string) error {
	switch key {
	case "outputFormat":
		p.OutputFormat = value
	case "outputLanguage":
		p.OutputLanguage = value
	case "customInstructions":
		p.CustomInstructions = value
	case "provider":
		p.Provider = value
	case "model":
		p.Model = value
	case "mode":
		p.Mode = value
		p.fillDefaults()
	default:
		id, ok := strings.CutPrefix(key, "agent.")
		if !ok || id == "" {
			return fmt.Errorf("unknown preference %q (valid: %s)", key, strings.Join(Keys(), ", "))
		}
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("agent.%s: expected true or false, got %q", id, value)
		}
		if p.Agents == nil {
			p.Agents = DefaultAgents()
		}
		for i := range p.Agents {
			if p.Agents[i].ID == id {
				p.Agents[i].Enabled = enabled
				return nil
			}
		}
		return fmt.Errorf("unknown agent %q", id)
	}
	return nil
}
