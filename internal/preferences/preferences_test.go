// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preferences

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat/internal/slot"
)

func TestLoad_Absent(t *testing.T) {
	assert.Nil(t, Load(slot.NewMemory(), zerolog.Nop()))
}

func TestLoad_Malformed(t *testing.T) {
	s := slot.NewMemory()
	require.NoError(t, s.Write(slot.KeyPreferences, "{not json"))
	assert.Nil(t, Load(s, zerolog.Nop()))
}

func TestLoad_MultiAgentFillsDefaultAgents(t *testing.T) {
	s := slot.NewMemory()
	require.NoError(t, s.Write(slot.KeyPreferences, `{"mode":"multi-agent","provider":"openai"}`))

	p := Load(s, zerolog.Nop())
	require.NotNil(t, p)
	assert.Equal(t, "openai", p.Provider)
	require.Len(t, p.Agents, 3)
	assert.Equal(t, []string{"filter", "search", "critic"},
		[]string{p.Agents[0].ID, p.Agents[1].ID, p.Agents[2].ID})
	assert.Equal(t, "Filters and preprocesses user queries", p.Agents[0].Role)
	assert.Len(t, p.EnabledAgents(), 3)
}

func TestLoad_KeepsExplicitAgents(t *testing.T) {
	s := slot.NewMemory()
	require.NoError(t, s.Write(slot.KeyPreferences,
		`{"mode":"multi-agent","agents":[{"id":"search","name":"Search","role":"r","enabled":false}]}`))

	p := Load(s, zerolog.Nop())
	require.NotNil(t, p)
	require.Len(t, p.Agents, 1)
	assert.Empty(t, p.EnabledAgents())
}

func TestLoad_SimpleModeHasNoAgents(t *testing.T) {
	s := slot.NewMemory()
	require.NoError(t, s.Write(slot.KeyPreferences, `{"mode":"simple","outputLanguage":"lt"}`))

	p := Load(s, zerolog.Nop())
	require.NotNil(t, p)
	assert.Nil(t, p.Agents)
	assert.False(t, p.IsMultiAgent())
}

func TestSave_RoundTrip(t *testing.T) {
	s := slot.NewMemory()
	in := &AIPreferences{
		OutputFormat:       "table",
		OutputLanguage:     "en",
		CustomInstructions: "Be brief.",
		Provider:           "claude",
		Model:              "sonnet",
		Mode:               "multi-agent",
		Agents:             DefaultAgents(),
	}
	require.NoError(t, Save(s, in))

	raw, ok, err := s.Read(slot.KeyPreferences)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"outputFormat":"table"`)
	assert.Contains(t, raw, `"customInstructions":"Be brief."`)

	assert.Equal(t, in, Load(s, zerolog.Nop()))
}

func TestSave_RejectsInvalid(t *testing.T) {
	cases := map[string]*AIPreferences{
		"format":    {OutputFormat: "yaml"},
		"language":  {OutputLanguage: "de"},
		"provider":  {Provider: "acme"},
		"mode":      {Mode: "swarm"},
		"agent id":  {Agents: []Agent{{Name: "x"}}},
		"duplicate": {Agents: []Agent{{ID: "a"}, {ID: "a"}}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			s := slot.NewMemory()
			assert.ErrorIs(t, Save(s, p), ErrInvalid)
			_, ok, _ := s.Read(slot.KeyPreferences)
			assert.False(t, ok, "invalid preferences must not be written")
		})
	}
	assert.Error(t, Save(slot.NewMemory(), nil))
}

func TestSet(t *testing.T) {
	p := &AIPreferences{}
	require.NoError(t, Set(p, "outputFormat", "json"))
	require.NoError(t, Set(p, "model", "gpt-4o"))
	require.NoError(t, Set(p, "mode", "multi-agent"))
	assert.Equal(t, "json", p.OutputFormat)
	assert.Equal(t, "gpt-4o", p.Model)
	assert.Len(t, p.Agents, 3)

	require.NoError(t, Set(p, "agent.critic", "false"))
	assert.Len(t, p.EnabledAgents(), 2)

	assert.Error(t, Set(p, "agent.critic", "maybe"))
	assert.Error(t, Set(p, "agent.planner", "true"))
	assert.Error(t, Set(p, "colour", "blue"))
}

func TestClone_IsDeep(t *testing.T) {
	p := &AIPreferences{Mode: "multi-agent", Agents: DefaultAgents()}
	c := p.Clone()
	c.Agents[0].Enabled = false
	assert.True(t, p.Agents[0].Enabled)

	var nilPrefs *AIPreferences
	assert.Nil(t, nilPrefs.Clone())
}
