// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/preferences"
	"github.com/jeranaias/docchat/internal/responder"
	"github.com/jeranaias/docchat/internal/slot"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// countingSlot counts writes to the conversations key.
type countingSlot struct {
	*slot.Memory
	writes atomic.Int32
}

func (c *countingSlot) Write(key, value string) error {
	if key == slot.KeyConversations {
		c.writes.Add(1)
	}
	return c.Memory.Write(key, value)
}

// failingSlot rejects every write.
type failingSlot struct{ *slot.Memory }

func (failingSlot) Write(string, string) error { return errors.New("disk full") }

var echo = responder.Func(func(ctx context.Context, req responder.Request) (model.Message, error) {
	return model.Message{Role: model.RoleAssistant, Content: "re: " + req.Content}, nil
})

// gated blocks each reply until release is called.
type gated struct {
	release chan struct{}
}

func newGated() *gated { return &gated{release: make(chan struct{})} }

func (g *gated) Respond(ctx context.Context, req responder.Request) (model.Message, error) {
	select {
	case <-g.release:
		return model.Message{Content: "late: " + req.Content}, nil
	case <-ctx.Done():
		return model.Message{}, ctx.Err()
	}
}

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("conv-test-%d", n)
	}
}

func newTestStore(t *testing.T, s slot.Slot, r responder.Responder, opts ...Option) (*ConversationStore, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	base := []Option{
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs()),
		WithHistoryHint(0),
	}
	store := NewConversationStore(s, r, append(base, opts...)...)
	store.Load()
	t.Cleanup(store.Close)
	return store, clock
}

func waitReply(t *testing.T, ch <-chan Reply) Reply {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "reply channel closed without a reply")
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reply")
		return Reply{}
	}
}

func conv(id string, ts time.Time, texts ...string) model.Conversation {
	msgs := make([]model.Message, len(texts))
	for i, text := range texts {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		msgs[i] = model.Message{Role: role, Content: text, Timestamp: ts.Add(time.Duration(i) * time.Second)}
	}
	return model.Snapshot(id, msgs, ts)
}

func ids(convs []model.Conversation) []string {
	out := make([]string, len(convs))
	for i, c := range convs {
		out[i] = c.ID
	}
	return out
}

func saved(t *testing.T, s slot.Slot) []model.Conversation {
	t.Helper()
	convs, ok, err := ReadCollection(s)
	require.NoError(t, err)
	require.True(t, ok, "nothing saved")
	return convs
}

// =============================================================================
// LOAD
// =============================================================================

func TestLoad_EmptySlotUsesSeed(t *testing.T) {
	mem := &countingSlot{Memory: slot.NewMemory()}
	store, clock := newTestStore(t, mem, echo)

	convs := store.Conversations()
	require.Len(t, convs, 11)
	assert.Equal(t, "conv-1", convs[0].ID)
	assert.Equal(t, "conv-11", convs[10].ID)
	for _, c := range convs {
		assert.Equal(t, len(c.Messages), c.MessageCount, c.ID)
		assert.NotEmpty(t, c.Messages, c.ID)
	}
	assert.Equal(t, clock.Now().Add(-30*time.Minute), convs[0].Timestamp)
	assert.Len(t, convs[0].Messages, 8)
	assert.Zero(t, mem.writes.Load(), "seed data is not written until something changes")
}

func TestLoad_MalformedFallsBackToSeed(t *testing.T) {
	cases := map[string]string{
		"syntax":     `[{"id":`,
		"not array":  `{"id":"conv-1"}`,
		"bad role":   `[{"id":"a","messages":[{"role":"system","content":"x","timestamp":"2025-01-01T00:00:00Z"}]}]`,
		"missing id": `[{"title":"x","messages":[{"role":"user","content":"x","timestamp":"2025-01-01T00:00:00Z"}]}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			mem := slot.NewMemory()
			require.NoError(t, mem.Write(slot.KeyConversations, raw))

			store, _ := newTestStore(t, mem, echo)
			assert.Len(t, store.Conversations(), 11)

			got, _, err := mem.Read(slot.KeyConversations)
			require.NoError(t, err)
			assert.Equal(t, raw, got, "corrupt data is left for inspection")
		})
	}
}

func TestLoad_PrunesEmptyAndRestoresSeedMessages(t *testing.T) {
	clock := newFakeClock()
	mem := slot.NewMemory()
	stored := []model.Conversation{
		conv("conv-x", clock.Now(), "kept question", "kept answer"),
		{ID: "conv-empty", Title: "empty", Timestamp: clock.Now()},
		{ID: "conv-2", Title: "Best practices for RAG implementation", MessageCount: 12, Timestamp: clock.Now()},
	}
	require.NoError(t, WriteCollection(mem, stored))

	store, _ := newTestStore(t, mem, echo)

	convs := store.Conversations()
	assert.Equal(t, []string{"conv-x", "conv-2"}, ids(convs))
	assert.Len(t, convs[1].Messages, 6)
	assert.Equal(t, 6, convs[1].MessageCount)

	assert.Equal(t, []string{"conv-x", "conv-2"}, ids(saved(t, mem)),
		"pruned collection is written back")
}

func TestLoad_DeletedSeedStaysDeleted(t *testing.T) {
	mem := slot.NewMemory()
	store, _ := newTestStore(t, mem, echo)
	store.DeleteConversation("conv-4")

	reloaded, _ := newTestStore(t, mem, echo)
	_, ok := reloaded.Conversation("conv-4")
	assert.False(t, ok)
	assert.Len(t, reloaded.Conversations(), 10)
}

func TestReload_KeepsActiveList(t *testing.T) {
	mem := slot.NewMemory()
	store, _ := newTestStore(t, mem, echo)
	waitReply(t, store.SendMessage(context.Background(), "hello"))

	other, _ := newTestStore(t, mem, echo)
	other.DeleteConversation("conv-1")

	store.Reload()
	_, ok := store.Conversation("conv-1")
	assert.False(t, ok)
	assert.Len(t, store.Messages(), 2)
}

// =============================================================================
// SEND
// =============================================================================

func TestSendMessage_BlankIsNoop(t *testing.T) {
	mem := &countingSlot{Memory: slot.NewMemory()}
	store, _ := newTestStore(t, mem, echo)

	for _, content := range []string{"", "   ", "\n\t "} {
		ch := store.SendMessage(context.Background(), content)
		_, open := <-ch
		assert.False(t, open, "channel for %q must be closed", content)
	}
	assert.Empty(t, store.Messages())
	assert.Empty(t, store.ActiveID())
	assert.False(t, store.Loading())
	assert.Zero(t, mem.writes.Load())
}

func TestSendMessage_AppendsUserAndReply(t *testing.T) {
	mem := slot.NewMemory()
	store, _ := newTestStore(t, mem, echo)

	reply := waitReply(t, store.SendMessage(context.Background(), "  What is RAG?  "))
	require.NoError(t, reply.Err)
	assert.Equal(t, "re: What is RAG?", reply.Message.Content)
	assert.Equal(t, model.RoleAssistant, reply.Message.Role)
	assert.Equal(t, "conv-test-1", reply.ConversationID)

	msgs := store.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.NewUserMessage("What is RAG?", msgs[0].Timestamp), msgs[0])
	assert.Equal(t, "re: What is RAG?", msgs[1].Content)
	assert.False(t, store.Loading())

	convs := saved(t, mem)
	require.Len(t, convs, 12)
	assert.Equal(t, "conv-test-1", convs[0].ID)
	assert.Equal(t, "What is RAG?", convs[0].Title)
	assert.Equal(t, "re: What is RAG?", convs[0].LastMessage)
	assert.Equal(t, 2, convs[0].MessageCount)
}

func TestSendMessage_GrowsByTwoPerCall(t *testing.T) {
	store, clock := newTestStore(t, slot.NewMemory(), echo)

	questions := []string{"one", "two", "three", "four"}
	for i, q := range questions {
		clock.Advance(time.Second)
		waitReply(t, store.SendMessage(context.Background(), q))
		assert.Len(t, store.Messages(), 2*(i+1))
	}

	msgs := store.Messages()
	for i, q := range questions {
		assert.Equal(t, q, msgs[2*i].Content)
		assert.Equal(t, "re: "+q, msgs[2*i+1].Content)
	}
	assert.Equal(t, "conv-test-1", store.ActiveID(), "one session keeps one id")
}

func TestSendMessage_LoadingWhilePending(t *testing.T) {
	g := newGated()
	store, _ := newTestStore(t, slot.NewMemory(), g)

	ch := store.SendMessage(context.Background(), "slow")
	assert.True(t, store.Loading())
	assert.Len(t, store.Messages(), 1)

	close(g.release)
	waitReply(t, ch)
	assert.False(t, store.Loading())
	assert.Len(t, store.Messages(), 2)
}

func TestSendMessage_FailureKeepsUserMessage(t *testing.T) {
	boom := errors.New("backend down")
	fail := responder.Func(func(context.Context, responder.Request) (model.Message, error) {
		return model.Message{}, boom
	})
	mem := slot.NewMemory()
	store, _ := newTestStore(t, mem, fail)

	reply := waitReply(t, store.SendMessage(context.Background(), "hello"))
	assert.ErrorIs(t, reply.Err, boom)
	assert.False(t, store.Loading())

	msgs := store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, 1, saved(t, mem)[0].MessageCount)
}

func TestSendMessage_ChannelClosesAfterReply(t *testing.T) {
	store, _ := newTestStore(t, slot.NewMemory(), echo)
	ch := store.SendMessage(context.Background(), "hi")
	waitReply(t, ch)
	_, open := <-ch
	assert.False(t, open)
}

func TestSendMessage_PassesSessionSettings(t *testing.T) {
	var got responder.Request
	capture := responder.Func(func(_ context.Context, req responder.Request) (model.Message, error) {
		got = req
		return model.Message{Content: "ok"}, nil
	})
	prefs := &preferences.AIPreferences{OutputLanguage: "lt"}
	store, _ := newTestStore(t, slot.NewMemory(), capture,
		WithPreferences(func() *preferences.AIPreferences { return prefs }))

	store.SetChatMode(model.ModeAgent)
	store.SetSelectedDataSource("Accounting Documents")
	waitReply(t, store.SendMessage(context.Background(), "invoices"))

	assert.Equal(t, model.ModeAgent, got.Mode)
	assert.Equal(t, "Accounting Documents", got.DataSource)
	require.NotNil(t, got.Preferences)
	assert.Equal(t, "lt", got.Preferences.OutputLanguage)
	assert.Equal(t, model.ModeAgent, store.ChatMode())
	assert.Equal(t, "Accounting Documents", store.SelectedDataSource())
}

func TestSendMessage_KeepsReplyMetadata(t *testing.T) {
	withMeta := responder.Func(func(context.Context, responder.Request) (model.Message, error) {
		return model.Message{Content: "ok", Metadata: &model.Metadata{Sources: []string{"a.pdf"}}}, nil
	})
	store, _ := newTestStore(t, slot.NewMemory(), withMeta)

	waitReply(t, store.SendMessage(context.Background(), "q"))
	msgs := store.Messages()
	require.True(t, msgs[1].HasSources())
	assert.Equal(t, []string{"a.pdf"}, msgs[1].Metadata.Sources)
}

func TestSendMessage_TimestampsNeverDecrease(t *testing.T) {
	clock := newFakeClock()
	backwards := responder.Func(func(context.Context, responder.Request) (model.Message, error) {
		clock.Advance(-time.Hour)
		return model.Message{Content: "ok"}, nil
	})
	store := NewConversationStore(slot.NewMemory(), backwards, WithClock(clock.Now))
	store.Load()
	defer store.Close()

	waitReply(t, store.SendMessage(context.Background(), "q"))
	msgs := store.Messages()
	require.Len(t, msgs, 2)
	assert.False(t, msgs[1].Timestamp.Before(msgs[0].Timestamp))
}

func TestSendMessage_LateReplyGoesToItsConversation(t *testing.T) {
	g := newGated()
	mem := slot.NewMemory()
	store, _ := newTestStore(t, mem, g)

	ch := store.SendMessage(context.Background(), "slow question")
	origin := store.ActiveID()
	store.ClearMessages()

	close(g.release)
	reply := waitReply(t, ch)
	require.NoError(t, reply.Err)
	assert.Equal(t, origin, reply.ConversationID)

	assert.Empty(t, store.Messages(), "reply must not leak into the new session")
	c, ok := store.Conversation(origin)
	require.True(t, ok)
	require.Len(t, c.Messages, 2)
	assert.Equal(t, "late: slow question", c.Messages[1].Content)
	assert.Equal(t, 2, c.MessageCount)
	assert.Equal(t, "late: slow question", saved(t, mem)[0].LastMessage)
}

func TestSendMessage_AfterClose(t *testing.T) {
	store := NewConversationStore(slot.NewMemory(), echo)
	store.Load()
	store.Close()

	reply := waitReply(t, store.SendMessage(context.Background(), "hi"))
	assert.ErrorIs(t, reply.Err, ErrStoreClosed)
	assert.Empty(t, store.Messages())
}

func TestClose_CancelsPendingReply(t *testing.T) {
	g := newGated()
	store := NewConversationStore(slot.NewMemory(), g)
	store.Load()

	ch := store.SendMessage(context.Background(), "pending")
	store.Close()

	reply := waitReply(t, ch)
	assert.ErrorIs(t, reply.Err, context.Canceled)
	assert.Len(t, store.Messages(), 1)
}

// =============================================================================
// COLLECTION INVARIANTS
// =============================================================================

func TestUpsert_CapsCollection(t *testing.T) {
	mem := slot.NewMemory()
	store, clock := newTestStore(t, mem, echo)

	for i := 0; i < 25; i++ {
		store.ClearMessages()
		clock.Advance(time.Minute)
		waitReply(t, store.SendMessage(context.Background(), fmt.Sprintf("question %d", i)))
		assert.LessOrEqual(t, len(store.Conversations()), DefaultMaxConversations)
		assert.LessOrEqual(t, len(saved(t, mem)), DefaultMaxConversations)
	}

	convs := store.Conversations()
	require.Len(t, convs, DefaultMaxConversations)
	assert.Equal(t, "conv-test-25", convs[0].ID)
	assert.Equal(t, "conv-test-6", convs[19].ID)
}

func TestUpsert_CustomCap(t *testing.T) {
	store, _ := newTestStore(t, slot.NewMemory(), echo, WithMaxConversations(3))
	waitReply(t, store.SendMessage(context.Background(), "q"))
	assert.Equal(t, []string{"conv-test-1", "conv-1", "conv-2"}, ids(store.Conversations()))
}

func TestUpsert_ReplacesSameIDAndMovesToFront(t *testing.T) {
	store, _ := newTestStore(t, slot.NewMemory(), echo)

	require.NoError(t, store.SelectConversation("conv-3"))
	convs := store.Conversations()
	assert.Equal(t, "conv-3", convs[0].ID)
	assert.Len(t, convs, 11)

	waitReply(t, store.SendMessage(context.Background(), "follow-up"))
	convs = store.Conversations()
	assert.Len(t, convs, 11, "same id is replaced, not duplicated")
	assert.Equal(t, "conv-3", convs[0].ID)
	assert.Equal(t, 6, convs[0].MessageCount)
	assert.Equal(t, "Setting up data sources for document processing", convs[0].Title)
}

func TestOnActiveListChanged_EmptyListIsNoop(t *testing.T) {
	mem := &countingSlot{Memory: slot.NewMemory()}
	store, _ := newTestStore(t, mem, echo)
	store.OnActiveListChanged()
	store.LoadConversation(nil)
	assert.Zero(t, mem.writes.Load())
	assert.Len(t, store.Conversations(), 11)
}

func TestWriteFailureIsNotFatal(t *testing.T) {
	store, _ := newTestStore(t, failingSlot{slot.NewMemory()}, echo)
	reply := waitReply(t, store.SendMessage(context.Background(), "hi"))
	require.NoError(t, reply.Err)
	assert.Len(t, store.Messages(), 2)
	assert.Len(t, store.Conversations(), 12)
}

// =============================================================================
// SELECT / LOAD / CLEAR
// =============================================================================

func TestSelectConversation(t *testing.T) {
	store, _ := newTestStore(t, slot.NewMemory(), echo, WithHistoryHint(10*time.Millisecond))

	require.NoError(t, store.SelectConversation("conv-2"))
	assert.Equal(t, "conv-2", store.ActiveID())
	assert.Len(t, store.Messages(), 6)
	assert.True(t, store.IsLoadingFromHistory())
	assert.Eventually(t, func() bool { return !store.IsLoadingFromHistory() },
		time.Second, 5*time.Millisecond)

	err := store.SelectConversation("conv-missing")
	assert.ErrorIs(t, err, ErrConversationNotFound)
	assert.Contains(t, err.Error(), "conv-missing")
	assert.Equal(t, "conv-2", store.ActiveID())
}

func TestLoadConversation_ReplacesActiveList(t *testing.T) {
	store, clock := newTestStore(t, slot.NewMemory(), echo)
	msgs := []model.Message{
		model.NewUserMessage("imported", clock.Now()),
		model.NewAssistantMessage("answer", clock.Now(), nil),
	}
	store.LoadConversation(msgs)

	msgs[0].Content = "mutated by caller"
	got := store.Messages()
	require.Len(t, got, 2)
	assert.Equal(t, "imported", got[0].Content)
	assert.Equal(t, "conv-test-1", store.ActiveID())
	assert.Equal(t, "imported", store.Conversations()[0].Title)
}

func TestClearMessages(t *testing.T) {
	mem := slot.NewMemory()
	store, _ := newTestStore(t, mem, echo)
	waitReply(t, store.SendMessage(context.Background(), "hi"))
	before := store.Conversations()

	store.ClearMessages()
	assert.Empty(t, store.Messages())
	assert.Empty(t, store.ActiveID())
	assert.Equal(t, before, store.Conversations())

	waitReply(t, store.SendMessage(context.Background(), "new session"))
	assert.Equal(t, "conv-test-2", store.ActiveID())
}

// =============================================================================
// DELETE / REORDER / SEARCH
// =============================================================================

func TestDeleteConversation(t *testing.T) {
	mem := &countingSlot{Memory: slot.NewMemory()}
	store, _ := newTestStore(t, mem, echo)

	store.DeleteConversation("conv-nope")
	assert.Zero(t, mem.writes.Load())
	assert.Len(t, store.Conversations(), 11)

	store.DeleteConversation("conv-5")
	assert.Len(t, store.Conversations(), 10)
	assert.NotContains(t, ids(saved(t, mem)), "conv-5")
}

func TestDeleteConversation_ActiveClearsSession(t *testing.T) {
	store, _ := newTestStore(t, slot.NewMemory(), echo)
	require.NoError(t, store.SelectConversation("conv-1"))

	store.DeleteConversation("conv-1")
	assert.Empty(t, store.Messages())
	assert.Empty(t, store.ActiveID())
}

func TestReorder_FilteredSubset(t *testing.T) {
	clock := newFakeClock()
	mem := slot.NewMemory()
	require.NoError(t, WriteCollection(mem, []model.Conversation{
		conv("A", clock.Now(), "alpha"),
		conv("B", clock.Now(), "beta"),
		conv("C", clock.Now(), "gamma"),
	}))
	store, _ := newTestStore(t, mem, echo)

	store.Reorder([]string{"C", "A"})
	assert.Equal(t, []string{"C", "A", "B"}, ids(store.Conversations()))
	assert.Equal(t, []string{"C", "A", "B"}, ids(saved(t, mem)))
}

func TestReorder_IgnoresUnknownAndDuplicates(t *testing.T) {
	clock := newFakeClock()
	mem := slot.NewMemory()
	require.NoError(t, WriteCollection(mem, []model.Conversation{
		conv("A", clock.Now(), "a"),
		conv("B", clock.Now(), "b"),
		conv("C", clock.Now(), "c"),
		conv("D", clock.Now(), "d"),
	}))
	store, _ := newTestStore(t, mem, echo)

	store.Reorder([]string{"D", "zzz", "B", "D"})
	assert.Equal(t, []string{"D", "B", "A", "C"}, ids(store.Conversations()))

	store.Reorder([]string{"nope"})
	assert.Equal(t, []string{"D", "B", "A", "C"}, ids(store.Conversations()))

	store.Reorder(nil)
	assert.Equal(t, []string{"D", "B", "A", "C"}, ids(store.Conversations()))
}

func TestSearch(t *testing.T) {
	store, _ := newTestStore(t, slot.NewMemory(), echo)

	assert.Equal(t, ids(store.Conversations()), ids(store.Search("")))
	assert.Len(t, store.Search("   "), 11)

	assert.Equal(t, []string{"conv-1"}, ids(store.Search("FIREBASE")))
	assert.Equal(t, []string{"conv-1", "conv-6", "conv-9"}, ids(store.Search("authentication")))
	assert.Equal(t, []string{"conv-2", "conv-5"}, ids(store.Search("chunking")))
	assert.Empty(t, store.Search("kubernetes"))
}

func TestSearch_UnicodeCaseFolding(t *testing.T) {
	clock := newFakeClock()
	mem := slot.NewMemory()
	require.NoError(t, WriteCollection(mem, []model.Conversation{
		conv("lt", clock.Now(), "Ąžuolynas ir ŠALTINIAI", "atsakymas"),
		conv("en", clock.Now(), "Sources", "answer"),
	}))
	store, _ := newTestStore(t, mem, echo)

	assert.Equal(t, []string{"lt"}, ids(store.Search("šaltiniai")))
	assert.Equal(t, []string{"lt"}, ids(store.Search("ĄŽUOL")))
	assert.Equal(t, []string{"en"}, ids(store.Search("SOURCES")))
}

func TestAccessorsReturnCopies(t *testing.T) {
	store, _ := newTestStore(t, slot.NewMemory(), echo)

	convs := store.Conversations()
	convs[0].Title = "changed"
	convs[0].Messages[0].Content = "changed"
	c, _ := store.Conversation("conv-1")
	assert.Equal(t, "How to implement authentication in React?", c.Title)
	assert.Equal(t, "How to implement authentication in React?", c.Messages[0].Content)

	found := store.Search("React 18")
	require.Len(t, found, 1)
	found[0].Messages[1].Metadata.Sources[0] = "changed"
	c, _ = store.Conversation("conv-8")
	assert.Equal(t, "react-18-release-notes.pdf", c.Messages[1].Metadata.Sources[0])
}

// =============================================================================
// CODEC
// =============================================================================

func TestCollectionRoundTrip(t *testing.T) {
	mem := slot.NewMemory()
	in := SeedConversations(time.Date(2025, 1, 2, 3, 4, 5, 600, time.UTC))
	require.NoError(t, WriteCollection(mem, in))

	out, ok, err := ReadCollection(mem)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	raw, _, _ := mem.Read(slot.KeyConversations)
	assert.Contains(t, raw, `"lastMessage":`)
	assert.Contains(t, raw, `"messageCount":8`)
	assert.Contains(t, raw, `"timestamp":"2025-01-02T02:34:05.0000006Z"`)
}

func TestEncodeCollection_NilIsEmptyArray(t *testing.T) {
	raw, err := EncodeCollection(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestSeedConversations_Content(t *testing.T) {
	seeds := seedByID(time.Now())
	require.Len(t, seeds, 11)

	assert.Len(t, seeds["conv-2"].Messages, 6)
	assert.Len(t, seeds["conv-3"].Messages, 4)
	assert.Contains(t, seeds["conv-3"].Messages[3].Content, "For Google Drive: 1) Enable")

	thoughts := seeds["conv-10"].Messages[1].Metadata.AgentThoughts
	require.Len(t, thoughts, 3)
	assert.Equal(t, "Search Agent", thoughts[0].PassedTo)
	assert.Empty(t, thoughts[2].PassedTo)

	for _, c := range seeds {
		for i := 1; i < len(c.Messages); i++ {
			assert.False(t, c.Messages[i].Timestamp.Before(c.Messages[i-1].Timestamp), c.ID)
		}
	}
}
