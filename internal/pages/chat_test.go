package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/lifeos/internal/collab"
	"github.com/starford/lifeos/internal/models"
)

func TestChatSeedsGreeting(t *testing.T) {
	h := newHarness(t)
	var msgs []models.Message
	h.do(func() { msgs = NewChat(h.env).Messages() })

	require.Len(t, msgs, 1)
	assert.Equal(t, models.SenderAssistant, msgs[0].Sender)
	assert.Equal(t, "Hello! I'm your AI assistant. How can I help you today?", msgs[0].Content)
}

func TestSendMessageAppendsUserThenReply(t *testing.T) {
	h := newHarness(t)
	var c *Chat
	var afterSend []models.Message
	var input string
	h.do(func() {
		c = NewChat(h.env)
		c.SetInput("draft")
		require.True(t, c.SendMessage("plan my week"))
		afterSend = c.Messages()
		input = c.Input()
	})
	assert.Empty(t, input, "input cleared on send")
	require.Len(t, afterSend, 2)
	assert.Equal(t, models.SenderUser, afterSend[1].Sender)
	assert.Equal(t, "plan my week", afterSend[1].Content)

	h.waitEvent(EventChatReply)

	var final []models.Message
	h.do(func() { final = c.Messages() })
	require.Len(t, final, 3)
	assert.Equal(t, models.SenderAssistant, final[2].Sender)
	assert.Equal(t, `I understand you said: "plan my week". How can I assist you further?`, final[2].Content)
	assert.Less(t, final[1].ID, final[2].ID)

	h.noEvent(EventChatReply, 40*time.Millisecond)
}

func TestSendMessageIgnoresBlank(t *testing.T) {
	h := newHarness(t)
	for _, text := range []string{"", "   ", "\t\n"} {
		var c *Chat
		var sent bool
		h.do(func() {
			c = NewChat(h.env)
			sent = c.SendMessage(text)
		})
		assert.False(t, sent, "text %q", text)
		h.do(func() { assert.Len(t, c.Messages(), 1) })
	}
	h.noEvent(EventChatReply, 30*time.Millisecond)
}

func TestRapidSendsKeepOrderAndUniqueIDs(t *testing.T) {
	h := newHarness(t)
	var c *Chat
	h.do(func() {
		c = NewChat(h.env)
		c.SendMessage("one")
		c.SendMessage("two")
	})
	h.waitEvent(EventChatReply)
	h.waitEvent(EventChatReply)

	var msgs []models.Message
	h.do(func() { msgs = c.Messages() })
	require.Len(t, msgs, 5)
	seen := map[int]bool{}
	for _, m := range msgs {
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
	}
	assert.Equal(t, "one", msgs[1].Content)
	assert.Equal(t, "two", msgs[2].Content)
}

func TestUnmountDropsPendingReply(t *testing.T) {
	h := newHarness(t)
	h.env.Delays.Reply = 30 * time.Millisecond
	var c *Chat
	h.do(func() {
		c = NewChat(h.env)
		c.SendMessage("hello")
	})
	h.unmount()

	h.noEvent(EventChatReply, 80*time.Millisecond)
	h.do(func() { assert.Len(t, c.Messages(), 2) })
}

type failingChat struct{}

func (failingChat) Send(context.Context, string) (string, error) {
	return "", errors.New("transport down")
}

func TestReplyErrorLeavesConversation(t *testing.T) {
	h := newHarness(t)
	h.env.Collab.Chat = failingChat{}
	var c *Chat
	h.do(func() {
		c = NewChat(h.env)
		c.SendMessage("hello")
	})
	h.noEvent(EventChatReply, 50*time.Millisecond)
	h.do(func() { assert.Len(t, c.Messages(), 2) })
}

func TestToggleListeningWritesTranscript(t *testing.T) {
	h := newHarness(t)
	var c *Chat
	h.do(func() {
		c = NewChat(h.env)
		assert.True(t, c.ToggleListening())
		assert.True(t, c.Listening())
	})

	ev := h.waitEvent(EventChatTranscribed)
	assert.Equal(t, map[string]string{"input": collab.ChatTranscript}, ev.data)
	h.do(func() {
		assert.False(t, c.Listening())
		assert.Equal(t, "Voice message transcribed", c.Input())
	})
}

func TestToggleListeningOffCancelsTranscript(t *testing.T) {
	h := newHarness(t)
	h.env.Delays.Listen = 30 * time.Millisecond
	var c *Chat
	h.do(func() {
		c = NewChat(h.env)
		c.SetInput("typed")
		c.ToggleListening()
		assert.False(t, c.ToggleListening())
	})
	h.noEvent(EventChatTranscribed, 80*time.Millisecond)
	h.do(func() { assert.Equal(t, "typed", c.Input()) })
}

func TestSelectLanguage(t *testing.T) {
	h := newHarness(t)
	h.do(func() {
		c := NewChat(h.env)
		assert.True(t, c.SelectLanguage("Japanese"))
		assert.False(t, c.SelectLanguage("Klingon"))
		body := c.Render().Body.(ChatView)
		assert.Equal(t, "Japanese", body.Language)
		assert.Len(t, body.Rooms, 4)
	})
}
