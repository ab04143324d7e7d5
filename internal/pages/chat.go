package pages

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/starford/lifeos/internal/loop"
	"github.com/starford/lifeos/internal/models"
)

// Chat is the ChatHub messaging page.
type Chat struct {
	env Env

	messages  []models.Message
	nextID    int
	input     string
	listening bool
	listen    *loop.Timer
	language  string
	languages []string
	rooms     []string
}

// ChatView is the rendered messaging body.
type ChatView struct {
	Messages  []models.Message `json:"messages"`
	Input     string           `json:"input"`
	Listening bool             `json:"listening"`
	Language  string           `json:"language"`
	Languages []string         `json:"languages"`
	Rooms     []string         `json:"rooms"`
}

// NewChat mounts the messaging page with the assistant greeting.
func NewChat(env Env) *Chat {
	c := &Chat{
		env:       env,
		languages: env.Seed.Chat.Languages,
		rooms:     env.Seed.Chat.Rooms,
	}
	if len(c.languages) > 0 {
		c.language = c.languages[0]
	}
	c.append(models.SenderAssistant, env.Seed.Chat.Greeting)
	return c
}

// Route implements Page.
func (c *Chat) Route() string { return PathChat }

func (c *Chat) append(sender models.Sender, content string) models.Message {
	c.nextID++
	m := models.Message{
		ID:        c.nextID,
		Content:   content,
		Sender:    sender,
		Timestamp: c.env.Now(),
	}
	c.messages = append(c.messages, m)
	return m
}

// SetInput stores the draft in the input field.
func (c *Chat) SetInput(text string) { c.input = text }

// Input returns the current draft.
func (c *Chat) Input() string { return c.input }

// Listening reports whether dictation is active.
func (c *Chat) Listening() bool { return c.listening }

// Messages returns a copy of the conversation.
func (c *Chat) Messages() []models.Message { return slices.Clone(c.messages) }

// SendMessage appends the user's text and schedules the assistant reply.
// Blank text is ignored.
func (c *Chat) SendMessage(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	c.append(models.SenderUser, text)
	c.input = ""
	c.env.Scope.After(c.env.Delays.Reply, func() { c.reply(text) })
	return true
}

func (c *Chat) reply(text string) {
	content, err := c.env.Collab.Chat.Send(c.env.Ctx, text)
	if err != nil {
		c.env.Logger.Warn("chat reply failed", slog.String("error", err.Error()))
		return
	}
	m := c.append(models.SenderAssistant, content)
	c.env.emit(EventChatReply, m)
}

// ToggleListening starts or stops dictation. Starting schedules the
// transcript; stopping cancels it.
func (c *Chat) ToggleListening() bool {
	if c.listening {
		c.listening = false
		c.listen.Stop()
		return false
	}
	c.listening = true
	c.listen = c.env.Scope.After(c.env.Delays.Listen, c.transcribed)
	return true
}

func (c *Chat) transcribed() {
	c.listening = false
	text, err := c.env.Collab.Speech.Transcribe(c.env.Ctx)
	if err != nil {
		c.env.Logger.Warn("chat transcription failed", slog.String("error", err.Error()))
		return
	}
	c.input = text
	c.env.emit(EventChatTranscribed, map[string]string{"input": text})
}

// SelectLanguage switches the translation language. Unknown values are ignored.
func (c *Chat) SelectLanguage(lang string) bool {
	if !slices.Contains(c.languages, lang) {
		return false
	}
	c.language = lang
	return true
}

// Render implements Page.
func (c *Chat) Render() View {
	return View{
		Route:    PathChat,
		Title:    "ChatHub",
		Subtitle: "Unified messaging with AI assistant and real-time translation",
		Body: ChatView{
			Messages:  c.Messages(),
			Input:     c.input,
			Listening: c.listening,
			Language:  c.language,
			Languages: c.languages,
			Rooms:     c.rooms,
		},
	}
}
