package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/lifeos/internal/apperr"
	"github.com/starford/lifeos/internal/pages"
	"github.com/starford/lifeos/internal/session"
	"github.com/starford/lifeos/internal/shell"
	"github.com/starford/lifeos/internal/sse"
)

// Handler holds API route handlers.
type Handler struct {
	sessions *session.Manager
	events   *sse.Broker
}

// NewHandler creates a new Handler. events may be nil, in which case the
// event stream route answers 404.
func NewHandler(sessions *session.Manager, events *sse.Broker) *Handler {
	return &Handler{sessions: sessions, events: events}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return s, true
}

func respond(w http.ResponseWriter, r *http.Request, status int, view session.View, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, view)
}

func intParam(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, apperr.ErrInvalidInput)
	}
	return n, nil
}

// pageAction applies fn to the mounted page when it is a P; otherwise 409.
func pageAction[P pages.Page](h *Handler, w http.ResponseWriter, r *http.Request, fn func(P)) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := session.WithPage(r.Context(), s, fn)
	respond(w, r, http.StatusOK, view, err)
}

func (h *Handler) shellAction(w http.ResponseWriter, r *http.Request, fn func(*shell.Shell)) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := s.Shell(r.Context(), fn)
	respond(w, r, http.StatusOK, view, err)
}

// CreateSession handles POST /api/sessions.
//
//	@Summary		Open a session on a route
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateSessionRequest	false	"Initial route"
//	@Success		201		{object}	SessionView
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s, err := h.sessions.Create(req.Path)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.View(r.Context())
	respond(w, r, http.StatusCreated, view, err)
}

// GetSession handles GET /api/sessions/{id}.
//
//	@Summary		Render a session
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session id"
//	@Success		200	{object}	SessionView
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := s.View(r.Context())
	respond(w, r, http.StatusOK, view, err)
}

// DeleteSession handles DELETE /api/sessions/{id}.
//
//	@Summary		Tear a session down
//	@Tags			sessions
//	@Param			id	path	string	true	"Session id"
//	@Success		204	"Session closed"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.sessions.Delete(id); err != nil {
		writeError(w, r, err)
		return
	}
	if h.events != nil {
		h.events.Drop(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Events handles GET /api/sessions/{id}/events.
//
//	@Summary		Stream session events (SSE)
//	@Tags			sessions
//	@Produce		text/event-stream
//	@Param			id	path	string	true	"Session id"
//	@Success		200
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/events [get]
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if h.events == nil {
		writeJSON(w, http.StatusNotFound, errorBody("event stream disabled"))
		return
	}
	h.events.ServeSession(w, r, s.ID(), s.Touch)
}

// Navigate handles POST /api/sessions/{id}/navigate.
//
//	@Summary		Change route
//	@Tags			shell
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Session id"
//	@Param			body	body		NavigateRequest	true	"Target route"
//	@Success		200		{object}	SessionView
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/navigate [post]
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := s.Navigate(r.Context(), req.Path)
	respond(w, r, http.StatusOK, view, err)
}

// ToggleTheme handles POST /api/sessions/{id}/theme.
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.shellAction(w, r, func(s *shell.Shell) { s.ToggleTheme() })
}

// ToggleMenu handles POST /api/sessions/{id}/menu.
func (h *Handler) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	h.shellAction(w, r, func(s *shell.Shell) { s.ToggleMenu() })
}

// VoiceListen handles POST /api/sessions/{id}/voice/listen.
func (h *Handler) VoiceListen(w http.ResponseWriter, r *http.Request) {
	h.shellAction(w, r, func(s *shell.Shell) { s.Voice().ToggleListening() })
}

// VoiceMute handles POST /api/sessions/{id}/voice/mute.
func (h *Handler) VoiceMute(w http.ResponseWriter, r *http.Request) {
	h.shellAction(w, r, func(s *shell.Shell) { s.Voice().ToggleMute() })
}

// VoiceClose handles POST /api/sessions/{id}/voice/close.
func (h *Handler) VoiceClose(w http.ResponseWriter, r *http.Request) {
	h.shellAction(w, r, func(s *shell.Shell) { s.Voice().Close() })
}

// SendMessage handles POST /api/sessions/{id}/chat/messages.
//
//	@Summary		Send a chat message; the reply arrives as a chat.reply event
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Session id"
//	@Param			body	body		TextRequest	true	"Message"
//	@Success		200		{object}	SessionView
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/chat/messages [post]
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(c *pages.Chat) { c.SendMessage(req.Text) })
}

// SetChatInput handles PUT /api/sessions/{id}/chat/input.
func (h *Handler) SetChatInput(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(c *pages.Chat) { c.SetInput(req.Text) })
}

// ChatListen handles POST /api/sessions/{id}/chat/listen.
func (h *Handler) ChatListen(w http.ResponseWriter, r *http.Request) {
	pageAction(h, w, r, func(c *pages.Chat) { c.ToggleListening() })
}

// SetLanguage handles PUT /api/sessions/{id}/chat/language.
func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req LanguageRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(c *pages.Chat) { c.SelectLanguage(req.Language) })
}

// FilterNotes handles PUT /api/sessions/{id}/brain/filter.
//
//	@Summary		Update the notes category and search query
//	@Tags			brain
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Session id"
//	@Param			body	body		FilterRequest	true	"Filter"
//	@Success		200		{object}	SessionView
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/brain/filter [put]
func (h *Handler) FilterNotes(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(b *pages.Brain) {
		if req.Category != nil {
			b.SelectCategory(*req.Category)
		}
		if req.Query != nil {
			b.SetQuery(*req.Query)
		}
	})
}

// SetNotesView handles PUT /api/sessions/{id}/brain/view.
func (h *Handler) SetNotesView(w http.ResponseWriter, r *http.Request) {
	var req ViewModeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.validate(pages.ViewGrid, pages.ViewList); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(b *pages.Brain) { b.SetViewMode(req.Mode) })
}

// StarNote handles POST /api/sessions/{id}/brain/notes/{noteID}/star.
func (h *Handler) StarNote(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "noteID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(b *pages.Brain) { b.ToggleStar(id) })
}

// DeleteNote handles DELETE /api/sessions/{id}/brain/notes/{noteID}.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "noteID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(b *pages.Brain) { b.DeleteNote(id) })
}

// ToggleTask handles POST /api/sessions/{id}/planner/tasks/{taskID}/toggle.
//
//	@Summary		Flip a task's completed flag
//	@Tags			planner
//	@Produce		json
//	@Param			id		path		string	true	"Session id"
//	@Param			taskID	path		int		true	"Task id"
//	@Success		200		{object}	SessionView
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/planner/tasks/{taskID}/toggle [post]
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "taskID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(p *pages.Planner) { p.ToggleTask(id) })
}

// SetPlannerView handles PUT /api/sessions/{id}/planner/view.
func (h *Handler) SetPlannerView(w http.ResponseWriter, r *http.Request) {
	var req ViewModeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.validate(pages.ModeDay, pages.ModeWeek, pages.ModeMonth); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(p *pages.Planner) { p.SetViewMode(req.Mode) })
}

// SetPlannerDate handles PUT /api/sessions/{id}/planner/date.
func (h *Handler) SetPlannerDate(w http.ResponseWriter, r *http.Request) {
	var req DateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		writeError(w, r, errors.Join(apperr.ErrInvalidInput, err))
		return
	}
	pageAction(h, w, r, func(p *pages.Planner) { p.SelectDate(date) })
}

// SetVaultMethod handles PUT /api/sessions/{id}/vault/method.
func (h *Handler) SetVaultMethod(w http.ResponseWriter, r *http.Request) {
	var req MethodRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(v *pages.Vault) { v.SelectMethod(req.Method) })
}

// UnlockVault handles POST /api/sessions/{id}/vault/unlock.
//
//	@Summary		Start unlocking the vault; completion arrives as vault.unlocked
//	@Tags			vault
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Session id"
//	@Param			body	body		UnlockRequest	false	"Authentication method"
//	@Success		200		{object}	SessionView
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/sessions/{id}/vault/unlock [post]
func (h *Handler) UnlockVault(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(v *pages.Vault) {
		if req.Method != "" {
			v.SelectMethod(req.Method)
		}
		v.Unlock()
	})
}

// LockVault handles POST /api/sessions/{id}/vault/lock.
func (h *Handler) LockVault(w http.ResponseWriter, r *http.Request) {
	pageAction(h, w, r, func(v *pages.Vault) { v.Lock() })
}

// SetVaultFolder handles PUT /api/sessions/{id}/vault/folder.
func (h *Handler) SetVaultFolder(w http.ResponseWriter, r *http.Request) {
	var req FolderRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(v *pages.Vault) { v.SelectFolder(req.Folder) })
}

// SetVaultQuery handles PUT /api/sessions/{id}/vault/query.
func (h *Handler) SetVaultQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(v *pages.Vault) { v.SetQuery(req.Query) })
}

// SelectCourse handles PUT /api/sessions/{id}/learn/course.
func (h *Handler) SelectCourse(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(l *pages.Learn) { l.SelectCourse(req.ID) })
}

// SelectMember handles PUT /api/sessions/{id}/family/member.
func (h *Handler) SelectMember(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(f *pages.Family) { f.SelectMember(req.ID) })
}

// SelectTab handles PUT /api/sessions/{id}/family/tab.
func (h *Handler) SelectTab(w http.ResponseWriter, r *http.Request) {
	var req TabRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(f *pages.Family) { f.SelectTab(req.Tab) })
}

// SelectTool handles PUT /api/sessions/{id}/create/tool.
func (h *Handler) SelectTool(w http.ResponseWriter, r *http.Request) {
	var req ToolRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pageAction(h, w, r, func(c *pages.Create) { c.SelectTool(req.Tool) })
}
