package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/lifeos/internal/session"
	"github.com/starford/lifeos/internal/sse"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// events, if non-nil, serves GET /sessions/{id}/events inside the auth group.
func NewRouter(sessions *session.Manager, events *sse.Broker, authEnabled bool, token string) chi.Router {
	h := NewHandler(sessions, events)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.DeleteSession)
		r.Get("/events", h.Events)

		// Shell.
		r.Post("/navigate", h.Navigate)
		r.Post("/theme", h.ToggleTheme)
		r.Post("/menu", h.ToggleMenu)
		r.Post("/voice/listen", h.VoiceListen)
		r.Post("/voice/mute", h.VoiceMute)
		r.Post("/voice/close", h.VoiceClose)

		// Pages.
		r.Post("/chat/messages", h.SendMessage)
		r.Put("/chat/input", h.SetChatInput)
		r.Post("/chat/listen", h.ChatListen)
		r.Put("/chat/language", h.SetLanguage)

		r.Put("/brain/filter", h.FilterNotes)
		r.Put("/brain/view", h.SetNotesView)
		r.Post("/brain/notes/{noteID}/star", h.StarNote)
		r.Delete("/brain/notes/{noteID}", h.DeleteNote)

		r.Post("/planner/tasks/{taskID}/toggle", h.ToggleTask)
		r.Put("/planner/view", h.SetPlannerView)
		r.Put("/planner/date", h.SetPlannerDate)

		r.Put("/vault/method", h.SetVaultMethod)
		r.Post("/vault/unlock", h.UnlockVault)
		r.Post("/vault/lock", h.LockVault)
		r.Put("/vault/folder", h.SetVaultFolder)
		r.Put("/vault/query", h.SetVaultQuery)

		r.Put("/learn/course", h.SelectCourse)
		r.Put("/family/member", h.SelectMember)
		r.Put("/family/tab", h.SelectTab)
		r.Put("/create/tool", h.SelectTool)
	})

	return r
}
