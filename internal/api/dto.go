package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/lifeos/internal/pages"
	"github.com/starford/lifeos/internal/session"
)

// SessionView is the response for every session call (aliased from the session layer).
type SessionView = session.View

// CreateSessionRequest is the request body for opening a session.
type CreateSessionRequest struct {
	Path string `json:"path,omitempty" example:"/brain"`
}

// NavigateRequest is the request body for changing route.
type NavigateRequest struct {
	Path string `json:"path" example:"/planner" validate:"required"`
}

// Validate implements validation.Validatable.
func (r NavigateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required),
	)
}

// TextRequest carries free text: a chat message or draft.
type TextRequest struct {
	Text string `json:"text" example:"Plan my week"`
}

// Validate implements validation.Validatable. Blank text is allowed; the
// page ignores it.
func (r TextRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Length(0, 4096)),
	)
}

// LanguageRequest selects the translation language.
type LanguageRequest struct {
	Language string `json:"language" example:"Spanish" validate:"required"`
}

// Validate implements validation.Validatable.
func (r LanguageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Language, validation.Required),
	)
}

// FilterRequest updates the notes filter. Absent fields keep their value.
type FilterRequest struct {
	Category *string `json:"category,omitempty" example:"ideas"`
	Query    *string `json:"query,omitempty" example:"launch"`
}

// Validate implements validation.Validatable.
func (r FilterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.NilOrNotEmpty),
		validation.Field(&r.Query, validation.Length(0, 256)),
	)
}

// ViewModeRequest selects a page layout.
type ViewModeRequest struct {
	Mode string `json:"mode" example:"list" validate:"required"`
}

func (r ViewModeRequest) validate(modes ...string) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Mode, validation.Required, oneOf(modes)),
	)
}

// DateRequest selects a planner date.
type DateRequest struct {
	Date string `json:"date" example:"2024-01-15" validate:"required"`
}

// Validate implements validation.Validatable.
func (r DateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.Required, validation.Date(time.DateOnly)),
	)
}

// MethodRequest selects the vault authentication method.
type MethodRequest struct {
	Method string `json:"method" example:"pin" validate:"required"`
}

// Validate implements validation.Validatable.
func (r MethodRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Method, validation.Required, oneOf(pages.AuthMethods)),
	)
}

// UnlockRequest starts a vault unlock, optionally choosing the method first.
type UnlockRequest struct {
	Method string `json:"method,omitempty" example:"biometric"`
}

// Validate implements validation.Validatable.
func (r UnlockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Method, oneOf(pages.AuthMethods)),
	)
}

// FolderRequest selects a vault folder.
type FolderRequest struct {
	Folder string `json:"folder" example:"images" validate:"required"`
}

// Validate implements validation.Validatable.
func (r FolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Folder, validation.Required),
	)
}

// QueryRequest sets a search query; empty clears it.
type QueryRequest struct {
	Query string `json:"query" example:"pdf"`
}

// Validate implements validation.Validatable.
func (r QueryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Length(0, 256)),
	)
}

// IDRequest selects a record by id.
type IDRequest struct {
	ID int `json:"id" example:"2" validate:"required"`
}

// Validate implements validation.Validatable.
func (r IDRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, validation.Min(1)),
	)
}

// TabRequest selects a Family Hub tab.
type TabRequest struct {
	Tab string `json:"tab" example:"photos" validate:"required"`
}

// Validate implements validation.Validatable.
func (r TabRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Tab, validation.Required, oneOf(pages.FamilyTabs)),
	)
}

// ToolRequest selects a CreateSpace tool.
type ToolRequest struct {
	Tool string `json:"tool" example:"circle" validate:"required"`
}

// Validate implements validation.Validatable.
func (r ToolRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Tool, validation.Required),
	)
}

func oneOf(values []string) validation.Rule {
	in := make([]any, len(values))
	for i, v := range values {
		in[i] = v
	}
	return validation.In(in...)
}
