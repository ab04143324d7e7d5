package pages

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/starford/lifeos/internal/collab"
	"github.com/starford/lifeos/internal/loop"
	"github.com/starford/lifeos/internal/models"
)

// VaultState is the lock state of the Privacy Vault.
type VaultState string

// Vault states.
const (
	VaultLocked    VaultState = "locked"
	VaultUnlocking VaultState = "unlocking"
	VaultUnlocked  VaultState = "unlocked"
)

// Authentication methods offered on the lock screen.
const (
	AuthBiometric = "biometric"
	AuthPassword  = "password"
	AuthPIN       = "pin"
)

// AuthMethods lists the lock screen options in display order.
var AuthMethods = []string{AuthBiometric, AuthPassword, AuthPIN}

// Vault is the Privacy Vault page. No credential is checked beyond what the
// configured Authenticator does, and nothing is encrypted.
type Vault struct {
	env Env

	state   VaultState
	method  string
	pending *loop.Timer
	reason  string

	folders []models.VaultFolder
	files   []models.FileRecord
	folder  string
	query   string
}

// VaultView is the rendered vault body. Folder and file fields are only
// populated once unlocked.
type VaultView struct {
	State   VaultState           `json:"state"`
	Method  string               `json:"method"`
	Methods []string             `json:"methods"`
	Reason  string               `json:"reason,omitempty"`
	Folders []models.VaultFolder `json:"folders,omitempty"`
	Folder  string               `json:"folder,omitempty"`
	Query   string               `json:"query,omitempty"`
	Files   []models.FileRecord  `json:"files,omitempty"`
}

// NewVault mounts the vault in the locked state.
func NewVault(env Env) *Vault {
	v := &Vault{
		env:     env,
		state:   VaultLocked,
		method:  AuthBiometric,
		folders: env.Seed.Vault.Folders,
		files:   env.Seed.Vault.Files,
	}
	if len(v.folders) > 0 {
		v.folder = v.folders[0].ID
	}
	return v
}

// Route implements Page.
func (v *Vault) Route() string { return PathVault }

// State returns the lock state.
func (v *Vault) State() VaultState { return v.state }

// Method returns the chosen authentication method.
func (v *Vault) Method() string { return v.method }

// SelectMethod chooses the authentication method on the lock screen.
// It is ignored once unlocked or for unknown methods.
func (v *Vault) SelectMethod(method string) bool {
	if v.state == VaultUnlocked || !slices.Contains(AuthMethods, method) {
		return false
	}
	v.method = method
	return true
}

// Unlock starts the unlock transition. Only the first call while locked
// schedules it; later calls are no-ops until the vault locks again.
func (v *Vault) Unlock() bool {
	if v.state != VaultLocked {
		return false
	}
	v.state = VaultUnlocking
	v.reason = ""
	method := v.method
	v.pending = v.env.Scope.After(v.env.Delays.Unlock, func() { v.authenticated(method) })
	return true
}

func (v *Vault) authenticated(method string) {
	v.pending = nil
	err := v.env.Collab.Auth.Authenticate(v.env.Ctx, method, "")
	if err != nil {
		v.state = VaultLocked
		v.reason = err.Error()
		if !errors.Is(err, collab.ErrRejected) {
			v.env.Logger.Warn("vault authentication failed", slog.String("error", err.Error()))
		}
		v.env.emit(EventVaultRejected, map[string]string{"method": method, "reason": v.reason})
		return
	}
	v.state = VaultUnlocked
	v.env.emit(EventVaultUnlocked, map[string]string{"method": method})
}

// Lock returns to the locked state immediately. Locking while unlocking
// cancels the pending transition; locking while locked is a no-op.
func (v *Vault) Lock() bool {
	switch v.state {
	case VaultLocked:
		return false
	case VaultUnlocking:
		v.pending.Stop()
		v.pending = nil
	}
	v.state = VaultLocked
	return true
}

// SelectFolder highlights a folder. Unknown ids are ignored.
func (v *Vault) SelectFolder(id string) bool {
	if findIndex(v.folders, func(f models.VaultFolder) bool { return f.ID == id }) < 0 {
		return false
	}
	v.folder = id
	return true
}

// SetQuery filters the file list by name, ignoring case.
func (v *Vault) SetQuery(q string) { v.query = q }

// Files returns the files matching the current query.
func (v *Vault) Files() []models.FileRecord {
	q := strings.ToLower(v.query)
	out := make([]models.FileRecord, 0, len(v.files))
	for _, f := range v.files {
		if strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}
	return out
}

// Render implements Page.
func (v *Vault) Render() View {
	body := VaultView{
		State:   v.state,
		Method:  v.method,
		Methods: AuthMethods,
		Reason:  v.reason,
	}
	subtitle := "Your secure digital safe with military-grade encryption"
	if v.state == VaultUnlocked {
		subtitle = "Your files are secure with end-to-end encryption"
		body.Folders = v.folders
		body.Folder = v.folder
		body.Query = v.query
		body.Files = v.Files()
	}
	return View{
		Route:    PathVault,
		Title:    "Privacy Vault",
		Subtitle: subtitle,
		Body:     body,
	}
}
