package entities

// Role of whoever triggers an action.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
	RoleSystem  Role = "system"
)

// RoleAnonymous marks public callers such as document verification. It can perform no action.
const RoleAnonymous Role = "anonymous"

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin, RoleSystem:
		return true
	}
	return false
}

// Actor identifies the caller of a use case. Authentication happens outside the core;
// the HTTP layer only forwards the resolved identity.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Name string `json:"name,omitempty"`
	// CRM is the doctor's council registration, when Role is doctor.
	CRM string `json:"crm,omitempty"`
}

// SystemActor is used for transitions triggered by the engine itself (webhooks, auto delivery).
var SystemActor = Actor{ID: "", Role: RoleSystem, Name: "system"}

var AnonymousActor = Actor{Role: RoleAnonymous, Name: "public"}

func (a Actor) IsSystem() bool { return a.Role == RoleSystem }
