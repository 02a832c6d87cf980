package registrarsdk

import "time"

// Categories and program types.
const (
	CategoryJunior = "junior"
	CategorySenior = "senior"

	ProgramTypeStage    = "stage"
	ProgramTypeNonStage = "non-stage"

	RoleAdmin      = "admin"
	RoleTeamLeader = "team_leader"
)

// ============================================================================
// Common
// ============================================================================

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	// Error is one of the ErrorCode constants (e.g., "validation_error")
	Error string `json:"error"`

	// Message is a human-readable description of the error
	Message string `json:"message"`

	// Details lists the failing fields of a validation_error
	Details []FieldError `json:"details,omitempty"`
}

// MessageResponse is returned by endpoints with nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the response structure for health check endpoints.
type HealthResponse struct {
	// Status is "ok", or "degraded" when a readiness check fails
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks contains readiness results for dependencies.
type HealthChecks struct {
	// Database is "ok" or "error: " followed by the ping failure
	Database string `json:"database"`

	// Sessions reports the session store the same way
	Sessions string `json:"sessions"`
}

// ============================================================================
// Auth
// ============================================================================

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`

	// Password is compared against the stored hash and never logged.
	Password string `json:"password"`
}

// SessionUser is the user attached to a session.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	// Role is "admin" or "team_leader"
	Role string `json:"role"`
}

// LoginResponse confirms a login. The session itself travels in the
// registrar.sid cookie, never in the body.
type LoginResponse struct {
	Message string      `json:"message"`
	User    SessionUser `json:"user"`
}

// MeResponse describes the caller of GET /api/auth/me. User is nil for
// anonymous callers.
type MeResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
}

// ============================================================================
// Registrations
// ============================================================================

// Registration is a stored student registration. Programs hold canonical
// program ids; legacy aliases are normalized before they are returned.
type Registration struct {
	// ID is a UUID assigned on creation
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Place    string `json:"place"`

	// TeamName is free text; it need not match a configured team
	TeamName string `json:"teamName"`

	// Category is "junior" or "senior"
	Category string `json:"category"`

	// Programs are canonical program ids in the order they were chosen
	Programs []string `json:"programs"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateRegistrationRequest is the body of POST /api/registrations.
// Programs may use legacy aliases; the server normalizes them.
type CreateRegistrationRequest struct {
	FullName string `json:"fullName"`
	Place    string `json:"place"`
	TeamName string `json:"teamName"`

	// Category is "junior" or "senior"
	Category string `json:"category"`

	// Programs are program ids or aliases, without duplicates after normalization
	Programs []string `json:"programs"`
}

// UpdateRegistrationRequest is a partial update. Nil fields are left unchanged.
type UpdateRegistrationRequest struct {
	FullName *string  `json:"fullName,omitempty"`
	Place    *string  `json:"place,omitempty"`
	TeamName *string  `json:"teamName,omitempty"`
	Category *string  `json:"category,omitempty"`
	Programs []string `json:"programs,omitempty"`
}

// ListRegistrationsParams filters GET /api/registrations. Search wins over Category.
type ListRegistrationsParams struct {
	Search   string
	Category string
}

// Statistics are the registration totals. Today counts registrations
// created on the current calendar day in the configured TIMEZONE.
type Statistics struct {
	Total  int `json:"total"`
	Junior int `json:"junior"`
	Senior int `json:"senior"`
	Today  int `json:"today"`
}

// ProgramCount is the number of registrations that include one program.
type ProgramCount struct {
	ProgramID string `json:"programId"`

	// Label is the live program name, or the static catalog label for ids
	// no longer in the live catalog
	Label string `json:"label"`

	// Type is "stage" or "non-stage"
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CategoryBreakdown summarises one category. Stage and NonStage count
// registrations holding at least one program of that type.
type CategoryBreakdown struct {
	Category      string         `json:"category"`
	Registrations int            `json:"registrations"`
	Stage         int            `json:"stage"`
	NonStage      int            `json:"nonStage"`
	Programs      []ProgramCount `json:"programs"`
}

// ProgramStatistics is the body of GET /api/statistics/programs.
type ProgramStatistics struct {
	Categories []CategoryBreakdown `json:"categories"`
}

// ============================================================================
// Public
// ============================================================================

// Suggestion is a name completion from GET /api/public/suggestions.
type Suggestion struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Place    string `json:"place"`
}

// PublicRegistration is the sanitized record returned by public search.
type PublicRegistration struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	Place    string   `json:"place"`
	TeamName string   `json:"teamName"`
	Category string   `json:"category"`
	Programs []string `json:"programs"`

	// ProgramLabels holds the display label of each entry of Programs
	ProgramLabels []string  `json:"programLabels"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CategoryPrograms lists canonical program ids of a category by type.
type CategoryPrograms struct {
	Stage    []string `json:"stage"`
	NonStage []string `json:"nonStage"`
}

// CatalogResponse exposes the static normalization tables.
type CatalogResponse struct {
	// Aliases maps legacy program tokens to canonical ids
	Aliases map[string]string `json:"aliases"`

	// Labels maps canonical ids to display labels
	Labels map[string]string `json:"labels"`

	// Categories is keyed by "junior" and "senior"
	Categories map[string]CategoryPrograms `json:"categories"`
}

// ============================================================================
// Programs, teams, users
// ============================================================================

// Program is an entry of the live program catalog.
type Program struct {
	ID string `json:"id"`

	// ProgramID is the slug stored in registrations (e.g., "junior-qiraat")
	ProgramID string `json:"programId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Type      string `json:"type"`

	// IsActive programs are offered on the public form
	IsActive bool `json:"isActive"`

	// DisplayOrder sorts programs within a category, lowest first
	DisplayOrder int `json:"displayOrder"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateProgramRequest defines a new program. IsActive defaults to true.
type CreateProgramRequest struct {
	ProgramID    string `json:"programId"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Type         string `json:"type"`
	IsActive     *bool  `json:"isActive,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
}

// UpdateProgramRequest is a partial update. Changing ProgramID does not
// rewrite registrations that already reference the old id.
type UpdateProgramRequest struct {
	ProgramID    *string `json:"programId,omitempty"`
	Name         *string `json:"name,omitempty"`
	Category     *string `json:"category,omitempty"`
	Type         *string `json:"type,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
}

// Team is a team leaders can register students under.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateTeamRequest defines a new team. IsActive defaults to true.
type CreateTeamRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// UpdateTeamRequest is a partial update.
type UpdateTeamRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// User never carries the password hash.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUserRequest creates an admin or team leader account.
type CreateUserRequest struct {
	// Username is 3-32 characters of a-z, A-Z, 0-9, '.', '_' or '-'.
	Username string `json:"username"`

	// Password is 8-128 bytes.
	Password string `json:"password"`

	// Role is "admin" or "team_leader".
	Role string `json:"role"`
}

// ============================================================================
// Reports and exports
// ============================================================================

// RosterParams filters the roster report.
type RosterParams struct {
	// Category limits the roster to junior or senior. Empty means both.
	Category string `json:"category"`

	// ProgramType keeps registrations holding at least one stage or
	// non-stage program.
	ProgramType string `json:"programType,omitempty"`

	// Range is today, week or month. Empty means all time.
	Range string `json:"range,omitempty"`
}

// ArchiveResponse locates an archived roster PDF. URL is empty when no
// public base URL is configured.
type ArchiveResponse struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}

// SheetTab reports how many registration rows were written to one tab.
type SheetTab struct {
	Title string `json:"title"`
	Rows  int    `json:"rows"`
}

// SheetsExportResponse is the result of a Google Sheets roster export.
type SheetsExportResponse struct {
	SpreadsheetID string     `json:"spreadsheetId"`
	Tabs          []SheetTab `json:"tabs"`
}

// ============================================================================
// System
// ============================================================================

// RuntimeStatus is a snapshot of the Go runtime.
type RuntimeStatus struct {
	Goroutines     int    `json:"goroutines"`
	HeapAllocBytes uint64 `json:"heapAllocBytes"`
	SysBytes       uint64 `json:"sysBytes"`
}

// StatusMetrics are record counts taken for the status page.
type StatusMetrics struct {
	TotalRegistrations int `json:"totalRegistrations"`
	TotalPrograms      int `json:"totalPrograms"`
	ActivePrograms     int `json:"activePrograms"`
}

// SystemStatusResponse is the body of GET /api/system/status.
type SystemStatusResponse struct {
	// Status is "ok", or "degraded" when the database does not answer
	Status string `json:"status"`

	// Uptime is a Go duration string truncated to seconds (e.g., "1h2m3s")
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Env     string `json:"env"`

	// Database is "connected" or "disconnected"
	Database string `json:"database"`

	Runtime RuntimeStatus `json:"runtime"`

	// Metrics is zero when the database is disconnected
	Metrics StatusMetrics `json:"metrics"`
}
