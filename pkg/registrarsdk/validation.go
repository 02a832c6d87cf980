package registrarsdk

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	issueRequired = "required"

	maxTextLen     = 100
	maxPrograms    = 30
	maxDisplayRank = 10000
)

var (
	reUsername  = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	reProgramID = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// FieldErrors collects validation failures in the order they were found.
type FieldErrors []FieldError

func (fe *FieldErrors) add(field, issue string) {
	*fe = append(*fe, FieldError{Field: field, Issue: issue})
}

// Has reports whether field failed validation.
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Field + ": " + e.Issue
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) orNil() FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	return c == CategoryJunior || c == CategorySenior
}

// ValidProgramType reports whether t is a known program type.
func ValidProgramType(t string) bool {
	return t == ProgramTypeStage || t == ProgramTypeNonStage
}

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleTeamLeader
}

// checkText requires a non-blank value within maxTextLen.
func checkText(fe *FieldErrors, field, v string) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		fe.add(field, issueRequired)
	case utf8.RuneCountInString(v) > maxTextLen:
		fe.add(field, fmt.Sprintf("too long (max %d)", maxTextLen))
	}
}

func checkCategory(fe *FieldErrors, v string) {
	if !ValidCategory(v) {
		fe.add("category", "must be junior or senior")
	}
}

// checkPrograms requires at least one program and at most maxPrograms.
func checkPrograms(fe *FieldErrors, programs []string) {
	switch {
	case len(programs) == 0:
		fe.add("programs", "at least one program must be selected")
		return
	case len(programs) > maxPrograms:
		fe.add("programs", fmt.Sprintf("too many programs (max %d)", maxPrograms))
		return
	}
	for i, p := range programs {
		p = strings.TrimSpace(p)
		if p == "" || len(p) > 64 {
			fe.add(fmt.Sprintf("programs[%d]", i), "must be 1-64 characters")
		}
	}
}

// Validate checks the shape of a new registration. Program membership in the
// live catalog is checked by the server.
func (r CreateRegistrationRequest) Validate() FieldErrors {
	var fe FieldErrors
	checkText(&fe, "fullName", r.FullName)
	checkText(&fe, "place", r.Place)
	checkText(&fe, "teamName", r.TeamName)
	checkCategory(&fe, r.Category)
	checkPrograms(&fe, r.Programs)
	return fe.orNil()
}

// Validate checks the fields present in a partial update.
func (r UpdateRegistrationRequest) Validate() FieldErrors {
	var fe FieldErrors
	if r.FullName != nil {
		checkText(&fe, "fullName", *r.FullName)
	}
	if r.Place != nil {
		checkText(&fe, "place", *r.Place)
	}
	if r.TeamName != nil {
		checkText(&fe, "teamName", *r.TeamName)
	}
	if r.Category != nil {
		checkCategory(&fe, *r.Category)
	}
	if r.Programs != nil {
		checkPrograms(&fe, r.Programs)
	}
	return fe.orNil()
}

// Validate only checks presence; credentials are never described further.
func (r LoginRequest) Validate() FieldErrors {
	var fe FieldErrors
	if strings.TrimSpace(r.Username) == "" {
		fe.add("username", issueRequired)
	}
	if r.Password == "" {
		fe.add("password", issueRequired)
	}
	return fe.orNil()
}

func checkProgramID(fe *FieldErrors, v string) {
	switch {
	case v == "":
		fe.add("programId", issueRequired)
	case len(v) > 64:
		fe.add("programId", "too long (max 64)")
	case !reProgramID.MatchString(v):
		fe.add("programId", "must be lowercase words separated by single hyphens")
	}
}

func checkDisplayOrder(fe *FieldErrors, v int) {
	if v < 0 || v > maxDisplayRank {
		fe.add("displayOrder", fmt.Sprintf("must be between 0 and %d", maxDisplayRank))
	}
}

// Validate checks slug, label, category, type and display order.
func (r CreateProgramRequest) Validate() FieldErrors {
	var fe FieldErrors
	checkProgramID(&fe, r.ProgramID)
	checkText(&fe, "name", r.Name)
	checkCategory(&fe, r.Category)
	if !ValidProgramType(r.Type) {
		fe.add("type", "must be stage or non-stage")
	}
	checkDisplayOrder(&fe, r.DisplayOrder)
	return fe.orNil()
}

// Validate checks the fields present in a partial update.
func (r UpdateProgramRequest) Validate() FieldErrors {
	var fe FieldErrors
	if r.ProgramID != nil {
		checkProgramID(&fe, *r.ProgramID)
	}
	if r.Name != nil {
		checkText(&fe, "name", *r.Name)
	}
	if r.Category != nil {
		checkCategory(&fe, *r.Category)
	}
	if r.Type != nil && !ValidProgramType(*r.Type) {
		fe.add("type", "must be stage or non-stage")
	}
	if r.DisplayOrder != nil {
		checkDisplayOrder(&fe, *r.DisplayOrder)
	}
	return fe.orNil()
}

// Validate requires a team name.
func (r CreateTeamRequest) Validate() FieldErrors {
	var fe FieldErrors
	checkText(&fe, "name", r.Name)
	return fe.orNil()
}

// Validate checks the name when it is present.
func (r UpdateTeamRequest) Validate() FieldErrors {
	var fe FieldErrors
	if r.Name != nil {
		checkText(&fe, "name", *r.Name)
	}
	return fe.orNil()
}

// ValidateUsername applies the username rules shared by user creation and
// start-up bootstrap.
func ValidateUsername(username string) string {
	switch {
	case len(username) < 3 || len(username) > 32:
		return "must be 3-32 characters"
	case !reUsername.MatchString(username):
		return "must only contain a-z, A-Z, 0-9, '.', '_' or '-'"
	}
	return ""
}

// ValidatePassword applies the password length rules.
func ValidatePassword(password string) string {
	switch {
	case len(password) < 8:
		return "too short (min 8)"
	case len(password) > 128:
		return "too long (max 128)"
	}
	return ""
}

// Validate applies the username and password rules and checks the role.
func (r CreateUserRequest) Validate() FieldErrors {
	var fe FieldErrors
	if r.Username == "" {
		fe.add("username", issueRequired)
	} else if issue := ValidateUsername(r.Username); issue != "" {
		fe.add("username", issue)
	}
	if r.Password == "" {
		fe.add("password", issueRequired)
	} else if issue := ValidatePassword(r.Password); issue != "" {
		fe.add("password", issue)
	}
	if !ValidRole(r.Role) {
		fe.add("role", "must be admin or team_leader")
	}
	return fe.orNil()
}

// Roster ranges.
const (
	RangeAll   = ""
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// Validate rejects unknown categories, program types and ranges.
func (p RosterParams) Validate() FieldErrors {
	var fe FieldErrors
	if p.Category != "" && !ValidCategory(p.Category) {
		fe.add("category", "must be junior or senior")
	}
	if p.ProgramType != "" && !ValidProgramType(p.ProgramType) {
		fe.add("programType", "must be stage or non-stage")
	}
	switch p.Range {
	case RangeAll, RangeToday, RangeWeek, RangeMonth:
	default:
		fe.add("range", "must be today, week or month")
	}
	return fe.orNil()
}
