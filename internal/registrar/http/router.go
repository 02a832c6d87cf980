package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/registrar/internal/registrar/domain"
	"github.com/aussiebroadwan/registrar/internal/registrar/service"
	"github.com/aussiebroadwan/registrar/internal/registrar/session"
	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/pkg/httpx"
	"github.com/aussiebroadwan/registrar/pkg/slogx"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/cors"

	_ "github.com/aussiebroadwan/registrar/api/registrar" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	sessions *session.Manager

	AuthService         *service.AuthService
	RegistrationService *service.RegistrationService
	StatisticsService   *service.StatisticsService
	ProgramService      *service.ProgramService
	TeamService         *service.TeamService
	UserService         *service.UserService
	ReportService       *service.ReportService
	SystemService       *service.SystemService
}

// NewRouter builds a router with request logging installed. Services are
// assigned to the exported fields before ApplyRoutes is called.
func NewRouter(
	sessions *session.Manager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		sessions:     sessions,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger, slogx.WithClientIP(httpx.GetRemoteIP)),
	}

	return r
}

// Use appends global middlewares. They run after request logging, in order.
func (r *Router) Use(mw ...httpx.Middleware) {
	r.middlewares = append(r.middlewares, mw...)
}

// SentryMiddleware reports panics to Sentry and attaches a hub to the request
// context for handlers that capture errors.
func SentryMiddleware() httpx.Middleware {
	h := sentryhttp.New(sentryhttp.Options{Repanic: true, WaitForDelivery: false, Timeout: 2 * time.Second})
	return h.Handle
}

// CORSMiddleware allows credentialed requests from the given origins.
func CORSMiddleware(origins []string) httpx.Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", slogx.RequestIDHeader},
		ExposedHeaders:   []string{slogx.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// ApplyRoutes registers every route on the mux. Call it once, after the
// service fields are set.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerRegistrations()
	r.registerStatistics()
	r.registerPublic()
	r.registerAdmin()
	r.registerReports()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Registrar API
//	@version		0.1.0
//	@description	Event registration service: public registration form, staff back office, PDF reports and exports.
//	@description
//	@description	Staff endpoints use a cookie session started by POST /api/auth/login.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/registrar
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						registrar.sid
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// guarded resolves the session, enforces the capabilities and rate limits
// per user.
func (r *Router) guarded(h http.HandlerFunc, limit httpx.RateLimitConfig, capabilities ...string) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.sessions),
		httpx.RequireCapability(capabilities...),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Auth: r.AuthService, Sessions: r.sessions}

	// Login is keyed by IP + username to slow down guessing.
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.sessions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerRegistrations() {
	h := &RegistrationsHandler{Registrations: r.RegistrationService}

	// The public form posts here.
	r.Mux.Handle("POST /api/registrations",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /api/registrations", r.guarded(h.HandleList, httpx.LenientLimit, domain.CapRegistrationsRead))
	r.Mux.Handle("GET /api/registrations/{id}", r.guarded(h.HandleGet, httpx.LenientLimit, domain.CapRegistrationsRead))
	r.Mux.Handle("PUT /api/registrations/{id}", r.guarded(h.HandleUpdate, httpx.ModerateLimit, domain.CapRegistrationsWrite))
	r.Mux.Handle("DELETE /api/registrations/{id}", r.guarded(h.HandleDelete, httpx.ModerateLimit, domain.CapRegistrationsWrite))
}

func (r *Router) registerStatistics() {
	h := &StatisticsHandler{Statistics: r.StatisticsService}

	r.Mux.Handle("GET /api/statistics", r.guarded(h.HandleSummary, httpx.LenientLimit, domain.CapStatisticsRead))
	r.Mux.Handle("GET /api/statistics/programs", r.guarded(h.HandlePrograms, httpx.LenientLimit, domain.CapStatisticsRead))
}

func (r *Router) registerPublic() {
	h := &PublicHandler{
		Registrations: r.RegistrationService,
		Programs:      r.ProgramService,
		Teams:         r.TeamService,
	}

	public := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(limit))
	}

	r.Mux.Handle("GET /api/programs", public(h.HandlePrograms, httpx.PublicLimit))
	r.Mux.Handle("GET /api/teams", public(h.HandleTeams, httpx.PublicLimit))
	r.Mux.Handle("GET /api/catalog", public(h.HandleCatalog, httpx.PublicLimit))
	r.Mux.Handle("GET /api/public/suggestions", public(h.HandleSuggestions, httpx.LenientLimit))
	r.Mux.Handle("GET /api/public/search", public(h.HandleSearch, httpx.LenientLimit))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{Programs: r.ProgramService, Teams: r.TeamService, Users: r.UserService}

	r.Mux.Handle("GET /api/admin/programs", r.guarded(h.HandleListPrograms, httpx.ModerateLimit, domain.CapProgramsManage))
	r.Mux.Handle("POST /api/admin/programs", r.guarded(h.HandleCreateProgram, httpx.ModerateLimit, domain.CapProgramsManage))
	r.Mux.Handle("GET /api/admin/programs/{id}", r.guarded(h.HandleGetProgram, httpx.ModerateLimit, domain.CapProgramsManage))
	r.Mux.Handle("PUT /api/admin/programs/{id}", r.guarded(h.HandleUpdateProgram, httpx.ModerateLimit, domain.CapProgramsManage))
	r.Mux.Handle("DELETE /api/admin/programs/{id}", r.guarded(h.HandleDeleteProgram, httpx.ModerateLimit, domain.CapProgramsManage))

	r.Mux.Handle("GET /api/admin/teams", r.guarded(h.HandleListTeams, httpx.ModerateLimit, domain.CapTeamsManage))
	r.Mux.Handle("POST /api/admin/teams", r.guarded(h.HandleCreateTeam, httpx.ModerateLimit, domain.CapTeamsManage))
	r.Mux.Handle("GET /api/admin/teams/{id}", r.guarded(h.HandleGetTeam, httpx.ModerateLimit, domain.CapTeamsManage))
	r.Mux.Handle("PUT /api/admin/teams/{id}", r.guarded(h.HandleUpdateTeam, httpx.ModerateLimit, domain.CapTeamsManage))
	r.Mux.Handle("DELETE /api/admin/teams/{id}", r.guarded(h.HandleDeleteTeam, httpx.ModerateLimit, domain.CapTeamsManage))

	r.Mux.Handle("GET /api/admin/users", r.guarded(h.HandleListUsers, httpx.ModerateLimit, domain.CapUsersManage))
	r.Mux.Handle("POST /api/admin/users", r.guarded(h.HandleCreateUser, httpx.ModerateLimit, domain.CapUsersManage))
}

func (r *Router) registerReports() {
	h := &ReportsHandler{Reports: r.ReportService}

	r.Mux.Handle("GET /api/reports/registrations/{id}", r.guarded(h.HandleDetail, httpx.ModerateLimit, domain.CapReportsRead))
	r.Mux.Handle("GET /api/reports/roster", r.guarded(h.HandleRoster, httpx.ModerateLimit, domain.CapReportsRead))
	r.Mux.Handle("POST /api/admin/reports/roster/archive", r.guarded(h.HandleArchive, httpx.StrictLimit, domain.CapReportsArchive))
	r.Mux.Handle("POST /api/admin/exports/sheets", r.guarded(h.HandleSheetsExport, httpx.StrictLimit, domain.CapExportsSheets))
}

func (r *Router) registerSystem() {
	sh := &SystemHandler{System: r.SystemService}
	r.Mux.Handle("GET /api/system/status", r.guarded(sh.HandleStatus, httpx.LenientLimit, domain.CapSystemRead))

	// Monitoring systems may poll frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.sessions.Store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
