package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/opencourse/transcripts/internal/exams/service"
	"github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/httpx"
	"github.com/opencourse/transcripts/pkg/jwtx"
	"github.com/opencourse/transcripts/pkg/slogx"

	_ "github.com/opencourse/transcripts/api/exams" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	TokenService       *service.TokenService
	AuthService        *service.AuthService
	UserService        *service.UserService
	ExamService        *service.ExamService
	AssignmentService  *service.AssignmentService
	MFAService         *service.MFAService
	BootstrapService   *service.BootstrapService
	ReportService      *service.ReportService
	KeyRotationService *service.KeyRotationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMFA()
	r.registerExams()
	r.registerAssignments()
	r.registerAdmin()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			OpenCourse Exams Service API
//	@version		0.1.0
//	@description	Exam registration and grading service with stateless JWT sessions and a role-capability access model (admin, supervisor, user).
//	@description
//	@description				All tokens are signed using EdDSA (Ed25519) and can be verified using the JWKS endpoint.
//
//	@contact.name				OpenCourse Team
//	@contact.url				https://github.com/opencourse/transcripts
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:  r.AuthService,
		TokenService: r.TokenService,
	}

	// POST /auth/login - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/mfa/verify - strict rate limit by IP (pre-auth, carries the
	// challenge token in the body rather than a bearer token)
	r.Mux.Handle("POST /v1/auth/mfa/verify",
		httpx.Chain(http.HandlerFunc(h.HandleMFAVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/refresh - moderate rate limit by IP. The handler verifies
	// the bearer token itself so the expired/malformed distinction comes
	// from the token service, not the authn middleware.
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /auth/logout - lenient rate limit by user
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /auth/me - lenient rate limit by user
	meHandler := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(meHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	// POST /auth/mfa/enroll - moderate rate limit by user
	securedEnroll := httpx.Chain(http.HandlerFunc(h.HandleEnroll),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// POST /auth/mfa/activate - strict rate limit by user (prevent brute force of TOTP codes)
	securedActivate := httpx.Chain(http.HandlerFunc(h.HandleActivate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)

	r.Mux.Handle("POST /v1/auth/mfa/enroll", securedEnroll)
	r.Mux.Handle("POST /v1/auth/mfa/activate", securedActivate)
}

func (r *Router) registerExams() {
	h := &ExamsHandler{ExamService: r.ExamService}

	// Public catalog endpoints - lenient rate limit by IP
	r.Mux.Handle("GET /v1/exams",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/exams/{exam_id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Catalog mutations (admin role, enforced by the service) - moderate rate limit by user
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/exams", securedCreate)
	r.Mux.Handle("DELETE /v1/exams/{exam_id}", securedDelete)
}

func (r *Router) registerAssignments() {
	h := &AssignmentsHandler{AssignmentService: r.AssignmentService}

	// POST /exams/{exam_id}/register - moderate rate limit by user
	securedRegister := httpx.Chain(http.HandlerFunc(h.HandleRegister),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// PUT /exams/{exam_id}/vote - moderate rate limit by user (supervisor operation)
	securedVote := httpx.Chain(http.HandlerFunc(h.HandleAssignVote),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// GET /me/exams - lenient rate limit by user
	securedResults := httpx.Chain(http.HandlerFunc(h.HandleMyResults),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// GET /supervisor/ungraded-assignments - moderate rate limit by user
	securedUngraded := httpx.Chain(http.HandlerFunc(h.HandleUngraded),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/exams/{exam_id}/register", securedRegister)
	r.Mux.Handle("PUT /v1/exams/{exam_id}/vote", securedVote)
	r.Mux.Handle("GET /v1/me/exams", securedResults)
	r.Mux.Handle("GET /v1/supervisor/ungraded-assignments", securedUngraded)
}

func (r *Router) registerAdmin() {
	usersHandler := &UsersHandler{UserService: r.UserService}

	// User administration - moderate rate limit by user
	securedList := httpx.Chain(http.HandlerFunc(usersHandler.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedCreate := httpx.Chain(http.HandlerFunc(usersHandler.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedResetMFA := httpx.Chain(http.HandlerFunc(usersHandler.HandleResetMFA),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/admin/users", securedList)
	r.Mux.Handle("POST /v1/admin/users", securedCreate)
	r.Mux.Handle("DELETE /v1/admin/users/{user_id}/mfa", securedResetMFA)

	// GET /admin/exams/{exam_id}/results/export - moderate rate limit by user
	exportHandler := &ExportHandler{ReportService: r.ReportService}
	r.Mux.Handle("GET /v1/admin/exams/{exam_id}/results/export",
		httpx.Chain(exportHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /admin/keys/rotate - moderate rate limit by user
	rotateHandler := &KeyRotationHandler{KeyRotationService: r.KeyRotationService}
	r.Mux.Handle("POST /v1/admin/keys/rotate",
		httpx.Chain(http.HandlerFunc(rotateHandler.HandleRotate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}

	// GET /bootstrap - lenient rate limit by IP (status poll)
	r.Mux.Handle("GET /v1/bootstrap",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(http.HandlerFunc(h.HandleBootstrap),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// GET /jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
