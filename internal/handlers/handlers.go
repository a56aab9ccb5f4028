package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"brightpath/site/internal/auth"
	"brightpath/site/internal/config"
	"brightpath/site/internal/middleware"
	"brightpath/site/internal/models"
	"brightpath/site/internal/notify"
	"brightpath/site/internal/ratelimit"
	"brightpath/site/internal/repository"
	"brightpath/site/internal/storage"
	"brightpath/site/internal/upload"
)

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	db           *pgxpool.Pool
	cache        *redis.Client
	store        *storage.ObjectStore
	users        *repository.UserRepository
	accounts     *repository.AccountRepository
	sessions     *repository.SessionRepository
	postings     *repository.PostingRepository
	contacts     *repository.ContactRepository
	applications *repository.ApplicationRepository
	authService  *auth.Service
	resolver     auth.SessionResolver
	resumes      *upload.ResumeService
	notifier     *notify.Producer
	cooldown     ratelimit.CooldownStore
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cooldown ratelimit.CooldownStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	postingRepo := repository.NewPostingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	authService := auth.NewService(userRepo, accountRepo, sessionRepo, cfg.Auth.SessionTTL, log)
	resolver := auth.NewStoreResolver(sessionRepo, userRepo, cfg.Auth.CookieName)
	resumes := upload.NewResumeService(store, store.ResumeBucket(), cfg.Forms.MaxResumeBytes, log)
	notifier := notify.NewProducer(cache, log)

	return HandlerSet{
		log:          log,
		cfg:          cfg,
		db:           db,
		cache:        cache,
		store:        store,
		users:        userRepo,
		accounts:     accountRepo,
		sessions:     sessionRepo,
		postings:     postingRepo,
		contacts:     contactRepo,
		applications: applicationRepo,
		authService:  authService,
		resolver:     resolver,
		resumes:      resumes,
		notifier:     notifier,
		cooldown:     cooldown,
	}
}

// Resolver exposes the session resolver so the server can mount the gate.
func (h HandlerSet) Resolver() auth.SessionResolver {
	return h.resolver
}

func (h HandlerSet) Register(router *gin.Engine) {
	router.GET("/healthz", h.Health)

	// Public site surface.
	router.GET("/careers", h.ListCareers)
	router.GET("/careers/:slug", h.GetCareer)
	router.POST("/careers/:slug/apply", h.SubmitApplication)
	router.POST("/contact", h.SubmitContact)
	router.GET("/files/resume", h.DownloadResume)

	router.POST("/sign-in", h.SignIn)
	router.POST("/sign-out", h.SignOut)

	// Everything under the admin prefix sits behind the session gate mounted
	// on the engine; routes here only add per-role checks on top.
	admin := router.Group(h.cfg.Auth.AdminPathPrefix)
	{
		admin.GET("/me", h.Me)

		admin.GET("/postings", h.AdminListPostings)
		admin.POST("/postings", h.AdminCreatePosting)
		admin.GET("/postings/:id", h.AdminGetPosting)
		admin.PUT("/postings/:id", h.AdminUpdatePosting)
		admin.DELETE("/postings/:id", h.AdminDeletePosting)

		admin.GET("/messages", h.AdminListMessages)
		admin.PATCH("/messages/:id/status", h.AdminUpdateMessageStatus)
		admin.DELETE("/messages/:id", h.AdminDeleteMessage)

		admin.GET("/applications", h.AdminListApplications)
		admin.PATCH("/applications/:id/status", h.AdminUpdateApplicationStatus)
		admin.DELETE("/applications/:id", h.AdminDeleteApplication)
		admin.GET("/applications/:id/resume-link", h.AdminResumeLink)

		team := admin.Group("/team")
		team.Use(middleware.RequireRoles(h.users, models.UserRoleAdmin))
		team.GET("", h.AdminListTeam)
		team.POST("", h.AdminCreateTeamMember)
		team.PATCH("/:id/status", h.AdminUpdateTeamMemberStatus)
	}
}
