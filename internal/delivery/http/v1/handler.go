package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskpad/internal/repository"
	"github.com/adanyl0v/taskpad/internal/services"
)

type Handler interface {
	HandleRoot(c *gin.Context)
	HandleHealth(c *gin.Context)

	HandleAuthenticate(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleRegister(c *gin.Context)
	HandleUpdateUser(c *gin.Context)
	HandleDeleteUser(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleGetSummary(c *gin.Context)
}

type handlerImpl struct {
	logger  zerolog.Logger
	auth    services.AuthService
	users   services.UserService
	tasks   services.TaskService
	summary services.SummaryService
	store   repository.Pinger
	// Require an access token on every owned route instead of only
	// checking the ones that are presented.
	enforceOwnership bool
}

type Options struct {
	Auth             services.AuthService
	Users            services.UserService
	Tasks            services.TaskService
	Summary          services.SummaryService
	Store            repository.Pinger
	EnforceOwnership bool
}

func New(logger zerolog.Logger, opts Options) Handler {
	return &handlerImpl{
		logger:           logger,
		auth:             opts.Auth,
		users:            opts.Users,
		tasks:            opts.Tasks,
		summary:          opts.Summary,
		store:            opts.Store,
		enforceOwnership: opts.EnforceOwnership,
	}
}

// RegisterRoutes mounts the API. authLimit guards the credential
// endpoints and may be nil.
func RegisterRoutes(router gin.IRouter, h Handler, authLimit gin.HandlerFunc) {
	router.GET("/", h.HandleRoot)
	router.GET("/health", h.HandleHealth)

	credentials := router.Group("")
	if authLimit != nil {
		credentials.Use(authLimit)
	}
	credentials.POST("/users", h.HandleRegister)
	credentials.POST("/authenticate", h.HandleAuthenticate)

	owned := router.Group("", h.HandleAuthMiddleware)
	owned.GET("/:userId/tasks", h.HandleGetTasks)
	owned.GET("/:userId/ai/summary", h.HandleGetSummary)
	owned.GET("/tasks/:id", h.HandleGetTask)
	owned.POST("/tasks", h.HandleCreateTask)
	owned.PUT("/tasks/:id", h.HandleUpdateTask)
	owned.DELETE("/tasks/:id", h.HandleDeleteTask)
	owned.PUT("/users/:id", h.HandleUpdateUser)
	owned.DELETE("/users/:id", h.HandleDeleteUser)
}
