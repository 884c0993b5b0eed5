package routes

import (
	"github.com/gin-gonic/gin"

	"memberhub/internal/authz"
	"memberhub/internal/handlers"
	"memberhub/internal/middleware"
)

type Handlers struct {
	AdminRegistration *handlers.AdminRegistrationHandler
	Approval          *handlers.ApprovalHandler
	Auth              *handlers.AuthHandler
	Member            *handlers.MemberHandler
	Organization      *handlers.OrganizationHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, tokens middleware.TokenParser, limit middleware.RateLimitConfig) *gin.Engine {
	strict := middleware.RateLimitByIP(limit)
	auth := middleware.AuthMiddleware(tokens)

	// ---- public
	r.GET("/healthz", handlers.Healthz)
	r.GET("/organizations", h.Organization.List)
	r.GET("/organizations/:id", h.Organization.Get)

	r.POST("/admin-registration", strict, h.AdminRegistration.Register)
	r.POST("/auth/login", strict, h.Auth.Login)
	r.POST("/members/registration", strict, h.Member.Register)
	r.POST("/members/login", strict, h.Member.Login)
	r.POST("/members/login/verify", strict, h.Member.VerifyLogin)

	// ---- superadmin
	super := r.Group("/", auth, middleware.RequireRoles(authz.RoleSuperadmin))
	{
		super.POST("/admin-approve/:id", h.Approval.Approve)
		super.POST("/admin-reject/:id", h.Approval.Reject)
		super.GET("/admin-requests", h.Approval.List)
		super.GET("/admin-requests/:id", h.Approval.Get)
		super.POST("/organizations", h.Organization.Create)
	}

	// ---- member self-service
	me := r.Group("/members/me", auth, middleware.RequireRoles(authz.RoleMember))
	{
		me.GET("", h.Member.Me)
		me.GET("/card", h.Member.Card)
	}

	// ---- organization admins
	staff := r.Group("/members", auth, middleware.RequireRoles(authz.RoleAdmin))
	{
		staff.GET("", h.Member.List)
		staff.POST("/:id/approve", h.Member.Approve)
		staff.POST("/:id/reject", h.Member.Reject)
	}

	return r
}
