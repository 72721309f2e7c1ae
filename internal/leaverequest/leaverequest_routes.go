package leaverequest

import (
	"leavemgmt/internal/middleware"
	"leavemgmt/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "leaverequest", "manage"), handler.GetAll)
		requests.GET("/mine", middleware.RBACAuthorize(rbacService, "leaverequest", "read"), handler.GetMine)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leaverequest", "read"), handler.GetById)
		requests.POST("", middleware.RBACAuthorize(rbacService, "leaverequest", "read"), handler.Create)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leaverequest", "manage"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leaverequest", "manage"), handler.Reject)
		requests.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leaverequest", "read"), handler.Cancel)
		requests.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leaverequest", "manage"), handler.Delete)
	}
}
