package allocation

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
	allocations := r.Group("/leave-allocations")
	allocations.Use(middleware.AuthMiddleware())
	{
		allocations.GET("", middleware.RBACAuthorize(rbacService, "allocation", "read"), handler.GetAll)
		allocations.GET("/:id", middleware.RBACAuthorize(rbacService, "allocation", "read"), handler.GetById)
		allocations.POST("", middleware.RBACAuthorize(rbacService, "allocation", "manage"), handler.Create)
		allocations.PUT("/:id", middleware.RBACAuthorize(rbacService, "allocation", "manage"), handler.Update)
		allocations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "allocation", "manage"), handler.Delete)
	}
}
