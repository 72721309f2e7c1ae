package middleware

import (
	"net/http"

	"leavemgmt/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContextKey string

const ContextEmployeeID ContextKey = "employee_id"

// RBACService is a local interface; any package with a matching Enforce
// method satisfies it without this package importing it.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, ok := c.Get(string(ContextEmployeeID))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID.(string),
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
