package app

import (
	"database/sql"
	"path/filepath"

	"leavemgmt/internal/allocation"
	"leavemgmt/internal/auth"
	"leavemgmt/internal/employee"
	"leavemgmt/internal/leaverequest"
	"leavemgmt/internal/leavetype"
	"leavemgmt/internal/messaging/kafka"
	"leavemgmt/internal/middleware"
	"leavemgmt/internal/rbac"
	"leavemgmt/internal/rbac/infra"
	"leavemgmt/internal/shared/clock"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	allocationRepo := allocation.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("config", "rbac_model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	clk := clock.Real()
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo)
	allocationService := allocation.NewService(db, allocationRepo, leaveTypeRepo, employeeRepo, clk)
	requestValidator := leaverequest.NewValidator(leaveTypeRepo, allocationRepo)
	leaveRequestService := leaverequest.NewServiceWithOutbox(db, leaveRequestRepo, allocationRepo, requestValidator, outboxRepo, clk)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	allocationHandler := allocation.NewHandler(allocationService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		allocation.RegisterRoutes(api, allocationHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService)
	}

	return nil
}
