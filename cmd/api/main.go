package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/punchdesk/attendance-backend-go/internal/config"
	appHTTP "github.com/punchdesk/attendance-backend-go/internal/handler/http"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/cron"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/storage"
	"github.com/punchdesk/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/punchdesk/attendance-backend-go/internal/service/attendance"
	authService "github.com/punchdesk/attendance-backend-go/internal/service/auth"
	expenseService "github.com/punchdesk/attendance-backend-go/internal/service/expense"
	"github.com/punchdesk/attendance-backend-go/internal/service/file"
	leaveService "github.com/punchdesk/attendance-backend-go/internal/service/leave"
	notificationService "github.com/punchdesk/attendance-backend-go/internal/service/notification"
	payrollService "github.com/punchdesk/attendance-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "attendance-backend"),
	)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone:", err)
	}
	clk := clock.New(loc)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	auditLog := postgresql.NewAuditLog(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := file.NewFileService(fileStorage)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, clk, logger)
	authSvc := authService.NewAuthService(userRepo, jwtService, auditLog, logger)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		fileSvc,
		auditLog,
		clk,
		cfg.Attendance,
		logger,
	)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, userRepo, notificationSvc, auditLog, clk, logger)
	expenseSvc := expenseService.NewExpenseService(expenseRepo, fileSvc, notificationSvc, auditLog, clk, logger)
	payrollSvc := payrollService.NewPayrollService(userRepo, attendanceRepo, leaveRepo, expenseRepo)

	// Nightly sweep closing abandoned punch cycles.
	scheduler := cron.NewScheduler(clk)
	sweep := cron.NewAutoPunchOutSweep(attendanceRepo, auditLog, clk, cfg.Attendance.AutoPunchOutTime, logger)
	if err := sweep.Register(scheduler); err != nil {
		log.Fatal("Failed to register auto punch out sweep:", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc, jwtService),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Expense:      appHTTP.NewExpenseHandler(expenseSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
