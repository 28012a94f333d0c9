package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/staffhub/workforce-backend-go/internal/config"
	"github.com/staffhub/workforce-backend-go/internal/domain/settings"
	appHTTP "github.com/staffhub/workforce-backend-go/internal/handler/http"
	"github.com/staffhub/workforce-backend-go/internal/pkg/database"
	"github.com/staffhub/workforce-backend-go/internal/pkg/jwt"
	"github.com/staffhub/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffhub/workforce-backend-go/internal/service/attendance"
	leaveService "github.com/staffhub/workforce-backend-go/internal/service/leave"
	notificationService "github.com/staffhub/workforce-backend-go/internal/service/notification"
	payrollService "github.com/staffhub/workforce-backend-go/internal/service/payroll"
	timesheetService "github.com/staffhub/workforce-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	payStubRepo := postgresql.NewPayStubRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	defaults, err := orgDefaults(cfg.Org)
	if err != nil {
		log.Fatal("Invalid org defaults: ", err)
	}
	if err := seedSettings(context.Background(), settingsRepo, defaults); err != nil {
		log.Fatal("Failed to seed organization settings: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emitter := notificationService.NewEmitter(notificationRepo, notificationService.Config{})
	defer emitter.Shutdown()

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, leaveRequestRepo, employeeRepo, settingsRepo, defaults)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo, attendanceRepo, employeeRepo, settingsRepo, emitter, defaults)
	payrollSvc := payrollService.NewPayrollService(payStubRepo, timesheetRepo, employeeRepo, settingsRepo, emitter, defaults)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, attendanceRepo, employeeRepo, emitter)

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:          JWTService,
		AttendanceHandler:   appHTTP.NewAttendanceHandler(attendanceSvc),
		TimesheetHandler:    appHTTP.NewTimesheetHandler(timesheetSvc),
		PayrollHandler:      appHTTP.NewPayrollHandler(payrollSvc),
		LeaveHandler:        appHTTP.NewLeaveHandler(leaveSvc),
		SettingsHandler:     appHTTP.NewSettingsHandler(settingsRepo),
		NotificationHandler: appHTTP.NewNotificationHandler(emitter),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func orgDefaults(org config.OrgDefaults) (settings.OrgSettings, error) {
	multiplier, err := decimal.NewFromString(org.OvertimeMultiplier)
	if err != nil {
		return settings.OrgSettings{}, fmt.Errorf("invalid ORG_OVERTIME_MULTIPLIER: %w", err)
	}

	return settings.OrgSettings{
		ShiftStart:           org.ShiftStart,
		GracePeriodMinutes:   org.GracePeriodMinutes,
		OvertimeThresholdHrs: org.OvertimeThresholdHrs,
		OvertimeMultiplier:   multiplier,
	}, nil
}

// seedSettings writes the configured defaults only when no settings row
// exists yet. An operator-edited row is never overwritten on restart.
func seedSettings(ctx context.Context, repo settings.SettingsRepository, defaults settings.OrgSettings) error {
	_, err := repo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, settings.ErrSettingsNotFound) {
		return err
	}

	_, err = repo.Upsert(ctx, defaults)
	return err
}
