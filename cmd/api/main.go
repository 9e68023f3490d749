package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workline-hq/hrms-backend-go/internal/config"
	appHTTP "github.com/workline-hq/hrms-backend-go/internal/handler/http"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/cache"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/cron"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/database"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/summarizer"
	"github.com/workline-hq/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workline-hq/hrms-backend-go/internal/service/attendance"
	employeeService "github.com/workline-hq/hrms-backend-go/internal/service/employee"
	masterService "github.com/workline-hq/hrms-backend-go/internal/service/master"
	payrollService "github.com/workline-hq/hrms-backend-go/internal/service/payroll"
	performanceService "github.com/workline-hq/hrms-backend-go/internal/service/performance"
	reportService "github.com/workline-hq/hrms-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "hrms-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	var cacheStore cache.Store
	if cfg.Cache.Enabled {
		cacheStore, err = cache.NewRedisStore(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis:", err)
		}
	} else {
		cacheStore = cache.NewNoopStore()
	}

	policy, err := attendanceService.ParsePolicyWindows(
		cfg.Attendance.NormalCheckInCutoff,
		cfg.Attendance.NormalCheckOutFloor,
	)
	if err != nil {
		log.Fatal("Invalid attendance policy windows:", err)
	}

	calendar, err := attendanceService.ParseWorkCalendar(cfg.Attendance.Workdays)
	if err != nil {
		log.Fatal("Invalid work calendar:", err)
	}

	brackets, err := payrollService.ParseTaxBrackets(cfg.Payroll.TaxBrackets)
	if err != nil {
		log.Fatal("Invalid tax bracket table:", err)
	}
	rates := payrollService.Rates{
		SocialInsurance:  cfg.Payroll.SocialInsuranceRate,
		MedicalInsurance: cfg.Payroll.MedicalInsuranceRate,
		HousingFund:      cfg.Payroll.HousingFundRate,
	}

	gradeBands, err := performanceService.ParseGradeBands(cfg.Performance.GradeBands)
	if err != nil {
		log.Fatal("Invalid grade band table:", err)
	}

	departmentRepo := postgresql.NewDepartmentRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	overtimeTypeRepo := postgresql.NewOvertimeTypeRepository(db)
	overtimeRequestRepo := postgresql.NewOvertimeRequestRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	itemRepo := postgresql.NewItemRepository(db)
	structureRepo := postgresql.NewStructureRepository(db)
	configRepo := postgresql.NewConfigRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	indicatorRepo := postgresql.NewIndicatorRepository(db)
	appraisalRepo := postgresql.NewAppraisalRepository(db)

	summarizerClient := summarizer.NewClient(
		cfg.Summarizer.APIURL,
		cfg.Summarizer.APIKey,
		cfg.Summarizer.Model,
		cfg.Summarizer.Timeout,
	)

	masterSvc := masterService.NewMasterService(departmentRepo, positionRepo, cacheStore, cfg.Cache.ReferenceTTL, logger)
	typeSvc := attendanceService.NewTypeService(leaveTypeRepo, overtimeTypeRepo, cacheStore, cfg.Cache.ReferenceTTL, logger)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, departmentRepo, positionRepo)
	recordSvc := attendanceService.NewRecordService(recordRepo, employeeRepo, policy, calendar)
	requestSvc := attendanceService.NewRequestService(
		leaveRequestRepo,
		overtimeRequestRepo,
		leaveTypeRepo,
		overtimeTypeRepo,
		employeeRepo,
	)
	aggregator := attendanceService.NewAggregator(
		recordRepo,
		leaveRequestRepo,
		overtimeRequestRepo,
		summaryRepo,
		employeeRepo,
		logger,
	)
	summarySvc := attendanceService.NewSummaryService(aggregator, summaryRepo, cacheStore, cfg.Cache.SummaryTTL, logger)
	itemSvc := payrollService.NewItemService(itemRepo)
	structureSvc := payrollService.NewStructureService(structureRepo, itemRepo)
	configSvc := payrollService.NewConfigService(configRepo, itemRepo, employeeRepo, structureRepo, cfg.Payroll.DefaultTaxExemption)
	paymentSvc := payrollService.NewPaymentService(
		paymentRepo,
		configRepo,
		employeeRepo,
		appraisalRepo,
		rates,
		brackets,
		cfg.Payroll.DefaultTaxExemption,
		logger,
	)
	indicatorSvc := performanceService.NewIndicatorService(indicatorRepo)
	appraisalSvc := performanceService.NewAppraisalService(appraisalRepo, indicatorRepo, employeeRepo, gradeBands)
	reportSvc := reportService.NewReportService(
		summaryRepo,
		paymentRepo,
		employeeRepo,
		departmentRepo,
		summarizerClient,
		logger,
	)

	masterHandler := appHTTP.NewMasterHandler(masterSvc, typeSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(recordSvc, requestSvc, summarySvc)
	payrollHandler := appHTTP.NewPayrollHandler(itemSvc, structureSvc, configSvc, paymentSvc)
	performanceHandler := appHTTP.NewPerformanceHandler(indicatorSvc, appraisalSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	scheduler := cron.NewScheduler(logger)
	scheduler.AddJob("summary-recompute", cfg.Attendance.SummaryRecomputeTick, func(ctx context.Context) error {
		now := time.Now().UTC()
		_, err := aggregator.RecomputeAll(ctx, now.Year(), int(now.Month()))
		return err
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		&cfg.App,
		masterHandler,
		employeeHandler,
		attendanceHandler,
		payrollHandler,
		performanceHandler,
		reportHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server starting", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.Any("error", err))
	}
}
