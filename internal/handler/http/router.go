package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/workline-hq/hrms-backend-go/internal/config"
)

func NewRouter(
	cfg *config.AppConfig,
	masterHandler MasterHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	performanceHandler PerformanceHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", masterHandler.ListDepartments)
			r.Post("/", masterHandler.CreateDepartment)
			r.Get("/{id}", masterHandler.GetDepartment)
			r.Put("/{id}", masterHandler.UpdateDepartment)
			r.Delete("/{id}", masterHandler.DeleteDepartment)
		})

		r.Route("/positions", func(r chi.Router) {
			r.Get("/", masterHandler.ListPositions)
			r.Post("/", masterHandler.CreatePosition)
			r.Get("/{id}", masterHandler.GetPosition)
			r.Put("/{id}", masterHandler.UpdatePosition)
			r.Delete("/{id}", masterHandler.DeletePosition)
		})

		r.Route("/leave-types", func(r chi.Router) {
			r.Get("/", masterHandler.ListLeaveTypes)
			r.Post("/", masterHandler.CreateLeaveType)
			r.Put("/{id}", masterHandler.UpdateLeaveType)
			r.Delete("/{id}", masterHandler.DeleteLeaveType)
		})

		r.Route("/overtime-types", func(r chi.Router) {
			r.Get("/", masterHandler.ListOvertimeTypes)
			r.Post("/", masterHandler.CreateOvertimeType)
			r.Put("/{id}", masterHandler.UpdateOvertimeType)
			r.Delete("/{id}", masterHandler.DeleteOvertimeType)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Get("/code/{code}", employeeHandler.GetByCode)
			r.Get("/{id}", employeeHandler.Get)
			r.Put("/{id}", employeeHandler.Update)
			r.Delete("/{id}", employeeHandler.Delete)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Route("/records", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListRecords)
				r.Post("/", attendanceHandler.UpsertRecord)
				r.Get("/{id}", attendanceHandler.GetRecord)
				r.Delete("/{id}", attendanceHandler.DeleteRecord)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListLeaveRequests)
				r.Post("/", attendanceHandler.CreateLeaveRequest)
				r.Post("/{id}/approve", attendanceHandler.ApproveLeaveRequest)
				r.Post("/{id}/reject", attendanceHandler.RejectLeaveRequest)
				r.Post("/{id}/cancel", attendanceHandler.CancelLeaveRequest)
			})

			r.Route("/overtime-requests", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListOvertimeRequests)
				r.Post("/", attendanceHandler.CreateOvertimeRequest)
				r.Post("/{id}/approve", attendanceHandler.ApproveOvertimeRequest)
				r.Post("/{id}/reject", attendanceHandler.RejectOvertimeRequest)
				r.Post("/{id}/cancel", attendanceHandler.CancelOvertimeRequest)
			})

			r.Route("/summaries", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListSummaries)
				r.Post("/recompute", attendanceHandler.RecomputeSummaries)
				r.Get("/{employeeID}", attendanceHandler.GetSummary)
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Route("/item-types", func(r chi.Router) {
				r.Get("/", payrollHandler.ListItemTypes)
				r.Post("/", payrollHandler.CreateItemType)
			})

			r.Route("/items", func(r chi.Router) {
				r.Get("/", payrollHandler.ListItems)
				r.Post("/", payrollHandler.CreateItem)
				r.Put("/{id}", payrollHandler.UpdateItem)
				r.Delete("/{id}", payrollHandler.DeleteItem)
			})

			r.Route("/structures", func(r chi.Router) {
				r.Get("/", payrollHandler.ListStructures)
				r.Post("/", payrollHandler.CreateStructure)
				r.Get("/{id}", payrollHandler.GetStructure)
				r.Delete("/{id}", payrollHandler.DeleteStructure)
			})

			r.Route("/configs", func(r chi.Router) {
				r.Get("/{employeeID}", payrollHandler.GetConfigByEmployee)
				r.Put("/{employeeID}", payrollHandler.UpsertConfig)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", payrollHandler.ListPayments)
				r.Post("/generate", payrollHandler.GeneratePayments)
				r.Get("/{id}", payrollHandler.GetPayment)
				r.Post("/{id}/confirm", payrollHandler.ConfirmPayment)
				r.Post("/{id}/pay", payrollHandler.MarkPaid)
				r.Post("/{id}/cancel", payrollHandler.CancelPayment)
			})
		})

		r.Route("/performance", func(r chi.Router) {
			r.Route("/indicators", func(r chi.Router) {
				r.Get("/", performanceHandler.ListIndicators)
				r.Post("/", performanceHandler.CreateIndicator)
			})

			r.Route("/appraisals", func(r chi.Router) {
				r.Get("/", performanceHandler.ListAppraisals)
				r.Post("/", performanceHandler.CreateAppraisal)
				r.Get("/{id}", performanceHandler.GetAppraisal)
				r.Post("/{id}/self-assessment", performanceHandler.SubmitSelfAssessment)
				r.Post("/{id}/assessment", performanceHandler.SubmitAssessment)
				r.Post("/{id}/review", performanceHandler.ReviewAppraisal)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/monthly", reportHandler.MonthlyReport)
		})
	})

	return r
}
