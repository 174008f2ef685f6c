package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/lianhui-erp/payroll-engine-go/internal/handler/http/middleware"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, payrollHandler PayrollHandler, gradeHandler GradeHandler, salaryHandler SalaryHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
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

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/setting", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSetting)
					r.Put("/", payrollHandler.UpdateSetting)
				})

				r.Route("/withholding/{year}", func(r chi.Router) {
					r.Get("/", payrollHandler.ListWithholding)
					r.Put("/", payrollHandler.ReplaceWithholding)
				})

				r.Route("/periods", func(r chi.Router) {
					r.Post("/", payrollHandler.CreatePeriod)
					r.Get("/", payrollHandler.ListPeriods)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetPeriod)
						r.Post("/calculate", payrollHandler.CalculatePeriod)
						r.Post("/approve", payrollHandler.ApprovePeriod)
						r.Post("/pay", payrollHandler.MarkPeriodPaid)
						r.Get("/slips", payrollHandler.ListSlips)
					})
				})
			})

			r.Route("/grades", func(r chi.Router) {
				r.Post("/", gradeHandler.CreateGradeSet)
				r.Get("/resolve", gradeHandler.ResolveGrade)
				r.Get("/{year}", gradeHandler.ListGrades)

				r.Route("/templates", func(r chi.Router) {
					r.Post("/", gradeHandler.SaveTemplate)
					r.Get("/", gradeHandler.ListTemplates)

					r.Route("/{id}", func(r chi.Router) {
						r.Post("/instantiate", gradeHandler.InstantiateTemplate)
						r.Delete("/", gradeHandler.DeleteTemplate)
					})
				})
			})

			r.Route("/salary-profiles", func(r chi.Router) {
				r.Post("/", salaryHandler.CreateProfile)
				r.Get("/", salaryHandler.ListActiveProfiles)

				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", salaryHandler.GetActiveProfile)
					r.Get("/history", salaryHandler.ListProfileHistory)
				})
			})
		})
	})
	return r
}
