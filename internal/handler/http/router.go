package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/planillapro/planilla-backend-go/internal/handler/http/middleware"
	"github.com/planillapro/planilla-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	payrollHandler PayrollHandler,
	contractHandler ContractHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "planilla-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/headquarters", func(r chi.Router) {
				r.Post("/", masterHandler.CreateHeadquarters)
				r.Get("/", masterHandler.ListHeadquarters)
				r.Get("/{id}", masterHandler.GetHeadquarters)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", masterHandler.CreateEmployee)
				r.Get("/", masterHandler.ListEmployees)
				r.Get("/{id}", masterHandler.GetEmployee)
				r.Get("/{employeeId}/contracts", contractHandler.ListByEmployee)
			})

			r.Route("/contracts", func(r chi.Router) {
				r.Post("/", contractHandler.Hire)
				r.Get("/{id}", contractHandler.GetContract)
				r.Post("/{id}/activate", contractHandler.Activate)
				r.Post("/{id}/terminate", contractHandler.Terminate)
				r.Post("/{id}/suspend", contractHandler.Suspend)
				r.Post("/{id}/reactivate", contractHandler.Reactivate)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Post("/generate", payrollHandler.CreatePayrolls)
				r.Post("/payments/generate", payrollHandler.GenerateBiweeklyPayment)
				r.Get("/calculate", payrollHandler.CalculatePayment)
				r.Get("/summary", payrollHandler.GetPayrollSummary)

				r.Route("/{payrollId}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetPayroll)
					r.Get("/can-edit", payrollHandler.CanEditPayroll)
					r.Post("/close", payrollHandler.ClosePayroll)
					r.Post("/reopen", payrollHandler.ReopenPayroll)
					r.Get("/payslip", payrollHandler.DownloadPayslip)

					r.Route("/payments", func(r chi.Router) {
						r.Get("/", payrollHandler.GetBiweeklyPayments)
						r.Post("/{biweeklyId}/regenerate", payrollHandler.RegenerateBiweeklyPayment)
						r.Delete("/{biweeklyId}", payrollHandler.DeleteBiweeklyPayment)
					})

					r.Route("/additionals", func(r chi.Router) {
						r.Post("/", payrollHandler.AddAdditional)
						r.Put("/{id}", payrollHandler.UpdateAdditional)
						r.Delete("/{id}", payrollHandler.DeleteAdditional)
					})

					r.Route("/discounts", func(r chi.Router) {
						r.Post("/", payrollHandler.AddDiscount)
						r.Put("/{id}", payrollHandler.UpdateDiscount)
						r.Delete("/{id}", payrollHandler.DeleteDiscount)
					})

					r.Route("/advances", func(r chi.Router) {
						r.Post("/", payrollHandler.CreateAdvance)
						r.Get("/max", payrollHandler.GetMaxAdvance)
					})
				})
			})
		})
	})
	return r
}
