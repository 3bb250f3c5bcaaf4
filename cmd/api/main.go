package main

import (
	"fmt"
	"net/http"

	"github.com/planillapro/planilla-backend-go/internal/config"
	appHTTP "github.com/planillapro/planilla-backend-go/internal/handler/http"
	"github.com/planillapro/planilla-backend-go/internal/pkg/clock"
	"github.com/planillapro/planilla-backend-go/internal/pkg/cron"
	"github.com/planillapro/planilla-backend-go/internal/pkg/database"
	"github.com/planillapro/planilla-backend-go/internal/pkg/jwt"
	"github.com/planillapro/planilla-backend-go/internal/repository/postgresql"
	contractService "github.com/planillapro/planilla-backend-go/internal/service/contract"
	"github.com/planillapro/planilla-backend-go/internal/service/master"
	payrollService "github.com/planillapro/planilla-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	headquartersRepo := postgresql.NewHeadquartersRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	clk := clock.System{}

	masterSvc := master.NewMasterService(headquartersRepo, employeeRepo)
	contractSvc := contractService.NewContractService(txManager, contractRepo, employeeRepo, clk)
	payrollSvc := payrollService.NewPayrollService(
		txManager,
		payrollRepo,
		contractRepo,
		employeeRepo,
		clk,
		cfg.Payroll.IncludeSundays,
	)

	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	contractHandler := appHTTP.NewContractHandler(contractSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(payrollSvc, employeeRepo, contractRepo, clk).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		payrollHandler,
		contractHandler,
		masterHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
