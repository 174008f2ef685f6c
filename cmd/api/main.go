package main

import (
	"fmt"
	"net/http"

	"github.com/lianhui-erp/payroll-engine-go/internal/config"
	appHTTP "github.com/lianhui-erp/payroll-engine-go/internal/handler/http"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/database"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/jwt"
	"github.com/lianhui-erp/payroll-engine-go/internal/repository/postgresql"
	gradeService "github.com/lianhui-erp/payroll-engine-go/internal/service/grade"
	payrollService "github.com/lianhui-erp/payroll-engine-go/internal/service/payroll"
	salaryService "github.com/lianhui-erp/payroll-engine-go/internal/service/salary"
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

	gradeRepo := postgresql.NewGradeRepository(db)
	templateRepo := postgresql.NewTemplateRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	resolverSvc := gradeService.NewResolverService(gradeRepo)
	templateSvc := gradeService.NewTemplateService(gradeRepo, templateRepo)
	profileSvc := salaryService.NewProfileService(db, profileRepo, payrollRepo)
	settingSvc := payrollService.NewSettingService(payrollRepo)
	calculator := payrollService.NewCalculator(cfg.Payroll.StandardMonthlyHours)
	aggregator := payrollService.NewAggregator(nil)
	settlementSvc := payrollService.NewSettlementService(
		db,
		payrollRepo,
		profileRepo,
		attendanceRepo,
		resolverSvc,
		calculator,
		aggregator,
	)

	payrollHandler := appHTTP.NewPayrollHandler(settingSvc, settlementSvc)
	gradeHandler := appHTTP.NewGradeHandler(resolverSvc, templateSvc)
	salaryHandler := appHTTP.NewSalaryHandler(profileSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, gradeHandler, salaryHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
