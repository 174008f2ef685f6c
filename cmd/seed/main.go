// Command seed loads statutory grade tables into the database from a
// JSON file. Run it once per year when the government publishes the
// new bracket schedules:
//
//	go run ./cmd/seed -file grades-2026.json
//
// The file holds one grade set per scheme:
//
//	[
//	  {"year": 2026, "scheme": "labor", "brackets": [
//	    {"grade_number": 1, "min_salary": "0", "max_salary": "27600", "insured_amount": "27600"},
//	    {"grade_number": 2, "min_salary": "27601", "max_salary": null, "insured_amount": "28800"}
//	  ]}
//	]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lianhui-erp/payroll-engine-go/internal/config"
	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/database"
	"github.com/lianhui-erp/payroll-engine-go/internal/repository/postgresql"
	gradeService "github.com/lianhui-erp/payroll-engine-go/internal/service/grade"
)

func main() {
	var file string
	flag.StringVar(&file, "file", "", "path to the grade set JSON file")
	flag.Parse()

	if file == "" {
		log.Fatal("missing required -file flag")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		log.Fatal("Error reading grade set file: ", err)
	}

	var sets []grade.CreateGradeSetRequest
	if err := json.Unmarshal(data, &sets); err != nil {
		log.Fatal("Error parsing grade set file: ", err)
	}
	if len(sets) == 0 {
		log.Fatal("grade set file contains no grade sets")
	}

	resolverSvc := gradeService.NewResolverService(postgresql.NewGradeRepository(db))

	ctx := context.Background()
	total := 0
	for _, set := range sets {
		n, err := resolverSvc.CreateGradeSet(ctx, set)
		if err != nil {
			log.Fatalf("Error seeding %s grades for %d: %v", set.Scheme, set.Year, err)
		}
		fmt.Printf("seeded %d %s grades for %d\n", n, set.Scheme, set.Year)
		total += n
	}
	fmt.Printf("done, %d grades inserted\n", total)
}
