package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/attendly/attendly-backend/internal/config"
	"github.com/attendly/attendly-backend/internal/database"
	"github.com/attendly/attendly-backend/internal/logger"
	"github.com/attendly/attendly-backend/internal/model"
	"github.com/attendly/attendly-backend/internal/repository"
)

// Seeds a demo roster: ten students per section across three departments.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)

	names := []string{
		"Shruti Roy", "Vikram Singh", "Ananya Iyer", "Rahul Sharma", "Priya Nair",
		"Arjun Mehta", "Kavya Reddy", "Rohan Das", "Sneha Pillai", "Aditya Kulkarni",
	}

	departments := map[string][]string{
		"ECE":  {"1", "2"},
		"CSE":  {"1", "2"},
		"MECH": {"1"},
	}

	year := 21
	successCount, total := 0, 0
	for dept, sections := range departments {
		for _, section := range sections {
			for i, name := range names {
				total++
				rollNo := fmt.Sprintf("%d%s%s%03d", year, dept, section, i+1)
				student := &model.Student{
					RollNo:      rollNo,
					Name:        name,
					Department:  dept,
					Section:     section,
					ParentEmail: fmt.Sprintf("%s.parent@example.com", strings.ToLower(strings.ReplaceAll(name, " ", "."))),
					Attendance:  model.AttendanceMap{},
				}

				if err := studentRepo.Create(ctx, student); err != nil {
					if errors.Is(err, repository.ErrDuplicateRollNo) {
						fmt.Printf("Skipping %s (%s): already seeded\n", name, rollNo)
						continue
					}
					fmt.Printf("Error creating student %s (%s): %v\n", name, rollNo, err)
					continue
				}
				successCount++
			}
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, total)
}
