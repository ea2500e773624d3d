package main

import (
	"CivicQuiz/config"
	"CivicQuiz/services/persistence"
	"CivicQuiz/services/quiz/questions"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// seed imports a question bank file into postgres:
//
//	go run ./cmd/seed -file questions.yaml [-migrate]
func main() {
	file := flag.String("file", "", "question file (.json, .yaml or .yml), or QUESTIONS_FILE env")
	migrate := flag.Bool("migrate", false, "run the schema migration before importing")
	flag.Parse()

	_ = godotenv.Load()

	path := *file
	if path == "" {
		path = os.Getenv("QUESTIONS_FILE")
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: seed -file <questions.yaml> [-migrate] (or set QUESTIONS_FILE)")
		os.Exit(2)
	}

	logCfg, err := config.ReadLogConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logCfg.Dir = ""
	logger, err := config.NewLogger(logCfg, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := seed(context.Background(), logger, path, *migrate); err != nil {
		logger.Error("[SEED] failed", "file", path, "err", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, logger *slog.Logger, path string, migrate bool) error {
	raws, err := questions.LoadFile(path)
	if err != nil {
		return err
	}

	db, err := config.ConnectGORM()
	if err != nil {
		return fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if migrate {
		if err := config.MigrateDatabase(db); err != nil {
			return err
		}
	}

	repo := persistence.NewQuestionRepository(db)
	n, err := repo.Import(ctx, raws)
	if err != nil {
		return err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	logger.Info("[SEED] questions imported", "file", path, "imported", n, "bank_size", total)
	return nil
}
