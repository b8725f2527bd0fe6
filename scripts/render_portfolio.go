package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/internal/domain/resume"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// Prints the portfolio projection of a JSON Resume file. The path comes from
// the first argument, then RESUME_PATH; with neither, the built-in resume is
// used.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	path := os.Getenv("RESUME_PATH")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	var repo resume.Repository
	if path != "" {
		repo = persistence.NewFileResumeRepo(afero.NewOsFs(), path, logger.NewNopLogger())
	} else {
		repo = persistence.NewEmbeddedResumeRepo()
	}

	doc, err := repo.Load(context.Background())
	if err != nil {
		log.Fatalf("cannot load resume: %v", err)
	}

	out, err := json.MarshalIndent(portfolio.Transform(doc), "", "  ")
	if err != nil {
		log.Fatalf("cannot encode portfolio: %v", err)
	}
	fmt.Println(string(out))
}
