package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/asbg75/interclubs/internal/config"
	"github.com/asbg75/interclubs/pkg/db"
	"github.com/asbg75/interclubs/pkg/metrics"
)

// AnnotationNeedsDatabase marks commands that read or write the database
const AnnotationNeedsDatabase = "needsDatabase"

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Metrics  *metrics.Manager
	Logger   *zap.Logger
	Ctx      context.Context
}

func needsDatabase() map[string]string {
	return map[string]string{AnnotationNeedsDatabase: "true"}
}
