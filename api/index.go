package handler

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/arnavshah/campfinder-api/pkg/config"
	"github.com/arnavshah/campfinder-api/pkg/database"
	"github.com/arnavshah/campfinder-api/pkg/handlers"
	"github.com/arnavshah/campfinder-api/pkg/logging"
	"github.com/arnavshah/campfinder-api/pkg/savedset"
	"github.com/gin-gonic/gin"
)

var r http.Handler

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv(".env", "../.env")

	logger := logging.New(os.Stdout, os.Getenv("LOG_LEVEL"), "json")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", slog.Any("error", err))
		r = unavailable("Server configuration error")
		return
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		logger.Error("open database", slog.Any("error", err))
		r = unavailable("Unable to reach the camp catalog")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r = handlers.NewRouter(&handlers.Handler{
		Catalog: database.NewStore(db),
		Tokens:  savedset.NewCodec(cfg.SavedSetSecret, cfg.SavedSetTTL),
		Log:     logger,
	})
}

// unavailable answers every request with a 500 when startup failed
func unavailable(msg string) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	})
	return e
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
