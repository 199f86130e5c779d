package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/recurring"
	"github.com/centavo-app/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dbPath, ok := os.LookupEnv("DB_PATH")
	if !ok {
		dbPath = filepath.Join("data", "gorm.db")
	}

	err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database. Connect also migrates all models so that
	// the schema is correct
	err = models.Connect(dbPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := recurring.RegisterMetrics(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Router()
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Materialize recurring transactions that fell due while the
	// backend was not running, then keep doing so on an interval
	if _, ok := os.LookupEnv("CATCHUP_DISABLED"); !ok {
		interval := 24 * time.Hour
		if raw, ok := os.LookupEnv("CATCHUP_INTERVAL"); ok {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				log.Fatal().Str("CATCHUP_INTERVAL", raw).Msg(err.Error())
			}
			interval = parsed
		}

		go runCatchupLoop(interval)
	}

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

func runCatchupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		summary, err := recurring.RunCatchup(models.DB, time.Now().In(time.UTC), recurring.Options{})
		if err != nil {
			log.Error().Err(err).Msg("catch-up run failed")
		} else {
			log.Info().
				Int("processed", summary.ProcessedRecurring).
				Int("generated", summary.GeneratedTransactions).
				Int("batches", summary.BatchesRun).
				Msg("catch-up run complete")
		}

		<-ticker.C
	}
}
