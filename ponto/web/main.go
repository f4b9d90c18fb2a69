package main

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"frigotec.com/frigotec/core"
	"frigotec.com/frigotec/infrastructure/biometrics"
	"frigotec.com/frigotec/infrastructure/communication"
	"frigotec.com/frigotec/infrastructure/devops"
	"frigotec.com/frigotec/infrastructure/filesystem"
	"frigotec.com/frigotec/infrastructure/telemetry"
	"frigotec.com/frigotec/ponto/store"
	"frigotec.com/frigotec/ponto/web/handlers/attendance"
	"frigotec.com/frigotec/ponto/web/handlers/profile"
	"frigotec.com/frigotec/web/middlewares"
)

func main() {
	_ = godotenv.Load()

	logger, err := telemetry.Init(telemetry.ConfigFromEnv())
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	dsn := os.Getenv("DSN")
	dm, err := core.New(dsn, 10)
	if err != nil {
		logger.Fatal("database pool init failed", zap.Error(err))
	}
	defer dm.Close()

	settings, err := devops.LoadPontoSettings(ctx)
	if err != nil {
		logger.Fatal("settings load failed", zap.Error(err))
	}

	base64Secret := os.Getenv("FRIGOTEC_SIGNING_SECRET")
	jwtSecret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		logger.Fatal("signing secret decode failed", zap.Error(err))
	}

	verifier := biometrics.New(ctx, biometrics.Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   settings.BiometricModel,
		Timeout: settings.BiometricTimeout(),
	})

	evidence := filesystem.NewEvidenceStore(settings.EvidenceBucket, settings.EvidenceBaseURL)
	hub := store.NewHub()

	slack := communication.ConnectSlack()

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	protected := r.Group("/api/ponto/v1.0")
	protected.Use(middlewares.RequestID(), middlewares.Authentication(jwtSecret))
	{
		attendance.Register(protected, attendance.Deps{
			Dm:       dm,
			Hub:      hub,
			Verifier: verifier,
			Evidence: evidence,
			Settings: settings,
			Slack:    slack,
			Log:      logger,
		})
		profile.Register(protected, profile.Deps{
			Dm:       dm,
			Evidence: evidence,
			Log:      logger,
		})
	}

	logger.Info("ponto service listening", zap.String("addr", ":8090"))
	r.Run("0.0.0.0:8090")
}
