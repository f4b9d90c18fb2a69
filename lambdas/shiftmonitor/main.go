package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"

	"frigotec.com/frigotec/core"
	"frigotec.com/frigotec/infrastructure/communication"
	"frigotec.com/frigotec/infrastructure/devops"
	"frigotec.com/frigotec/lambdas/shiftmonitor/helper"
	"frigotec.com/frigotec/ponto/store"
	"frigotec.com/frigotec/utils"
)

// MonitorEvent is the scheduled invocation payload. Databases limits
// the run to specific tenant schemas; nil means all of them.
type MonitorEvent struct {
	Databases *[]string `json:"databases"`
	DryRun    bool      `json:"dryRun"`
	Env       string    `json:"env"`
}

type MonitorStats struct {
	OpenShifts  int `json:"openShifts"`
	ForceClosed int `json:"forceClosed"`
	Errors      int `json:"errors"`
}

const closeReason = "encerramento automático: turno excedeu a duração máxima"

// MonitorShifts scans every target schema for shifts open longer than
// the configured maximum and force-closes them at entry plus the
// allowed duration. The lookback window is a day past the maximum so
// the opening entry of any closable shift is always inside it.
func MonitorShifts(ctx context.Context, dsn string, databases *[]string, dryRun bool) (map[string]MonitorStats, error) {
	settings, err := devops.LoadPontoSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	maxShift := 16 * time.Hour
	if settings.MaxShiftHours > 0 {
		maxShift = time.Duration(settings.MaxShiftHours) * time.Hour
	}
	lookback := maxShift + 24*time.Hour

	dm, err := core.New(dsn, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	dm.LogLevel = core.LogLevelError
	defer dm.Close()

	var targetDatabases []string
	if databases == nil {
		fmt.Printf("[INFO] No databases provided, fetching all databases...\n")
		targetDatabases, err = dm.GetAllDatabases(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get all databases: %w", err)
		}
	} else {
		targetDatabases = *databases
	}

	slack := communication.ConnectSlack()
	now := time.Now()

	results := make(map[string]MonitorStats)
	for _, dbName := range targetDatabases {
		fmt.Printf("[INFO] Scanning database: %s\n", dbName)
		var stats MonitorStats
		err := dm.Exec(ctx, dbName, func(db *gorm.DB) error {
			events := store.NewEvents(db, store.NewHub())

			recent, err := events.RecentEvents(ctx, lookback)
			if err != nil {
				return err
			}

			stale := helper.FindStaleShifts(recent, maxShift, now)
			stats.OpenShifts = len(stale)

			for _, s := range stale {
				fmt.Printf("[INFO] stale shift: user=%s opened=%s closeAt=%s\n",
					s.UserID, s.OpenedAt.Format(time.RFC3339), s.CloseAt.Format(time.RFC3339))
				if dryRun {
					continue
				}

				if _, err := events.ForceClose(ctx, s.UserID, s.CloseAt, closeReason, "shift-monitor"); err != nil {
					fmt.Printf("[ERROR] failed to force-close shift for %s: %v\n", s.UserID, err)
					stats.Errors++
					continue
				}
				stats.ForceClosed++

				if err := slack.NotifyForcedClose(s.UserID, closeReason, "shift-monitor"); err != nil {
					fmt.Printf("[ERROR] slack notification failed for %s: %v\n", s.UserID, err)
				}
			}
			return nil
		})
		if err != nil {
			fmt.Printf("[ERROR] failed to scan database %s: %v\n", dbName, err)
			continue
		}
		results[dbName] = stats
	}

	fmt.Printf("[INFO] Finished shift monitoring\n")

	if err := sendSummaryEmail(ctx, results); err != nil {
		fmt.Printf("[ERROR] summary email failed: %v\n", err)
	}

	return results, nil
}

// sendSummaryEmail mails the run summary to the ops address when any
// shift was actually closed. Configured via OPS_EMAIL_FROM/OPS_EMAIL_TO;
// unset means no email.
func sendSummaryEmail(ctx context.Context, results map[string]MonitorStats) error {
	from := os.Getenv("OPS_EMAIL_FROM")
	to := os.Getenv("OPS_EMAIL_TO")
	if from == "" || to == "" {
		return nil
	}

	closed := 0
	var body strings.Builder
	for dbName, stats := range results {
		if stats.ForceClosed == 0 && stats.Errors == 0 {
			continue
		}
		closed += stats.ForceClosed
		fmt.Fprintf(&body, "%s: %d turnos abertos, %d encerrados, %d erros\n",
			dbName, stats.OpenShifts, stats.ForceClosed, stats.Errors)
	}
	if body.Len() == 0 {
		return nil
	}

	return communication.SendEmail(ctx, &communication.EmailInfo{
		From:    from,
		To:      strings.Split(to, ","),
		Subject: fmt.Sprintf("Ponto: %d turnos encerrados automaticamente", closed),
		Body:    body.String(),
	})
}

func HandleRequest(ctx context.Context, event MonitorEvent) (map[string]MonitorStats, error) {
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Event: %s\n", string(eventJson))

	env := strings.ToLower(event.Env)
	if env == "" {
		return nil, fmt.Errorf("environment (env) is required")
	}

	fmt.Printf("[INFO] Loading database configuration from SSM parameter store 'databases'\n")
	dbs, err := devops.LoadDBConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load databases from SSM: %w", err)
	}

	entry := utils.Find(dbs, func(db devops.DBEntry) bool { return db.Name == env })
	if entry == nil {
		return nil, fmt.Errorf("environment '%s' not found in parameter store", env)
	}
	dsn := entry.GetDSN("")
	fmt.Printf("[INFO] Using DSN for environment: %s\n", env)

	return MonitorShifts(ctx, dsn, event.Databases, event.DryRun)
}

func main() {
	lambda.Start(HandleRequest)
}
