package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"frigotec.com/frigotec/console"
)

// pontoadmin lists and closes open shifts directly against a tenant
// database. It is the operator's fallback when the scheduled monitor
// has not run yet.
func main() {
	env := flag.String("env", "production", "environment name in the databases parameter")
	schema := flag.String("schema", "", "tenant schema, e.g. matriz")
	userID := flag.String("close", "", "uid whose open shift should be force-closed")
	reason := flag.String("reason", "encerramento manual pelo operador", "audit reason for the close")
	operator := flag.String("operator", "console", "uid of the acting operator")
	flag.Parse()

	if *schema == "" {
		log.Fatal("-schema is required")
	}

	ctx := context.Background()
	db, err := console.Connect(ctx, *env, *schema)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}

	if *userID != "" {
		event, err := console.CloseShift(ctx, db, *userID, *reason, *operator)
		if err != nil {
			log.Fatalf("failed to close shift for %s: %v", *userID, err)
		}
		fmt.Printf("closed shift for %s at %s\n", *userID, event.Timestamp.Format(time.RFC3339))
		return
	}

	shifts, err := console.ListOpenShifts(ctx, db)
	if err != nil {
		log.Fatalf("failed to list open shifts: %v", err)
	}

	if len(shifts) == 0 {
		fmt.Println("no open shifts")
		return
	}
	for _, s := range shifts {
		fmt.Printf("%-20s %-20s opened %s\n", s.UserID, s.Phase, s.OpenedAt.Format(time.RFC3339))
	}
}
