package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"frigotec.com/frigotec/security"
)

func main() {
	uid := flag.String("uid", "", "identity uid")
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "email address")
	expires := flag.Int64("expires", 3600, "token lifetime in seconds")
	flag.Parse()

	if *uid == "" {
		log.Fatal("-uid is required")
	}

	secret := os.Getenv("FRIGOTEC_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("FRIGOTEC_SIGNING_SECRET is not set")
	}

	token, err := security.CreateIdentityToken(&security.FrigotecIdentity{
		UID:      *uid,
		Name:     *name,
		Email:    *email,
		Provider: "local",
	}, secret, *expires)
	if err != nil {
		log.Fatalf("failed to create identity token: %v", err)
	}

	fmt.Println(token)
}
