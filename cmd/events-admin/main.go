// Command events-admin grants or revokes the admin role for an existing user.
//
//	events-admin -config config/local.yaml -username alice
//	events-admin -config config/local.yaml -username alice -revoke
package main

import (
	"context"
	"eventsApi/internal/config"
	"eventsApi/internal/lib/logger/sl"
	"eventsApi/internal/storage/postgres"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

func main() {
	username := flag.String("username", "", "user to update")
	revoke := flag.Bool("revoke", false, "revoke admin instead of granting it")

	cfg := config.MustLoad()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	name := strings.TrimSpace(*username)
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: events-admin -username <name> [-revoke] [-config <path>]")
		os.Exit(2)
	}

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = storage.SetAdmin(ctx, name, !*revoke); err != nil {
		log.Error("failed to update user", slog.String("username", name), sl.Err(err))
		storage.Close()
		os.Exit(1)
	}

	log.Info("admin role updated", slog.String("username", name), slog.Bool("is_admin", !*revoke))
}
