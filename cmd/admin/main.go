// Command admin provisions admin accounts out of band.
//
//	admin seed         -email a@b.c -password secret [-username admin]
//	admin replace      -email a@b.c -password secret [-username admin]
//	admin set-password -email a@b.c -password secret
//	admin set-role     -email a@b.c -role admin
//	admin set-active   -email a@b.c -active=false
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
)

func main() {
	cfg := config.Load()
	logging.Setup(os.Stderr, cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.MigrateShared(db); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	accounts := services.NewAccountService(db, cfg.BcryptCost)
	if err := run(ctx, accounts, os.Args[1], os.Args[2:]); err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, accounts *services.AccountService, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	email := fs.String("email", os.Getenv("ADMIN_EMAIL"), "account email")
	password := fs.String("password", os.Getenv("ADMIN_PASSWORD"), "account password")
	username := fs.String("username", "admin", "display name")
	role := fs.String("role", models.RoleAdmin, "account role")
	active := fs.Bool("active", true, "whether the account may log in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-email is required")
	}

	account := services.NewAccount{Username: *username, Email: *email, Password: *password, Role: *role}

	switch cmd {
	case "seed":
		user, err := accounts.Create(ctx, account)
		if errors.Is(err, services.ErrEmailTaken) {
			slog.Info("admin already exists", "email", *email)
			return nil
		}
		if err != nil {
			return err
		}
		slog.Info("admin created", "email", user.Email, "id", user.ID)
	case "replace":
		deleted, user, err := accounts.ReplaceAdmins(ctx, account)
		if err != nil {
			return err
		}
		slog.Info("admins replaced", "deleted", deleted, "email", user.Email, "id", user.ID)
	case "set-password":
		if err := accounts.SetPassword(ctx, *email, *password); err != nil {
			return notFound(err, *email)
		}
		slog.Info("password updated", "email", *email)
	case "set-role":
		if err := accounts.SetRole(ctx, *email, *role); err != nil {
			return notFound(err, *email)
		}
		slog.Info("role updated", "email", *email, "role", *role)
	case "set-active":
		if err := accounts.SetActive(ctx, *email, *active); err != nil {
			return notFound(err, *email)
		}
		slog.Info("account status updated", "email", *email, "active", *active)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func notFound(err error, email string) error {
	if errors.Is(err, services.ErrUserNotFound) {
		return fmt.Errorf("no account with email %s", email)
	}
	return err
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <seed|replace|set-password|set-role|set-active> -email EMAIL [flags]")
}
