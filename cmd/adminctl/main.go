package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"brightpath/site/internal/config"
	"brightpath/site/internal/database"
	"brightpath/site/internal/log"
	"brightpath/site/internal/provision"
	"brightpath/site/internal/repository"
)

const usage = `adminctl <command> [flags]

Commands:
  provision        create the admin identity (refuses if the email exists)
  repair-provider  force an account's provider id to the password provider
  reset-password   replace an account's password hash

Flags default from ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	flags := flag.NewFlagSet(command, flag.ExitOnError)
	email := flags.String("email", os.Getenv("ADMIN_EMAIL"), "account email")
	password := flags.String("password", os.Getenv("ADMIN_PASSWORD"), "account password")
	name := flags.String("name", os.Getenv("ADMIN_NAME"), "display name")
	if err := flags.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := log.New(cfg.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := provision.NewService(
		repository.NewUserRepository(pool),
		repository.NewAccountRepository(pool),
		logger,
	)

	switch command {
	case "provision":
		runProvision(ctx, svc, cfg, *email, *password, *name)
	case "repair-provider":
		runRepairProvider(ctx, svc, *email)
	case "reset-password":
		runResetPassword(ctx, svc, *email, *password)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runProvision(ctx context.Context, svc *provision.Service, cfg *config.AppConfig, email, password, name string) {
	if email == "" {
		email = cfg.AdminSeed.Email
	}
	if password == "" {
		password = cfg.AdminSeed.Password
	}
	if name == "" {
		name = cfg.AdminSeed.DisplayName
	}

	user, err := svc.ProvisionAdmin(ctx, provision.AdminInput{
		Email:       email,
		Password:    password,
		DisplayName: name,
	})
	if err != nil {
		if errors.Is(err, provision.ErrAlreadyExists) {
			fmt.Printf("already exists: %s\n", email)
			return
		}
		fmt.Fprintf(os.Stderr, "provision failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("admin created: %s (%s)\n", user.Email, user.ID)
}

func runRepairProvider(ctx context.Context, svc *provision.Service, email string) {
	affected, err := svc.RepairProvider(ctx, email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "repair failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("rows repaired: %d\n", affected)
}

func runResetPassword(ctx context.Context, svc *provision.Service, email, password string) {
	if err := svc.ResetPassword(ctx, email, password); err != nil {
		fmt.Fprintf(os.Stderr, "reset failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("password reset: %s\n", email)
}
