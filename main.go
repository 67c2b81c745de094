package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"promptbench/internal/config"
	"promptbench/internal/server"
	"promptbench/internal/utils"
)

const usage = `usage: promptbench [command]

commands:
  serve                 start the HTTP server (default)
  secret init [-force]  store a new encryption secret in the OS keyring
  token [-ttl 24h] <userID>
                        mint a development JWT signed with AUTH_JWT_SECRET
`

func main() {
	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve()
	case "secret":
		err = secret(args)
	case "token":
		err = token(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		elog.DefaultLogger.Error("command failed", elog.String("command", cmd), elog.FieldErr(err))
		os.Exit(1)
	}
}

// secretSource opens the OS keyring lazily. A keyring that cannot be opened
// only matters when the environment does not carry the secret.
type secretSource struct{}

func (secretSource) EncryptionSecret() (string, error) {
	store, err := config.OpenSecretStore()
	if err != nil {
		return "", err
	}
	return store.EncryptionSecret()
}

func serve() error {
	cfg, err := config.Load(secretSource{})
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewApp(cfg).run(ctx)
}

func secret(args []string) error {
	if len(args) == 0 || args[0] != "init" {
		return fmt.Errorf("unknown secret subcommand; want `secret init`")
	}
	fs := flag.NewFlagSet("secret init", flag.ContinueOnError)
	force := fs.Bool("force", false, "replace an existing secret (stored keys become unreadable)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	store, err := config.OpenSecretStore()
	if err != nil {
		return err
	}
	created, err := store.InitEncryptionSecret(*force)
	if err != nil {
		return err
	}
	if created {
		fmt.Println("encryption secret stored in the OS keyring")
	} else {
		fmt.Println("encryption secret already present; use -force to replace it")
	}
	return nil
}

func token(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("token requires exactly one user id")
	}

	if err := utils.LoadEnv(); err != nil {
		return err
	}
	key := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if key == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	tok, err := server.NewJWTTokenGen(key).GenerateToken(fs.Arg(0), *ttl)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}
