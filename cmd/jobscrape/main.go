package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"jobscrape/internal/config"
	"jobscrape/internal/secrets"
)

const usage = `usage:
  jobscrape run [flags]              log in, search and scrape job cards
  jobscrape replay -dir DIR [flags]  scrape saved result pages offline
  jobscrape password set [-user U]   store the login password (read from stdin) in the keychain
  jobscrape password delete [-user U]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "run":
		err = cmdRun(ctx, os.Args[2:])
	case "replay":
		err = cmdReplay(ctx, os.Args[2:])
	case "password":
		err = cmdPassword(os.Args[2:], os.Stdin)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "jobscrape:", err)
		}
		stop()
		os.Exit(1)
	}
}

func cmdRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var f cliFlags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, warns, err := f.loadConfig(fs)
	if err != nil {
		return err
	}
	return runLive(ctx, cfg, warns)
}

func cmdReplay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	var f cliFlags
	f.register(fs)
	dir := fs.String("dir", "", "directory of page-NNN.html snapshots")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return errors.New("replay: -dir is required")
	}
	cfg, warns, err := f.loadConfig(fs)
	if err != nil {
		return err
	}
	return runReplay(ctx, cfg, warns, *dir)
}

func cmdPassword(args []string, stdin io.Reader) error {
	if len(args) < 1 {
		return errors.New("password: expected set or delete")
	}
	action := args[0]
	fs := flag.NewFlagSet("password "+action, flag.ContinueOnError)
	user := fs.String("user", "", "keychain account (default: credentials.username or LINKEDIN_USERNAME)")
	configPath := fs.String("config", "", "path to config.yml")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if *user == "" {
		*user = defaultUsername(*configPath)
	}

	switch action {
	case "set":
		fmt.Fprintf(os.Stderr, "password for %s: ", *user)
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if err := secrets.SetPassword(*user, strings.TrimRight(line, "\r\n")); err != nil {
			return fmt.Errorf("store password: %w", err)
		}
		fmt.Fprintln(os.Stderr, "saved")
		return nil
	case "delete":
		if err := secrets.DeletePassword(*user); err != nil {
			return fmt.Errorf("delete password: %w", err)
		}
		fmt.Fprintln(os.Stderr, "deleted")
		return nil
	default:
		return fmt.Errorf("password: unknown action %q", action)
	}
}

// defaultUsername picks the keychain account from env or config, if any.
func defaultUsername(configPath string) string {
	_ = config.LoadDotEnv()
	if u := strings.TrimSpace(os.Getenv(secrets.EnvUsername)); u != "" {
		return u
	}
	if configPath == "" {
		return ""
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cfg.Credentials.Username)
}
