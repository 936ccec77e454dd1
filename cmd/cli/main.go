package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/fintrack/infra/initializer"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [flags]
Commands:
  create-user -email <email> [-name <name>] [-password <password>]
  wallets     -email <email>
  goals       -email <email>`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err) //nolint: errcheck
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintln(stdout, usage) //nolint: errcheck
		return fmt.Errorf("missing command")
	}
	cmd, rest := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	email := fs.String("email", "", "account email")
	name := fs.String("name", "", "display name (create-user)")
	passwordFlag := fs.String("password", "", "password (create-user, prompts if omitted)")
	envFile := fs.String("env", ".env", "environment file")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if *email == "" {
		fmt.Fprintln(stdout, usage) //nolint: errcheck
		return fmt.Errorf("missing required flag: email")
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	ctx := context.Background()

	switch cmd {
	case "create-user":
		password := *passwordFlag
		if password == "" {
			fmt.Fprint(stdout, "Password: ") //nolint: errcheck
			password, err = readPassword(stdin)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			fmt.Fprintln(stdout) //nolint: errcheck
		}
		return createUser(ctx, a, stdout, *email, password, *name)
	case "wallets":
		return listWallets(ctx, a, stdout, *email)
	case "goals":
		return listGoals(ctx, a, stdout, *email)
	default:
		fmt.Fprintln(stdout, usage) //nolint: errcheck
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func createUser(ctx context.Context, a *app.App, out io.Writer, email, password, name string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	u, _, err := a.AuthService.Register(ctx, email, password, name)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(out, "User %s created with ID %s\n", u.Email, u.ID) //nolint: errcheck
	return nil
}

func listWallets(ctx context.Context, a *app.App, out io.Writer, email string) error {
	u, err := a.Deps.Uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	wallets, err := a.WalletService.List(ctx, u.ID)
	if err != nil {
		return err
	}
	bold := color.New(color.Bold)
	bold.Fprintf(out, "%-36s  %-24s  %-12s  %s\n", "ID", "NAME", "TYPE", "BALANCE") //nolint: errcheck
	for _, w := range wallets {
		fmt.Fprintf(out, "%-36s  %-24s  %-12s  %s %s\n", //nolint: errcheck
			w.ID, w.Name, w.Type, w.Balance.StringFixed(2), w.Currency)
	}
	return nil
}

func listGoals(ctx context.Context, a *app.App, out io.Writer, email string) error {
	u, err := a.Deps.Uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	goals, err := a.GoalService.List(ctx, u.ID)
	if err != nil {
		return err
	}
	bold := color.New(color.Bold)
	done := color.New(color.FgGreen)
	bold.Fprintf(out, "%-36s  %-24s  %14s  %14s  %s\n", "ID", "NAME", "CURRENT", "TARGET", "PROGRESS") //nolint: errcheck
	for _, g := range goals {
		progress := g.Progress().StringFixed(1) + "%"
		if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
			progress = done.Sprint(progress)
		}
		fmt.Fprintf(out, "%-36s  %-24s  %14s  %14s  %s\n", //nolint: errcheck
			g.ID, g.Name, g.CurrentAmount.StringFixed(2), g.TargetAmount.StringFixed(2), progress)
	}
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
