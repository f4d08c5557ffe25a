// Package portalcli is the command-line front end of the portal pages.
package portalcli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"idms/internal/platform/config"
	"idms/internal/portal"
	"idms/internal/portal/page"
	"idms/internal/portal/resource"
	"idms/internal/portal/session"
)

const usage = `usage: idms-portal [-config portal.yaml] <command> [flags]

commands:
  login             -email -password
  employee-login    -id -password
  logout
  whoami
  list              -resource
  add               -resource -date -amount -description [-recipient]
  update            -resource -id [-date] [-amount] [-description] [-recipient]
  delete            -resource -id
  export            -resource -out
  dashboard
  leave             list the signed-in employee's leave and holidays
  leave-request     -type -start -end -reason
  board             HR view of pending leave
  approve           -id [-comments]
  reject            -id -comments
  attendance        [-period week|month|year]
  sign-in
  sign-out
  memos
  memo-send         -title -content [-employees] [-departments] [-all] [-priority] [-date]
  holidays
  assets            [-mine]
  performance       the signed-in employee's reviews
  documents
  document-upload   -type -file
  document-download -type -out
`

// Env bundles what a command needs.
type Env struct {
	Portal *portal.Portal
	Out    io.Writer
}

type command func(ctx context.Context, env *Env, args []string) error

var commands = map[string]command{
	"login":             cmdLogin,
	"employee-login":    cmdEmployeeLogin,
	"logout":            cmdLogout,
	"whoami":            cmdWhoami,
	"list":              cmdList,
	"add":               cmdAdd,
	"update":            cmdUpdate,
	"delete":            cmdDelete,
	"export":            cmdExport,
	"dashboard":         cmdDashboard,
	"leave":             cmdLeave,
	"leave-request":     cmdLeaveRequest,
	"board":             cmdBoard,
	"approve":           cmdApprove,
	"reject":            cmdReject,
	"attendance":        cmdAttendance,
	"sign-in":           cmdSignIn,
	"sign-out":          cmdSignOut,
	"memos":             cmdMemos,
	"memo-send":         cmdMemoSend,
	"holidays":          cmdHolidays,
	"assets":            cmdAssets,
	"performance":       cmdPerformance,
	"documents":         cmdDocuments,
	"document-upload":   cmdDocumentUpload,
	"document-download": cmdDocumentDownload,
}

// ErrUsage matches every command-line error.
var ErrUsage = errors.New("invalid usage")

// Run parses args, builds the portal from configuration and runs one
// command.
func Run(args []string, stdout, stderr io.Writer) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	fs := flag.NewFlagSet("idms-portal", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "portal.yaml", "portal config file")
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ErrUsage
	}
	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		fs.Usage()
		return ErrUsage
	}

	cfg, err := config.LoadPortal(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sess, err := session.Open(cfg.SessionFile)
	if err != nil {
		return err
	}
	clientCfg := resource.Config{BaseURL: cfg.BaseURL, HTTPClient: &http.Client{Timeout: cfg.Timeout}}
	env := &Env{
		Portal: portal.New(clientCfg, sess, page.SlogNotifier{Logger: slog.New(slog.NewTextHandler(stderr, nil))}),
		Out:    stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cmd(ctx, env, rest)
}

// Exec runs one command against an already built portal.
func Exec(ctx context.Context, env *Env, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, name)
	}
	return cmd(ctx, env, args)
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	for _, name := range required {
		if v := strings.TrimSpace(fs.Lookup(name).Value.String()); v == "" || v == "0" {
			return fmt.Errorf("%w: %s needs -%s", ErrUsage, fs.Name(), name)
		}
	}
	return nil
}

func requireLogin(env *Env) error {
	if !env.Portal.Session.Current().LoggedIn() {
		return errors.New("not logged in; run idms-portal login first")
	}
	return nil
}
