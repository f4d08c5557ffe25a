// Package page holds the portal's page controllers. A page owns one list,
// one form and the client calls that move data between them. Rendering is
// left to the caller.
package page

import (
	"errors"
	"log/slog"

	"idms/internal/portal/editsession"
	"idms/internal/portal/form"
	"idms/internal/portal/resource"
)

// Notifier shows transient success and error messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// SlogNotifier writes toasts to a logger.
type SlogNotifier struct {
	Logger *slog.Logger
}

func (n SlogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}

func (n SlogNotifier) Success(msg string) { n.logger().Info(msg, "toast", "success") }
func (n SlogNotifier) Error(msg string)   { n.logger().Error(msg, "toast", "error") }

// SyncMode decides how a page catches up after a successful mutation.
type SyncMode int

const (
	// SyncRefetch reloads the whole list.
	SyncRefetch SyncMode = iota
	// SyncSplice patches the one affected entry.
	SyncSplice
)

func (m SyncMode) String() string {
	if m == SyncSplice {
		return "splice"
	}
	return "refetch"
}

var (
	// ErrNotEditing is returned by Update when no record is being edited.
	ErrNotEditing = errors.New("no record is being edited")
	// ErrNoEmployee is returned by employee pages when the session has no
	// employee id.
	ErrNoEmployee = errors.New("session has no employee id")
)

// toastMessage is the text shown for err.
func toastMessage(err error) string {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, resource.ErrFetch) {
		return resource.Message(err)
	}
	return err.Error()
}

// failure logs err for page/op, raises an error toast and returns err.
func failure(n Notifier, pageName, op string, err error) error {
	slog.Error("page operation failed", "page", pageName, "op", op, "err", err)
	n.Error(toastMessage(err))
	return err
}

// settle resets the form after a successful mutation issued under tok.
// When the form moved on while the request was in flight it is left as the
// user has it; the list still catches up with the server.
func settle[F any](s *editsession.Session[F], tok editsession.Token, pageName, op string) {
	if s.Current(tok) {
		s.Reset()
		return
	}
	slog.Warn("form moved on during request, keeping it", "page", pageName, "op", op)
}
