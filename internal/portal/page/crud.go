package page

import (
	"context"
	"fmt"

	"idms/internal/portal/editsession"
	"idms/internal/portal/liststate"
	"idms/internal/portal/resource"
)

// Binding ties a record type T to its form type F.
type Binding[T, F any] interface {
	Key(T) int64
	Blank() F
	FormOf(T) F
	// Build validates the form and returns the record to send.
	Build(F) (T, error)
}

// CRUD is the list-with-inline-edit page used by every simple collection.
type CRUD[T, F any] struct {
	label   string
	client  *resource.Client[T]
	binding Binding[T, F]
	list    *liststate.Store[T, int64]
	form    *editsession.Session[F]
	notify  Notifier
	sync    SyncMode
}

// NewCRUD builds a page labelled label, e.g. "Rent", for toasts and logs.
func NewCRUD[T, F any](label string, client *resource.Client[T], binding Binding[T, F], notify Notifier, sync SyncMode) *CRUD[T, F] {
	return &CRUD[T, F]{
		label:   label,
		client:  client,
		binding: binding,
		list:    liststate.New(binding.Key, liststate.Append),
		form:    editsession.New(binding.Blank),
		notify:  notify,
		sync:    sync,
	}
}

func (p *CRUD[T, F]) Label() string { return p.label }

func (p *CRUD[T, F]) Load(ctx context.Context) error {
	items, err := p.client.List(ctx)
	if err != nil {
		return failure(p.notify, p.label, "load", err)
	}
	p.list.ReplaceAll(items)
	return nil
}

func (p *CRUD[T, F]) Items() []T { return p.list.Items() }

func (p *CRUD[T, F]) Get(id int64) (T, bool) { return p.list.Get(id) }

func (p *CRUD[T, F]) Form() F { return p.form.Form() }

func (p *CRUD[T, F]) Mode() editsession.Mode { return p.form.Mode() }

// EditingID is the id of the record in the form, if one is being edited.
func (p *CRUD[T, F]) EditingID() (int64, bool) { return p.form.EditingID() }

// Begin opens an empty form for a new record.
func (p *CRUD[T, F]) Begin() { p.form.Begin() }

// Input applies a field change to the open form.
func (p *CRUD[T, F]) Input(fn func(*F)) { p.form.Update(fn) }

// Edit copies record id into the form. Editing another record replaces
// the current edit.
func (p *CRUD[T, F]) Edit(id int64) error {
	record, ok := p.list.Get(id)
	if !ok {
		return fmt.Errorf("%s %d is not in the list", p.label, id)
	}
	p.form.Edit(id, p.binding.FormOf(record))
	return nil
}

// Cancel drops the form without a request.
func (p *CRUD[T, F]) Cancel() { p.form.Cancel() }

// Submit adds or updates depending on whether a record is being edited.
func (p *CRUD[T, F]) Submit(ctx context.Context) error {
	if _, editing := p.form.EditingID(); editing {
		return p.Update(ctx)
	}
	return p.Add(ctx)
}

// Add creates the form's record. A form that fails validation sends
// nothing.
func (p *CRUD[T, F]) Add(ctx context.Context) error {
	record, err := p.binding.Build(p.form.Form())
	if err != nil {
		return failure(p.notify, p.label, "add", err)
	}
	tok := p.form.Issue()
	created, err := p.client.Create(ctx, record)
	if err != nil {
		return failure(p.notify, p.label, "add", err)
	}
	settle(p.form, tok, p.label, "add")
	p.notify.Success(p.label + " added successfully")
	return p.catchUp(ctx, created)
}

func (p *CRUD[T, F]) Update(ctx context.Context) error {
	id, editing := p.form.EditingID()
	if !editing {
		return failure(p.notify, p.label, "update", ErrNotEditing)
	}
	record, err := p.binding.Build(p.form.Form())
	if err != nil {
		return failure(p.notify, p.label, "update", err)
	}
	tok := p.form.Issue()
	updated, err := p.client.Update(ctx, id, record)
	if err != nil {
		return failure(p.notify, p.label, "update", err)
	}
	settle(p.form, tok, p.label, "update")
	p.notify.Success(p.label + " updated successfully")
	return p.catchUp(ctx, updated)
}

// Remove deletes id. On failure the list is left as it was.
func (p *CRUD[T, F]) Remove(ctx context.Context, id int64) error {
	if err := p.client.Remove(ctx, id); err != nil {
		return failure(p.notify, p.label, "remove", err)
	}
	p.notify.Success(p.label + " deleted successfully")
	if p.sync == SyncSplice {
		p.list.RemoveByID(id)
		return nil
	}
	return p.Load(ctx)
}

func (p *CRUD[T, F]) catchUp(ctx context.Context, record T) error {
	if p.sync == SyncSplice {
		p.list.UpsertByID(record)
		return nil
	}
	return p.Load(ctx)
}
