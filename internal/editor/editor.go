// Package editor implements the search, populate, validate and submit cycle
// shared by the account, card and user update screens.
package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/contextutil"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/schema"
	"github.com/patilpriyadarshini/migration-repo-sub001/logging"
)

type MessageKind string

const (
	KindNone    MessageKind = ""
	KindSuccess MessageKind = "success"
	KindError   MessageKind = "error"
)

const (
	MSG_BUSY    = "A previous submission is still in progress"
	MSG_GENERIC = "Something went wrong, please try again"
)

// State is what an editor screen renders after a step.
type State[T any] struct {
	ID          string            `json:"id,omitempty"`
	Values      map[string]any    `json:"values"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Message     string            `json:"message,omitempty"`
	Kind        MessageKind       `json:"kind,omitempty"`
	Entity      *T                `json:"entity,omitempty"`
	Err         error             `json:"-"`
}

type Editor[T any, R any] struct {
	Name string

	// SearchSchema validates the id before fetching; IDField names the id in
	// the search form.
	SearchSchema schema.Schema
	IDField      string

	Fetch  func(ctx context.Context, id string) (T, error)
	Form   func(entity T) map[string]any
	Schema schema.Schema
	Submit func(ctx context.Context, id string, req R) (T, error)

	SuccessMessage string

	inflight sync.Map
}

// Load validates the id, fetches the entity and seeds the form from it.
func (e *Editor[T, R]) Load(ctx context.Context, id string) State[T] {
	state := State[T]{ID: id, Values: map[string]any{e.IDField: id}}

	if _, errs := e.SearchSchema.Validate(map[string]any{e.IDField: id}); errs != nil {
		state.FieldErrors = errs
		return state
	}

	entity, err := e.Fetch(ctx, id)
	if err != nil {
		return e.fail(ctx, state, err)
	}
	state.Values = e.Form(entity)
	state.Entity = &entity
	return state
}

// Save validates input and submits it. Invalid input is never sent. Only one
// submission per user and id may be outstanding at a time.
func (e *Editor[T, R]) Save(ctx context.Context, id string, input map[string]any) State[T] {
	state := State[T]{ID: id, Values: input}

	if _, errs := e.SearchSchema.Validate(map[string]any{e.IDField: id}); errs != nil {
		state.FieldErrors = errs
		return state
	}

	var req R
	if err := e.Schema.Decode(input, &req); err != nil {
		var errs schema.Errors
		if errors.As(err, &errs) {
			state.FieldErrors = errs
			return state
		}
		return e.fail(ctx, state, err)
	}

	key := e.lockKey(ctx, id)
	if _, busy := e.inflight.LoadOrStore(key, struct{}{}); busy {
		return e.fail(ctx, state, appErrors.ErrorResponse{Code: appErrors.ErrBusy, Message: MSG_BUSY})
	}
	defer e.inflight.Delete(key)

	entity, err := e.Submit(ctx, id, req)
	if err != nil {
		return e.fail(ctx, state, err)
	}

	state.Values = e.Form(entity)
	state.Entity = &entity
	state.Message = e.SuccessMessage
	state.Kind = KindSuccess
	return state
}

func (e *Editor[T, R]) lockKey(ctx context.Context, id string) string {
	userID := ""
	if session := contextutil.SessionFromContext(ctx); session != nil {
		userID = session.UserID
	}
	return userID + "|" + id
}

// fail keeps the submitted values so the screen returns to its pre-submit
// state.
func (e *Editor[T, R]) fail(ctx context.Context, state State[T], err error) State[T] {
	state.Err = err
	state.Kind = KindError
	state.Message = ScreenMessage(err)
	logging.Logger.WithFields(logrus.Fields{
		"trace_id": contextutil.TraceIDFromContext(ctx),
		"editor":   e.Name,
		"id":       state.ID,
	}).Warnf("%s failed: %v", e.Name, err)
	return state
}

// ScreenMessage turns an error into the text a screen shows: server text for
// not-found and rejections, a generic message for anything unexpected.
func ScreenMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErrors.CodeOf(err) == appErrors.ErrInternal {
		return MSG_GENERIC
	}
	if msg := appErrors.MessageOf(err); msg != "" {
		return msg
	}
	return MSG_GENERIC
}
