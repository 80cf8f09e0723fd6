// Package notifications delivers user notifications over in-app, email, SMS and stream channels.
package notifications

import (
	"context"
	"errors"
	"fmt"
)

// Dispatcher delivers one notification to one user.
type Dispatcher interface {
	Notify(ctx context.Context, userID uint, title, body, kind string) error
}

// DispatcherFunc adapts a plain function to Dispatcher.
type DispatcherFunc func(ctx context.Context, userID uint, title, body, kind string) error

func (f DispatcherFunc) Notify(ctx context.Context, userID uint, title, body, kind string) error {
	return f(ctx, userID, title, body, kind)
}

// Fanout sends to every channel in order and joins their errors.
// A failing channel does not stop the ones after it.
type Fanout []Dispatcher

func (f Fanout) Notify(ctx context.Context, userID uint, title, body, kind string) error {
	var errs []error
	for i, d := range f {
		if err := d.Notify(ctx, userID, title, body, kind); err != nil {
			errs = append(errs, fmt.Errorf("channel %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Noop drops every notification.
var Noop Dispatcher = DispatcherFunc(func(context.Context, uint, string, string, string) error { return nil })
