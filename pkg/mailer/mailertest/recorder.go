// Package mailertest provides an in-memory mailer.Sender for tests.
package mailertest

import (
	"context"
	"sync"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/mailer"
)

// Recorder captures every message it is asked to send. When Err is set,
// Send records the message and returns Err.
type Recorder struct {
	mu   sync.Mutex
	sent []mailer.Message
	Err  error
}

func (r *Recorder) Send(ctx context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.Err
}

// Sent returns a copy of the recorded messages.
func (r *Recorder) Sent() []mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mailer.Message, len(r.sent))
	copy(out, r.sent)
	return out
}
