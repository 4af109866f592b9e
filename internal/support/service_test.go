package support

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/dbtest"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/catalogo-industrial-backend/pkg/errors"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/mailer"
)

type recordingNotifier struct {
	opened  []mailer.TicketSummary
	replies []string
	fail    bool
}

func (n *recordingNotifier) TicketOpened(_ context.Context, t mailer.TicketSummary) {
	n.opened = append(n.opened, t)
}

func (n *recordingNotifier) TicketReply(_ context.Context, _ mailer.TicketSummary, reply string) bool {
	n.replies = append(n.replies, reply)
	return !n.fail
}

type fixedNumbers []string

func (f *fixedNumbers) Next(string) (string, error) {
	n := (*f)[0]
	if len(*f) > 1 {
		*f = (*f)[1:]
	}
	return n, nil
}

func newTestService(t *testing.T, numbers NumberGenerator) (Service, *recordingNotifier) {
	t.Helper()
	tick := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	repository := NewRepository(dbtest.Open(t))
	repository.Base = repository.Base.WithClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	})
	notifier := &recordingNotifier{}
	svc, err := NewService(ServiceParams{Repo: repository, Numbers: numbers, Notifier: notifier})
	require.NoError(t, err)
	return svc, notifier
}

func codeOf(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	return typed.Code()
}

func TestSubmitCreatesTicket(t *testing.T) {
	svc, notifier := newTestService(t, nil)

	res, err := svc.Submit(context.Background(), ContactInput{
		Name:    "Pedro",
		Email:   "pedro@example.com",
		Subject: new(string),
		Message: "Necesito una ficha técnica",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^TK-[A-Z0-9]+-[A-Z0-9]{4}$`, res.TicketNumber)

	ticket, err := svc.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.TicketStatusNew, ticket.Status)
	assert.Equal(t, enums.TicketPriorityNormal, ticket.Priority)
	assert.Nil(t, ticket.Subject)

	require.Len(t, notifier.opened, 1)
	assert.Equal(t, res.TicketNumber, notifier.opened[0].Number)
}

func TestSubmitValidationAndCollision(t *testing.T) {
	numbers := fixedNumbers{"TK-AAA-0001", "TK-AAA-0001", "TK-BBB-0002"}
	svc, notifier := newTestService(t, &numbers)

	_, err := svc.Submit(context.Background(), ContactInput{Name: "Pedro", Email: "pedro@example.com"})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))

	first, err := svc.Submit(context.Background(), ContactInput{Name: "A", Email: "a@example.com", Message: "hola"})
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), ContactInput{Name: "B", Email: "b@example.com", Message: "hola"})
	require.NoError(t, err)
	assert.Equal(t, "TK-AAA-0001", first.TicketNumber)
	assert.Equal(t, "TK-BBB-0002", second.TicketNumber)
	assert.Len(t, notifier.opened, 2)
}

func TestUpdateAndFilters(t *testing.T) {
	svc, _ := newTestService(t, nil)
	res, err := svc.Submit(context.Background(), ContactInput{Name: "Pedro", Email: "pedro@example.com", Message: "hola"})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), ContactInput{Name: "Rosa", Email: "rosa@example.com", Message: "hola"})
	require.NoError(t, err)

	status, priority := "in_progress", "urgent"
	ticket, err := svc.Update(context.Background(), res.ID, UpdateInput{Status: &status, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, enums.TicketStatusInProgress, ticket.Status)
	assert.Equal(t, enums.TicketPriorityUrgent, ticket.Priority)

	bad := "critical"
	_, err = svc.Update(context.Background(), res.ID, UpdateInput{Priority: &bad})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))

	page, err := svc.List(context.Background(), url.Values{"priority": {"urgent"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Pedro", page.Items[0].Name)

	page, err = svc.List(context.Background(), url.Values{"search": {"rosa@"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Rosa", page.Items[0].Name)
}

func TestReplyStoresResponseAndResolves(t *testing.T) {
	svc, notifier := newTestService(t, nil)
	res, err := svc.Submit(context.Background(), ContactInput{Name: "Pedro", Email: "pedro@example.com", Message: "hola"})
	require.NoError(t, err)

	_, err = svc.Reply(context.Background(), res.ID, ReplyInput{Message: "  "})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(t, err))

	reply, err := svc.Reply(context.Background(), res.ID, ReplyInput{Message: "Le enviamos la ficha"})
	require.NoError(t, err)
	assert.True(t, reply.EmailSent)
	assert.Equal(t, enums.TicketStatusResolved, reply.Ticket.Status)
	require.NotNil(t, reply.Ticket.AdminResponse)
	assert.Equal(t, "Le enviamos la ficha", *reply.Ticket.AdminResponse)
	assert.NotNil(t, reply.Ticket.RespondedAt)
	assert.Equal(t, []string{"Le enviamos la ficha"}, notifier.replies)

	notifier.fail = true
	closed := "closed"
	reply, err = svc.Reply(context.Background(), res.ID, ReplyInput{Message: "Cerramos el ticket", Status: &closed})
	require.NoError(t, err)
	assert.False(t, reply.EmailSent)
	assert.Equal(t, enums.TicketStatusClosed, reply.Ticket.Status)

	_, err = svc.Reply(context.Background(), 404, ReplyInput{Message: "x"})
	assert.Equal(t, pkgerrors.CodeNotFound, codeOf(t, err))
}
