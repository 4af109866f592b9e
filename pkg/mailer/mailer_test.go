package mailer

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/logger"
)

func testComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := NewComposer(config.MailConfig{
		From:        "no-reply@example.com",
		FromName:    "Catálogo Industrial",
		SalesInbox:  "ventas@example.com",
		SupportName: "Equipo de Soporte",
	}, "https://catalogo.example.com")
	require.NoError(t, err)
	return c
}

func TestLoginCodeMessage(t *testing.T) {
	msg, err := testComposer(t).LoginCode("ana@example.com", "Ana", "482913", 10*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, []string{"ana@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, "482913")
	assert.Contains(t, msg.Text, "10 minutos")
	assert.Contains(t, msg.HTML, "<strong>482913</strong>")
	assert.Contains(t, msg.HTML, "https://catalogo.example.com")
}

func TestQuoteMessagesListItems(t *testing.T) {
	c := testComposer(t)
	summary := QuoteSummary{
		Number:        "QT-ABC123-XYZ9",
		CustomerName:  "Juan Pérez",
		CustomerEmail: "juan@x.com",
		Items: []QuoteLine{
			{Name: "Rodamiento 6204", SKU: "ROD-6204", Quantity: 3, UnitPrice: "125.50 MXN"},
			{Name: "Producto desconocido", Quantity: 1},
		},
	}

	confirmation, err := c.QuoteConfirmation(summary)
	require.NoError(t, err)
	assert.Equal(t, []string{"juan@x.com"}, confirmation.To)
	assert.Equal(t, "ventas@example.com", confirmation.ReplyTo)
	assert.Contains(t, confirmation.HTML, "Rodamiento 6204")
	assert.Contains(t, confirmation.HTML, "Por cotizar")
	assert.Contains(t, confirmation.Text, "x3: 125.50 MXN")

	notification, err := c.QuoteNotification(summary)
	require.NoError(t, err)
	assert.Equal(t, []string{"ventas@example.com"}, notification.To)
	assert.Equal(t, "juan@x.com", notification.ReplyTo)
	assert.Contains(t, notification.Subject, "Juan Pérez")
}

func TestTemplatesEscapeCustomerInput(t *testing.T) {
	msg, err := testComposer(t).TicketReceived(TicketSummary{
		Number:  "TK-1-ABCD",
		Name:    "<script>alert(1)</script>",
		Email:   "x@example.com",
		Message: "hola",
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestTicketReplySubject(t *testing.T) {
	c := testComposer(t)
	msg, err := c.TicketReply(TicketSummary{Number: "TK-1-ABCD", Name: "Luis", Email: "luis@example.com", Subject: "Garantía"}, "Ya quedó.")
	require.NoError(t, err)
	assert.Equal(t, "Re: Garantía [TK-1-ABCD]", msg.Subject)
	assert.Contains(t, msg.HTML, "Equipo de Soporte")

	msg, err = c.TicketReply(TicketSummary{Number: "TK-1-ABCD", Name: "Luis", Email: "luis@example.com"}, "Ya quedó.")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.Subject, "Respuesta a tu solicitud"))
}

func TestNewFallsBackToLogSender(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})

	sender, err := New(config.SMTPConfig{}, config.MailConfig{}, logg)
	require.NoError(t, err)
	require.IsType(t, &LogSender{}, sender)

	require.NoError(t, sender.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "hola"}))
	assert.Contains(t, buf.String(), `"subject":"hola"`)

	require.Error(t, sender.Send(context.Background(), Message{}))
}

func TestSMTPSenderBuildsMessage(t *testing.T) {
	sender, err := NewSMTPSender(config.SMTPConfig{Host: "localhost", Port: 2525, Timeout: time.Second}, config.MailConfig{From: "no-reply@example.com", FromName: "Catálogo"})
	require.NoError(t, err)

	m, err := sender.build(Message{To: []string{"a@example.com"}, ReplyTo: "b@example.com", Subject: "Hola", Text: "texto", HTML: "<p>html</p>"})
	require.NoError(t, err)
	to := m.GetToString()
	require.Len(t, to, 1)
	assert.Contains(t, to[0], "a@example.com")

	_, err = sender.build(Message{Subject: "sin destinatario"})
	require.Error(t, err)

	_, err = NewSMTPSender(config.SMTPConfig{Host: "localhost", Port: 25}, config.MailConfig{})
	require.Error(t, err)
}
