package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
)

const layout = `{{define "layout"}}<!DOCTYPE html>
<html lang="es"><body style="font-family:Arial,sans-serif;color:#1f2933">
<h2 style="color:#0b4f8a">{{.Brand}}</h2>
{{template "content" .}}
<hr><p style="font-size:12px;color:#7b8794">{{.Brand}} · <a href="{{.PublicURL}}">{{.PublicURL}}</a></p>
</body></html>{{end}}`

var contents = map[string]string{
	"login_code": `{{define "content"}}<p>Hola {{.Data.Name}},</p>
<p>Tu código de acceso es:</p>
<p style="font-size:28px;letter-spacing:6px"><strong>{{.Data.Code}}</strong></p>
<p>El código expira en {{.Data.Minutes}} minutos. Si no solicitaste este acceso, ignora este mensaje.</p>{{end}}`,

	"quote_confirmation": `{{define "content"}}<p>Hola {{.Data.CustomerName}},</p>
<p>Recibimos tu solicitud de cotización <strong>{{.Data.Number}}</strong>. Un asesor se pondrá en contacto contigo pronto.</p>
{{template "items" .}}{{end}}`,

	"quote_notification": `{{define "content"}}<p>Nueva solicitud de cotización <strong>{{.Data.Number}}</strong>.</p>
<ul>
<li>Cliente: {{.Data.CustomerName}} &lt;{{.Data.CustomerEmail}}&gt;</li>
{{with .Data.CustomerCompany}}<li>Empresa: {{.}}</li>{{end}}
{{with .Data.CustomerPhone}}<li>Teléfono: {{.}}</li>{{end}}
</ul>
{{with .Data.Message}}<p>Mensaje: {{.}}</p>{{end}}
{{template "items" .}}{{end}}`,

	"ticket_received": `{{define "content"}}<p>Nuevo mensaje de contacto <strong>{{.Data.Number}}</strong> de {{.Data.Name}} &lt;{{.Data.Email}}&gt;.</p>
{{with .Data.Subject}}<p>Asunto: {{.}}</p>{{end}}
<p>{{.Data.Message}}</p>{{end}}`,

	"ticket_reply": `{{define "content"}}<p>Hola {{.Data.Name}},</p>
<p>{{.Data.Reply}}</p>
<p>Referencia de tu solicitud: <strong>{{.Data.Number}}</strong></p>
<p>{{.Data.Signature}}</p>{{end}}`,
}

const itemsTable = `{{define "items"}}<table cellpadding="6" style="border-collapse:collapse">
<tr><th align="left">Producto</th><th align="left">SKU</th><th align="right">Cantidad</th><th align="right">Precio unitario</th></tr>
{{range .Data.Items}}<tr><td>{{.Name}}</td><td>{{.SKU}}</td><td align="right">{{.Quantity}}</td><td align="right">{{if .UnitPrice}}{{.UnitPrice}}{{else}}Por cotizar{{end}}</td></tr>
{{end}}</table>{{end}}`

// QuoteLine is one product line shown in quote emails.
type QuoteLine struct {
	Name      string
	SKU       string
	Quantity  int
	UnitPrice string
}

// QuoteSummary carries what quote emails display.
type QuoteSummary struct {
	Number          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerCompany string
	Message         string
	Items           []QuoteLine
}

// TicketSummary carries what support emails display.
type TicketSummary struct {
	Number  string
	Name    string
	Email   string
	Subject string
	Message string
}

// Composer renders the Spanish transactional emails.
type Composer struct {
	brand       string
	supportName string
	publicURL   string
	salesInbox  string
	templates   map[string]*template.Template
}

// NewComposer parses the message templates.
func NewComposer(mailCfg config.MailConfig, publicURL string) (*Composer, error) {
	c := &Composer{
		brand:       mailCfg.FromName,
		supportName: mailCfg.SupportName,
		publicURL:   publicURL,
		salesInbox:  mailCfg.SalesInbox,
		templates:   make(map[string]*template.Template, len(contents)),
	}
	for name, body := range contents {
		tmpl, err := template.New(name).Parse(layout + itemsTable + body)
		if err != nil {
			return nil, fmt.Errorf("parse mail template %s: %w", name, err)
		}
		c.templates[name] = tmpl
	}
	return c, nil
}

// SalesInbox returns the address notified of new quotes and tickets.
func (c *Composer) SalesInbox() string {
	return c.salesInbox
}

// LoginCode renders the one-time admin login code email.
func (c *Composer) LoginCode(to, name, code string, ttl time.Duration) (Message, error) {
	minutes := int(ttl.Minutes())
	data := map[string]any{"Name": name, "Code": code, "Minutes": minutes}
	html, err := c.render("login_code", data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Tu código de acceso: %s", code),
		Text:    fmt.Sprintf("Hola %s,\n\nTu código de acceso es %s. Expira en %d minutos.\n", name, code, minutes),
		HTML:    html,
	}, nil
}

// QuoteConfirmation renders the acknowledgement sent to the customer.
func (c *Composer) QuoteConfirmation(q QuoteSummary) (Message, error) {
	html, err := c.render("quote_confirmation", q)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{q.CustomerEmail},
		ReplyTo: c.salesInbox,
		Subject: fmt.Sprintf("Recibimos tu solicitud de cotización %s", q.Number),
		Text:    fmt.Sprintf("Hola %s,\n\nRecibimos tu solicitud de cotización %s.\n\n%s", q.CustomerName, q.Number, quoteLinesText(q.Items)),
		HTML:    html,
	}, nil
}

// QuoteNotification renders the alert sent to the sales inbox.
func (c *Composer) QuoteNotification(q QuoteSummary) (Message, error) {
	html, err := c.render("quote_notification", q)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{c.salesInbox},
		ReplyTo: q.CustomerEmail,
		Subject: fmt.Sprintf("Nueva cotización %s de %s", q.Number, q.CustomerName),
		Text:    fmt.Sprintf("Nueva cotización %s de %s <%s>.\n\n%s", q.Number, q.CustomerName, q.CustomerEmail, quoteLinesText(q.Items)),
		HTML:    html,
	}, nil
}

// TicketReceived renders the alert sent to the support inbox.
func (c *Composer) TicketReceived(t TicketSummary) (Message, error) {
	html, err := c.render("ticket_received", t)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{c.salesInbox},
		ReplyTo: t.Email,
		Subject: fmt.Sprintf("Nuevo contacto %s", t.Number),
		Text:    fmt.Sprintf("Nuevo mensaje %s de %s <%s>:\n\n%s\n", t.Number, t.Name, t.Email, t.Message),
		HTML:    html,
	}, nil
}

// TicketReply renders an admin's answer to a support ticket.
func (c *Composer) TicketReply(t TicketSummary, reply string) (Message, error) {
	data := map[string]any{"Name": t.Name, "Number": t.Number, "Reply": reply, "Signature": c.supportName}
	html, err := c.render("ticket_reply", data)
	if err != nil {
		return Message{}, err
	}
	subject := fmt.Sprintf("Respuesta a tu solicitud %s", t.Number)
	if t.Subject != "" {
		subject = fmt.Sprintf("Re: %s [%s]", t.Subject, t.Number)
	}
	return Message{
		To:      []string{t.Email},
		ReplyTo: c.salesInbox,
		Subject: subject,
		Text:    fmt.Sprintf("Hola %s,\n\n%s\n\nReferencia: %s\n%s\n", t.Name, reply, t.Number, c.supportName),
		HTML:    html,
	}, nil
}

func (c *Composer) render(name string, data any) (string, error) {
	tmpl, ok := c.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown mail template %s", name)
	}
	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", map[string]any{
		"Brand":     c.brand,
		"PublicURL": c.publicURL,
		"Data":      data,
	})
	if err != nil {
		return "", fmt.Errorf("render mail template %s: %w", name, err)
	}
	return buf.String(), nil
}

func quoteLinesText(items []QuoteLine) string {
	var b strings.Builder
	for _, item := range items {
		price := item.UnitPrice
		if price == "" {
			price = "por cotizar"
		}
		fmt.Fprintf(&b, "- %s (%s) x%d: %s\n", item.Name, item.SKU, item.Quantity, price)
	}
	return b.String()
}
