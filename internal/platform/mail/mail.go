// Package mail renders and sends the service's transactional emails
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltpl "html/template"
	"sync"
	texttpl "text/template"
	"time"

	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names an email layout
type Template string

// Templates
const (
	AccountCreated     Template = "account_created"
	ResidentRegistered Template = "resident_registered"
)

// Data fills a template
type Data struct {
	Name     string
	Email    string
	Password string
	Village  string
}

// Message is one email to one recipient
type Message struct {
	To       string
	Template Template
	Data     Data
}

// Sender delivers a message synchronously
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Config holds SMTP settings, an empty Host disables delivery
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Workers  int
	Timeout  time.Duration
}

// Enabled reports whether SMTP is configured
func (c Config) Enabled() bool { return c.Host != "" }

type compiled struct {
	html *htmltpl.Template
	text *texttpl.Template
}

var (
	loadOnce sync.Once
	loaded   map[Template]compiled
	loadErr  error
)

func templates() (map[Template]compiled, error) {
	loadOnce.Do(func() {
		loaded = map[Template]compiled{}
		for _, t := range []Template{AccountCreated, ResidentRegistered} {
			file := "templates/" + string(t) + ".html"
			h, err := htmltpl.ParseFS(templateFS, file)
			if err != nil {
				loadErr = err
				return
			}
			x, err := texttpl.ParseFS(templateFS, file)
			if err != nil {
				loadErr = err
				return
			}
			loaded[t] = compiled{html: h, text: x}
		}
	})
	return loaded, loadErr
}

// Render builds the go-mail message for m
func Render(from string, m Message) (*mail.Msg, error) {
	all, err := templates()
	if err != nil {
		return nil, err
	}
	tpl, ok := all[m.Template]
	if !ok {
		return nil, fmt.Errorf("mail: unknown template %q", m.Template)
	}

	var subject bytes.Buffer
	if err := tpl.text.ExecuteTemplate(&subject, "subject", m.Data); err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("mail: from: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("mail: to: %w", err)
	}
	msg.Subject(subject.String())
	if err := msg.SetBodyHTMLTemplate(tpl.html.Lookup("html"), m.Data); err != nil {
		return nil, err
	}
	if err := msg.AddAlternativeTextTemplate(tpl.text.Lookup("text"), m.Data); err != nil {
		return nil, err
	}
	return msg, nil
}

// SMTP sends through a go-mail client
type SMTP struct {
	client *mail.Client
	from   string
}

// NewSMTP builds the SMTP sender, using STARTTLS when offered
func NewSMTP(cfg Config) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	c, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return &SMTP{client: c, from: cfg.From}, nil
}

// Send implements Sender
func (s *SMTP) Send(ctx context.Context, m Message) error {
	msg, err := Render(s.from, m)
	if err != nil {
		return err
	}
	return s.client.DialAndSendWithContext(ctx, msg)
}

// Memory records messages instead of sending them
type Memory struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

// Send implements Sender
func (m *Memory) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of the recorded messages
func (m *Memory) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}
