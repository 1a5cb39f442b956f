package notify

import (
	"bytes"
	"html/template"
	"sort"

	"github.com/cybaemtech/site-core/internal/pkg/mail"
	"go.uber.org/zap"
)

// Event names an admin-notification trigger.
type Event string

const (
	EventBlogCreated         Event = "blog_created"
	EventBlogUpdated         Event = "blog_updated"
	EventBlogDeleted         Event = "blog_deleted"
	EventUserCreated         Event = "user_created"
	EventUserUpdated         Event = "user_updated"
	EventUserDeleted         Event = "user_deleted"
	EventApplicationReceived Event = "application_received"
	EventLeadCaptured        Event = "lead_captured"
)

var subjects = map[Event]string{
	EventBlogCreated:         "Blog post created",
	EventBlogUpdated:         "Blog post updated",
	EventBlogDeleted:         "Blog post deleted",
	EventUserCreated:         "Admin user created",
	EventUserUpdated:         "Admin user updated",
	EventUserDeleted:         "Admin user deleted",
	EventApplicationReceived: "New job application",
	EventLeadCaptured:        "New lead captured",
}

var bodyTmpl = template.Must(template.New("notification").Parse(`<html><body>
<h2>{{.Subject}}</h2>
<table border="0" cellpadding="4">
{{range .Rows}}<tr><td><b>{{.Key}}</b></td><td>{{.Value}}</td></tr>
{{end}}</table>
<p style="color:#888;font-size:12px">CybaemTech admin notification</p>
</body></html>`))

type row struct{ Key, Value string }

// Service composes and sends best-effort admin notification emails. Failure
// is logged and never reaches the caller.
type Service struct {
	sender *mail.Sender
	to     string
	log    *zap.Logger
}

func NewService(sender *mail.Sender, to string, log *zap.Logger) *Service {
	return &Service{sender: sender, to: to, log: log}
}

// Dispatch sends the notification in the background. It returns immediately.
func (s *Service) Dispatch(event Event, fields map[string]string) {
	if s == nil || !s.sender.Enabled() || s.to == "" {
		return
	}

	go func() {
		subject, ok := subjects[event]
		if !ok {
			subject = string(event)
		}
		body, err := renderBody(subject, fields)
		if err != nil {
			s.log.Warn("notification render failed", zap.String("event", string(event)), zap.Error(err))
			return
		}
		if err := s.sender.Send(s.to, "[CybaemTech] "+subject, body); err != nil {
			s.log.Warn("notification send failed", zap.String("event", string(event)), zap.Error(err))
		}
	}()
}

func renderBody(subject string, fields map[string]string) (string, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, row{Key: k, Value: fields[k]})
	}

	var buf bytes.Buffer
	err := bodyTmpl.Execute(&buf, struct {
		Subject string
		Rows    []row
	}{Subject: subject, Rows: rows})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
