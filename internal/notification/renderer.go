package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"
	"time"

	"meeting-scheduler/internal/scheduling"
)

const scheduleLayout = "Monday, January 02, 2006 at 03:04 PM"

var textTemplate = template.Must(template.New("text").Parse(`Hi {{.Greeting}},

Your booking for {{.Title}} with {{.Host}} has been {{.StatusLine}}.
Scheduled for: {{.Schedule}} ({{.TimezoneLabel}})
Current status: {{.Status}}
{{- if .MeetingLink}}

Join Google Meet: {{.MeetingLink}}
{{- end}}
{{- if .Notes}}

Notes:
{{.Notes}}
{{- end}}

If you have any questions, just reply to this email.

Best regards,
{{.Host}}`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Funcs(htmltemplate.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#f1f5f9;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr>
      <td align="center" style="padding:32px 16px;">
        <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:12px;">
          <tr>
            <td style="padding:32px 36px 8px;">
              <h1 style="margin:0;font-size:22px;color:#0f172a;">Your booking is {{.StatusLine}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding:8px 36px;font-size:15px;line-height:1.6;color:#334155;">
              <p style="margin:0 0 12px;">Hi {{.Greeting}},</p>
              <p style="margin:0 0 12px;">Your booking for <strong>{{.Title}}</strong> with {{.Host}} has been {{.StatusLine}}.</p>
              <p style="margin:0 0 4px;"><strong>Scheduled for:</strong> {{.Schedule}} ({{.TimezoneLabel}})</p>
              <p style="margin:0;"><strong>Current status:</strong> {{.Status}}</p>
            </td>
          </tr>
          {{- if .MeetingLink}}
          <tr>
            <td style="padding:12px 36px;">
              <a href="{{.MeetingLink}}" style="display:inline-block;padding:10px 18px;background-color:#2563eb;color:#ffffff;border-radius:8px;text-decoration:none;">Join Google Meet</a>
            </td>
          </tr>
          {{- end}}
          {{- if .Notes}}
          <tr>
            <td style="padding:20px 32px;background-color:#f8fafc;">
              <h3 style="margin:0 0 8px;font-size:15px;color:#0f172a;">Notes</h3>
              <p style="margin:0;font-size:15px;line-height:1.6;color:#475569;">{{range $i, $l := lines .Notes}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
            </td>
          </tr>
          {{- end}}
          <tr>
            <td style="padding:24px 36px 32px;font-size:14px;color:#64748b;">
              <p style="margin:0 0 12px;">If you have any questions, just reply to this email.</p>
              <p style="margin:0;">Best regards,<br>{{.Host}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

type view struct {
	Greeting      string
	Title         string
	Host          string
	StatusLine    string
	Schedule      string
	TimezoneLabel string
	Status        string
	MeetingLink   string
	Notes         string
}

// Renderer builds the subject and bodies of a booking email.
type Renderer struct {
	location    *time.Location
	meetingLink string
}

func NewRenderer(defaultLocation *time.Location, meetingLink string) *Renderer {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &Renderer{location: defaultLocation, meetingLink: strings.TrimSpace(meetingLink)}
}

// Render returns the message for job. The recipient is left to the caller.
func (r *Renderer) Render(job Job) (*Message, error) {
	b := job.Booking

	// Shown in the attendee's form timezone, else the server default.
	loc, _ := scheduling.ResolveLocation(scheduling.TimezoneHint(b.UserInput), r.location)
	when := scheduling.NewSchedule(b.Date, b.UserInput).Resolve(loc).In(loc)

	greeting := strings.TrimSpace(b.AttendeeName)
	if greeting == "" {
		greeting = "there"
	}

	v := view{
		Greeting:      greeting,
		Title:         job.PageTitle,
		Host:          job.HostName,
		StatusLine:    job.Action.StatusLine(),
		Schedule:      when.Format(scheduleLayout),
		TimezoneLabel: timezoneLabel(when, loc),
		Status:        capitalize(string(b.Status)),
		MeetingLink:   r.meetingLink,
		Notes:         strings.TrimSpace(b.Notes),
	}

	var text, html bytes.Buffer
	if err := textTemplate.Execute(&text, v); err != nil {
		return nil, fmt.Errorf("render text body: %w", err)
	}
	if err := htmlTemplate.Execute(&html, v); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}

	return &Message{
		To:      job.Recipient(),
		Subject: fmt.Sprintf("Your booking is %s - %s", v.StatusLine, job.PageTitle),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

func timezoneLabel(t time.Time, loc *time.Location) string {
	if abbr := t.Format("MST"); abbr != "" && !strings.HasPrefix(abbr, "+") && !strings.HasPrefix(abbr, "-") {
		return abbr
	}
	return loc.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
