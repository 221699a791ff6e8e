package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"basegraph.app/roster/internal/model"
)

// InvitationData is everything an invitation email needs.
type InvitationData struct {
	To        string
	OrgName   string
	Role      model.Role
	Token     string
	ExpiresAt time.Time
}

type invitationView struct {
	OrgName   string
	RoleLabel string
	InviteURL string
	ExpiresOn string
}

// Renderer produces invitation emails. Output depends only on its inputs.
type Renderer struct {
	siteURL string
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

func NewRenderer(siteURL string) *Renderer {
	return &Renderer{
		siteURL: siteURL,
		html:    htmltemplate.Must(htmltemplate.New("invitation.html").Parse(invitationHTML)),
		text:    texttemplate.Must(texttemplate.New("invitation.txt").Parse(invitationText)),
	}
}

func (r *Renderer) RenderInvitation(data InvitationData) (Message, error) {
	view := invitationView{
		OrgName:   data.OrgName,
		RoleLabel: data.Role.Label(),
		InviteURL: InviteURL(r.siteURL, data.Token),
		ExpiresOn: data.ExpiresAt.UTC().Format("January 2, 2006"),
	}

	var html bytes.Buffer
	if err := r.html.Execute(&html, view); err != nil {
		return Message{}, fmt.Errorf("rendering html: %w", err)
	}

	var text bytes.Buffer
	if err := r.text.Execute(&text, view); err != nil {
		return Message{}, fmt.Errorf("rendering text: %w", err)
	}

	return Message{
		To:      data.To,
		Subject: fmt.Sprintf("You're invited to join %s", data.OrgName),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

const invitationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Invitation to {{.OrgName}}</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
    .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 20px 0; }
    .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 14px; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>You're invited to {{.OrgName}}</h1>
    </div>
    <p>Hello,</p>
    <p>You have been invited to join <strong>{{.OrgName}}</strong> as <strong>{{.RoleLabel}}</strong>.</p>
    <a href="{{.InviteURL}}" class="button">Accept invitation</a>
    <p>Or copy this link into your browser:</p>
    <p><a href="{{.InviteURL}}">{{.InviteURL}}</a></p>
    <p><strong>Note:</strong> this invitation is valid until {{.ExpiresOn}}.</p>
    <div class="footer">
      <p>If you were not expecting this invitation, you can ignore this email.</p>
      <p>The {{.OrgName}} team</p>
    </div>
  </div>
</body>
</html>
`

const invitationText = `Invitation to {{.OrgName}}

Hello,

You have been invited to join {{.OrgName}} as {{.RoleLabel}}.

Accept the invitation here:
{{.InviteURL}}

Note: this invitation is valid until {{.ExpiresOn}}.

If you were not expecting this invitation, you can ignore this email.

The {{.OrgName}} team
`
