package notification

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Message is a rendered email ready for a transport.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Transport delivers a rendered message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// InviteURL builds the canonical acceptance link {siteURL}/invite?token={token}.
func InviteURL(siteURL, token string) string {
	return fmt.Sprintf("%s/invite?token=%s", strings.TrimRight(siteURL, "/"), url.QueryEscape(token))
}
