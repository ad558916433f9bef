package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const notificationSubject = "🔔 Recordatorio de Calendario"

// GmailNotifier implements calendar.Notifier by mailing the rendered message
// from the user's own Gmail account to the destination address.
type GmailNotifier struct {
	auth *Auth
}

func NewGmailNotifier(auth *Auth) *GmailNotifier {
	return &GmailNotifier{auth: auth}
}

func (n *GmailNotifier) Send(ctx context.Context, cred *oauth2.Token, destination, message string) error {
	service, err := gmail.NewService(ctx, option.WithHTTPClient(n.auth.client(ctx, cred)))
	if err != nil {
		err := fmt.Errorf("unable to create Gmail client: %v", err)
		log.Error(err)
		return err
	}

	raw := encodeMessage(destination, notificationSubject, message)
	if _, err := service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Do(); err != nil {
		err := fmt.Errorf("unable to send notification mail: %v", err)
		log.Error(err)
		return err
	}

	log.Debugf("notification mail sent to %s", destination)
	return nil
}

// encodeMessage builds an RFC 2822 message and encodes it in the base64url
// form the Gmail API expects.
func encodeMessage(to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
