package google

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avisobot/avisobot/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// UserInfo identifies the authenticated Google account.
type UserInfo struct {
	Email string
	Name  string
}

type Auth struct {
	oauthConfig *oauth2.Config
}

func NewAuth(cfg config.Application) *Auth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/auth/callback",
		Scopes: []string{
			gcal.CalendarScope,
			tasks.TasksScope,
			gmail.GmailSendScope,
			goauth2.UserinfoEmailScope,
			goauth2.UserinfoProfileScope,
		},
	}
	return &Auth{oauthConfig: oauthConfig}
}

// AuthCodeURL builds the consent-screen URL for the given state nonce.
// Offline access is requested so a refresh token is issued.
func (a *Auth) AuthCodeURL(state string) string {
	return a.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (a *Auth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.oauthConfig.Exchange(ctx, code)
	if err != nil {
		err := fmt.Errorf("unable to exchange code for token: %v", err)
		log.Error(err)
		return nil, err
	}
	return token, nil
}

// Refresh returns a currently valid token, renewing it through the refresh
// token when the access token has expired.
func (a *Auth) Refresh(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
	fresh, err := a.oauthConfig.TokenSource(ctx, token).Token()
	if err != nil {
		err := fmt.Errorf("unable to refresh token: %v", err)
		log.Error(err)
		return nil, err
	}
	return fresh, nil
}

func (a *Auth) client(ctx context.Context, token *oauth2.Token) *http.Client {
	return a.oauthConfig.Client(ctx, token)
}

// UserInfo fetches the account's email and display name.
func (a *Auth) UserInfo(ctx context.Context, token *oauth2.Token) (UserInfo, error) {
	service, err := goauth2.NewService(ctx, option.WithHTTPClient(a.client(ctx, token)))
	if err != nil {
		err := fmt.Errorf("unable to create userinfo client: %v", err)
		log.Error(err)
		return UserInfo{}, err
	}
	info, err := service.Userinfo.Get().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve user info: %v", err)
		log.Error(err)
		return UserInfo{}, err
	}
	return UserInfo{Email: info.Email, Name: info.Name}, nil
}
