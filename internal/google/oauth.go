package google

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/knowsuchagency/gmailcli/internal/config"
	"github.com/knowsuchagency/gmailcli/internal/logging"
)

// OOB is the out-of-band redirect URI for installed applications: Google
// displays the authorization code for the user to paste back into the tool.
const OOB = "urn:ietf:wg:oauth:2.0:oob"

// Authenticator drives the credential lifecycle: load the persisted token,
// refresh it when expired, fall back to the interactive authorization flow
// when the refresh is rejected, and persist whatever comes out.
type Authenticator struct {
	cfg    *config.Config
	logger *slog.Logger

	// in/out drive the interactive flow and default to stdin/stdout.
	in  io.Reader
	out io.Writer
}

// NewAuthenticator creates an Authenticator for the resolved configuration.
func NewAuthenticator(cfg *config.Config, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		cfg:    cfg,
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// HasToken reports whether a persisted token exists.
func (a *Authenticator) HasToken() bool {
	_, err := os.Stat(a.cfg.TokenFile)
	return err == nil
}

// oauthConfig builds the oauth2 client configuration, either from the
// downloaded client-secret file or from a bare client id/secret pair.
func (a *Authenticator) oauthConfig() (*oauth2.Config, error) {
	if a.cfg.UsesCredentialsFile() {
		data, err := os.ReadFile(a.cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading credentials file %s: %w", a.cfg.CredentialsFile, err)
		}
		conf, err := google.ConfigFromJSON(data, DefaultOAuthScopes...)
		if err != nil {
			return nil, fmt.Errorf("parsing credentials file %s: %w", a.cfg.CredentialsFile, err)
		}
		// The interactive flow reads a pasted code, so the redirect must be
		// out-of-band regardless of what the credentials file lists.
		conf.RedirectURL = OOB
		return conf, nil
	}

	return &oauth2.Config{
		ClientID:     a.cfg.ClientID,
		ClientSecret: a.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  OOB,
		Scopes:       DefaultOAuthScopes,
	}, nil
}

// TokenSource returns a valid, auto-refreshing token source. It loads the
// persisted token and validates it; if the token is missing or the refresh is
// rejected it runs the interactive flow. The resulting token is persisted so
// the next invocation starts from a fresh access token.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	conf, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	if tok, err := a.loadToken(); err == nil {
		ts := conf.TokenSource(ctx, tok)
		fresh, err := ts.Token()
		if err == nil {
			if fresh.AccessToken != tok.AccessToken {
				a.logger.Info("token refreshed", logging.Operation("refresh"))
				if err := a.saveToken(fresh); err != nil {
					a.logger.Warn("could not persist refreshed token", logging.Err(err))
				}
			}
			return ts, nil
		}
		a.logger.Warn("stored token rejected, re-authenticating",
			logging.Operation("refresh"), logging.Err(err))
	} else if !os.IsNotExist(err) {
		a.logger.Warn("could not load stored token", logging.Err(err))
	}

	tok, err := a.authorize(ctx, conf)
	if err != nil {
		return nil, err
	}
	if err := a.saveToken(tok); err != nil {
		a.logger.Warn("could not persist token", logging.Err(err))
	}
	return conf.TokenSource(ctx, tok), nil
}

// HTTPClient returns an HTTP client that carries OAuth2 authentication,
// driving the full credential lifecycle on first use.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := a.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

// Authorize forces the interactive flow regardless of any stored token and
// persists the result. Used by the auth subcommand.
func (a *Authenticator) Authorize(ctx context.Context) error {
	conf, err := a.oauthConfig()
	if err != nil {
		return err
	}
	tok, err := a.authorize(ctx, conf)
	if err != nil {
		return err
	}
	return a.saveToken(tok)
}

// authorize runs the interactive authorization flow: print the URL, read the
// code from stdin, exchange it for a token.
func (a *Authenticator) authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	url := conf.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Fprintf(a.out, "Open the following URL in your browser and authorize the application:\n\n  %s\n\nAuthorization code: ", url)

	code, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && code == "" {
		return nil, fmt.Errorf("reading authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("no authorization code provided")
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	a.logger.Info("authorization successful",
		logging.Operation("authorize"),
		slog.String("token", logging.SanitizeToken(tok.AccessToken)))
	return tok, nil
}

// loadToken reads the persisted token. The file uses the oauth2 JSON schema.
func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid token file %s: %w", a.cfg.TokenFile, err)
	}
	if tok.RefreshToken == "" && tok.AccessToken == "" {
		return nil, fmt.Errorf("token file %s holds no token", a.cfg.TokenFile)
	}
	return &tok, nil
}

// saveToken persists the token. Token material is written 0600, the parent
// directory created 0700.
func (a *Authenticator) saveToken(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.TokenFile), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if err := os.WriteFile(a.cfg.TokenFile, data, 0600); err != nil {
		return fmt.Errorf("writing token file %s: %w", a.cfg.TokenFile, err)
	}
	return nil
}
