package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/tasks/v1"
)

const (
	showAuthURLEnv = "TODOCARD_SHOW_AUTH_URL"
	authTimeout    = 5 * time.Minute
)

var scopes = []string{
	tasks.TasksScope,
}

// Client returns an authorized HTTP client, running the browser flow when no
// token is cached at tokenPath. Prompts go to out.
func Client(ctx context.Context, credentialsPath, tokenPath string, out io.Writer) (*http.Client, error) {
	// #nosec G304 -- credentials path is user-configured
	creds, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	config, err := google.ConfigFromJSON(creds, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if tok, err := tokenFromFile(tokenPath); err == nil {
		return config.Client(ctx, tok), nil
	}

	tok, err := tokenFromWeb(ctx, config, out)
	if err != nil {
		return nil, err
	}
	if err := saveToken(tokenPath, tok); err != nil {
		return nil, err
	}
	return config.Client(ctx, tok), nil
}

func tokenFromWeb(ctx context.Context, config *oauth2.Config, out io.Writer) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return tokenFromWebManual(ctx, config, out)
	}
	cfg := *config
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr().String())
	state := uuid.NewString()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           callbackHandler(state, codeCh),
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	defer func() { _ = srv.Shutdown(context.Background()) }()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Authorize todocard in your browser:")
	_, _ = fmt.Fprintf(out, "  %s\n", clickableLink("Open authorization link", authURL))
	if os.Getenv(showAuthURLEnv) != "" {
		_, _ = fmt.Fprintf(out, "  URL: %s\n", authURL)
	} else {
		_, _ = fmt.Fprintf(out, "  (If it doesn't open, re-run with %s=1)\n", showAuthURLEnv)
	}
	_, _ = fmt.Fprintln(out, "Waiting for authorization...")

	select {
	case code := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return cfg.Exchange(exchangeCtx, code)
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("authorization timed out")
	}
}

func callbackHandler(state string, codeCh chan<- string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/callback" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Invalid state", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Missing code", http.StatusBadRequest)
			return
		}
		_, _ = fmt.Fprintln(w, "Auth complete. You can close this tab and return to todocard.")
		select {
		case codeCh <- code:
		default:
		}
	})
}

func tokenFromWebManual(ctx context.Context, config *oauth2.Config, out io.Writer) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL(uuid.NewString(), oauth2.AccessTypeOffline)
	_, _ = fmt.Fprintf(out, "Open this URL in your browser and paste the authorization code:\n%v\n", authURL)
	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}
	return config.Exchange(ctx, code)
}

func clickableLink(text, url string) string {
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, text)
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	// #nosec G304 -- token path is user-configured
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	var tok oauth2.Token
	if err := json.NewDecoder(file).Decode(&tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	// #nosec G304 -- token path is user-configured
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	return json.NewEncoder(file).Encode(token)
}
