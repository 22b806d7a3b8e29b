// Command paper prints a rolling paper as text, one grid page at a time.
//
//	paper -member alice            visit alice's paper
//	paper -token <jwt>             remember an access token and print your own paper
//	paper                          print your own paper with the remembered token
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"bimillog/internal/backend"
	"bimillog/internal/config"
	"bimillog/internal/grid"
	"bimillog/internal/model"
	"bimillog/internal/service"
	"bimillog/internal/session"
)

func main() {
	defaults := config.DefaultBackendConfig()

	member := flag.String("member", "", "paper owner to visit; empty prints your own paper")
	mobile := flag.Bool("mobile", false, "use the mobile layout")
	backendURL := flag.String("backend", defaults.BaseURL, "backend base URL")
	token := flag.String("token", "", "access token to remember for later runs")
	stateDir := flag.String("state", defaultStateDir(), "directory for the remembered login")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaults.Timeout+5*time.Second)
	defer cancel()

	if err := run(ctx, os.Stdout, options{
		member:     *member,
		mobile:     *mobile,
		backendURL: *backendURL,
		token:      *token,
		stateDir:   *stateDir,
		timeout:    defaults.Timeout,
	}); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	member     string
	mobile     bool
	backendURL string
	token      string
	stateDir   string
	timeout    time.Duration
}

func run(ctx context.Context, out io.Writer, opts options) error {
	store, err := session.NewFileStore(opts.stateDir)
	if err != nil {
		return err
	}
	tokens := session.NewManager(session.Config{Store: store})

	if opts.token != "" {
		env := model.TokenEnvelope{AccessToken: opts.token}
		if secs, ok := service.TokenLifetime(opts.token, time.Now()); ok {
			env.ExpiresIn = &secs
		}
		if err := tokens.SaveTokens(ctx, env); err != nil {
			return err
		}
	}

	base, err := url.Parse(opts.backendURL)
	if err != nil {
		return fmt.Errorf("invalid backend url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	if env := tokens.GetTokens(ctx); env != nil {
		jar.SetCookies(base, []*http.Cookie{{Name: backend.AccessCookie, Value: env.AccessToken, Path: "/"}})
	}

	api, err := backend.New(backend.Config{
		BaseURL:    opts.backendURL,
		HTTPClient: &http.Client{Jar: jar, Timeout: opts.timeout},
	})
	if err != nil {
		return err
	}

	if opts.member != "" {
		msgs, err := api.VisitPaper(ctx, opts.member)
		if err != nil {
			return err
		}
		return render(out, opts.member, grid.New(msgs, opts.mobile), visitCell)
	}

	msgs, err := api.MyPaper(ctx)
	if backend.IsUnauthorized(err) {
		if clearErr := tokens.Clear(ctx); clearErr != nil {
			log.Printf("failed to forget token: %v", clearErr)
		}
		return errors.New("not signed in: pass -token with a fresh access token")
	}
	if err != nil {
		return err
	}
	return render(out, "my paper", grid.New(msgs, opts.mobile), messageCell)
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".bimillog"
	}
	return filepath.Join(dir, "bimillog")
}
