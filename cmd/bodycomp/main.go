package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "bodycomp/internal/adapter/http"
	"bodycomp/internal/adapter/openai"
	"bodycomp/internal/adapter/postgres"
	"bodycomp/internal/app"
	"bodycomp/internal/config"
	"bodycomp/internal/credential"
	"bodycomp/internal/token"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := postgres.Open(cfg.DSN(), cfg.DBPoolSize)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	codec := credential.New()
	tokens := token.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)

	authSvc := app.NewAuthService(db, codec, tokens)
	statsSvc := app.NewStatsService(db)

	var chatSvc *app.ChatService
	if cfg.ChatAPIKey != "" {
		chatSvc = app.NewChatService(openai.New(cfg.ChatAPIURL, cfg.ChatAPIKey, cfg.ChatModel))
	}

	sso, err := ssoConfig(cfg)
	if err != nil {
		log.Fatalf("oidc setup: %v", err)
	}

	h := adapthttp.New(authSvc, statsSvc, chatSvc, tokens, sso, cfg.CORSOrigins).Handler()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func ssoConfig(cfg *config.Config) (*adapthttp.SSOConfig, error) {
	if !cfg.SSOEnabled() {
		return nil, nil
	}

	provider, err := oidc.NewProvider(context.Background(), cfg.OIDCIssuer)
	if err != nil {
		return nil, err
	}
	return &adapthttp.SSOConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.OIDCRedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}
