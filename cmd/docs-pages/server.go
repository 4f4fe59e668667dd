package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"

	"github.com/vilaca/docs-pages/internal/api"
	"github.com/vilaca/docs-pages/internal/api/addsearch"
	"github.com/vilaca/docs-pages/internal/api/github"
	"github.com/vilaca/docs-pages/internal/config"
	"github.com/vilaca/docs-pages/internal/content"
	"github.com/vilaca/docs-pages/internal/domain"
	"github.com/vilaca/docs-pages/internal/markdown"
	"github.com/vilaca/docs-pages/internal/service"
	"github.com/vilaca/docs-pages/internal/site"
)

type dependencies struct {
	reports  *service.ReportService
	notFound *service.NotFoundService
}

// buildDependencies wires the services shared by the server and the CLI.
// This is the composition root where all dependencies are created and injected.
func buildDependencies(cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	httpClient := &http.Client{Timeout: cfg.HTTP.ClientTimeout}

	home, err := content.Load(cfg.PageDataFile)
	if err != nil {
		return nil, fmt.Errorf("content.Load: %w", err)
	}

	githubClient := github.NewClient(api.ClientConfig{
		BaseURL: cfg.GitHubURL,
		Token:   cfg.GitHubToken,
	}, httpClient)

	reports := service.NewReportService(service.ReportServiceConfig{
		Client:   githubClient,
		Pipeline: service.NewPipeline(markdown.NewConverter()),
		Clock:    clock.New(),
		Logger:   logger,
		Owner:    cfg.Report.Owner,
		Repo:     cfg.Report.Repo,
		Window:   cfg.Report.Window,
	})

	notFoundCfg := service.NotFoundServiceConfig{
		Links:    home.NotFoundLinks,
		UIConfig: domain.DefaultSearchUIConfig(),
		Logger:   logger,
	}
	if cfg.HasSearchConfig() {
		notFoundCfg.Search = addsearch.NewClient(api.ClientConfig{
			BaseURL: cfg.AddSearch.URL,
		}, cfg.AddSearch.SiteKey, httpClient)
	}

	return &dependencies{
		reports:  reports,
		notFound: service.NewNotFoundService(notFoundCfg),
	}, nil
}

// buildServer wires up all dependencies and returns the configured HTTP handler.
func buildServer(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	deps, err := buildDependencies(cfg, logger)
	if err != nil {
		return nil, err
	}

	handler := site.NewHandler(site.HandlerConfig{
		Renderer:       site.NewHTMLRenderer(),
		Logger:         logger,
		Reports:        deps.reports,
		NotFound:       deps.notFound,
		RequestTimeout: cfg.HTTP.ClientTimeout,
	})

	return site.NewRouter(handler, logger), nil
}

// run serves HTTP until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	handler, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	if !cfg.HasGitHubConfig() {
		logger.Warn("GITHUB_TOKEN is not set, GitHub requests are unauthenticated")
	}
	if !cfg.HasSearchConfig() {
		logger.Warn("ADDSEARCH_SITE_KEY is not set, similar pages search is disabled")
	}

	g, gCtx := errgroup.WithContext(ctx)

	httpServer := &http.Server{
		BaseContext: func(net.Listener) context.Context {
			return gCtx
		},
		Addr:              cfg.Addr(),
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		Handler:           handler,
	}

	g.Go(func() error {
		logger.Info("http server started",
			slog.String("address", httpServer.Addr),
			slog.String("repository", cfg.Report.Owner+"/"+cfg.Report.Repo))

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}

		logger.Info("http server stopped listening")
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		logger.Info("http server is shutting down", slog.Duration("timeout", cfg.HTTP.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpServer.Shutdown: %w", err)
		}

		logger.Info("http server shut down gracefully")
		return nil
	})

	return g.Wait()
}
