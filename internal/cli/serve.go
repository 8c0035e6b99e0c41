package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/config"
	"github.com/storefront-qa/pageflow/internal/handlers"
)

// ServerDependencies holds all dependencies needed for the fixture storefront
type ServerDependencies struct {
	ServerConfig        config.ServerConfig
	LandingHandler      http.Handler
	LoginHandler        http.Handler
	LogoutHandler       http.Handler
	ProductHandler      http.Handler
	CartHandler         http.Handler
	CartAPIHandler      http.Handler
	CheckoutHandler     http.Handler
	CountriesHandler    http.Handler
	ConfirmationHandler http.Handler
	OrdersHandler       http.Handler
}

// RunServe starts the fixture storefront and blocks until a shutdown signal
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// NewRouter maps the storefront routes. "/" redirects to the landing screen.
func NewRouter(deps ServerDependencies) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(handlers.LandingPath, deps.LandingHandler)
	mux.Handle(handlers.LoginPath, deps.LoginHandler)
	mux.Handle(handlers.LogoutPath, deps.LogoutHandler)
	mux.Handle(handlers.DashboardPath, deps.ProductHandler)
	mux.Handle(handlers.CartPath, deps.CartHandler)
	mux.Handle(handlers.OrderPath, deps.CheckoutHandler)
	mux.Handle(handlers.ThanksPath, deps.ConfirmationHandler)
	mux.Handle(handlers.OrdersPath, deps.OrdersHandler)
	mux.Handle(handlers.CartAPIPath, deps.CartAPIHandler)
	mux.Handle(handlers.CountriesAPIPath, deps.CountriesHandler)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, handlers.LandingPath, http.StatusFound)
	})
	return logRequests(mux)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", listener.Addr().String()).Info("storefront listening")
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server error")
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil, a channel is registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logrus.WithField("signal", sig.String()).Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not report listener close errors, so this
		// branch only fires when Shutdown timed out
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logrus.Info("server stopped")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("request served")
	})
}
