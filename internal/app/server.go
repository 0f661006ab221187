package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/auth"
	"github.com/GoArmGo/CareerCraft/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps — все, что нужно для сборки HTTP-маршрутов.
type RouterDeps struct {
	Jobs           *handler.JobHandler
	Applications   *handler.ApplicationHandler
	Users          *handler.UserHandler
	Tokens         auth.TokenService
	CookieName     string
	AllowedOrigins []string
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// NewRouter собирает маршруты API v1.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	// CORS стоит первым: preflight-запрос не несет токена и не должен доходить до маршрутов.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(handler.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(d.RequestTimeout))

	authenticated := handler.Authenticate(d.Tokens, d.CookieName, d.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Users.Register)
			r.Post("/login", d.Users.Login)
			r.With(authenticated).Get("/logout", d.Users.Logout)
			r.With(authenticated).Get("/getuser", d.Users.GetUser)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(authenticated)
			r.Put("/update-user", d.Users.UpdateUser)
			r.Get("/singleuser/{userId}", d.Users.GetSingleUser)
		})

		r.Route("/job", func(r chi.Router) {
			r.Get("/get-jobs", d.Jobs.GetAllJobs)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/create-job", d.Jobs.PostJob)
				r.Get("/get-my-jobs", d.Jobs.GetMyJobs)
				r.Put("/update-job/{id}", d.Jobs.UpdateJob)
				r.Delete("/delete-job/{id}", d.Jobs.DeleteJob)
				r.Get("/{id}", d.Jobs.GetJob)
			})
		})

		r.Route("/application", func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/post", d.Applications.PostApplication)
			r.Get("/employer/getall", d.Applications.EmployerGetAllApplications)
			r.Get("/jobseeker/getall", d.Applications.JobSeekerGetAllApplications)
			r.Delete("/delete/{id}", d.Applications.JobSeekerDeleteApplication)
		})
	})

	return r
}

// runServer запускает HTTP сервер и блокируется до отмены ctx.
func runServer(ctx context.Context, port string, h http.Handler, logger *slog.Logger) error {
	serverAddr := fmt.Sprintf(":%s", port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping http server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
