package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"fotofocus-backend/internal/handler"
	"fotofocus-backend/internal/httputil"
	"fotofocus-backend/internal/service"
	authmw "fotofocus-backend/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	ChallengeHandler *handler.ChallengeHandler
	PhotoHandler     *handler.PhotoHandler
	CommentHandler   *handler.CommentHandler
	PostHandler      *handler.PostHandler
	FollowHandler    *handler.FollowHandler
	LessonHandler    *handler.LessonHandler
	TokenService     *service.TokenService
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	requireAuth := authmw.RequireAuth(cfg.TokenService)
	optionalAuth := authmw.OptionalAuth(cfg.TokenService)

	// Auth endpoints are rate limited per IP so codes and logins cannot be
	// brute-forced.
	authLimiter := authmw.NewRateLimiter(rate.Limit(1), 10)

	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Limit)
		r.Post("/register", cfg.AuthHandler.RegisterRequest)
		r.Post("/register/request", cfg.AuthHandler.RegisterRequest)
		r.Post("/register/verify", cfg.AuthHandler.RegisterVerify)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
		r.Post("/reset-password", cfg.AuthHandler.ResetPassword)
	})

	// Public browsing with optional authentication
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)

		r.Get("/challenges", cfg.ChallengeHandler.List)
		r.Get("/challenges/{id}", cfg.ChallengeHandler.GetByID)
		r.Get("/challenges/{id}/photos", cfg.PhotoHandler.ListByChallenge)
		r.Get("/photos/{id}", cfg.PhotoHandler.GetByID)
		r.Get("/photos/{id}/comments", cfg.CommentHandler.List)

		r.Get("/posts", cfg.PostHandler.Feed)
		r.Get("/posts/{id}/comments", cfg.PostHandler.ListComments)

		r.Get("/users/{id}", cfg.UserHandler.GetByID)
		r.Get("/users/{id}/stats", cfg.UserHandler.Stats)
		r.Get("/users/{id}/followers", cfg.FollowHandler.Followers)
		r.Get("/users/{id}/following", cfg.FollowHandler.Following)
		r.Get("/users/{id}/photos", cfg.PhotoHandler.ListByUser)
		r.Get("/users/{id}/mychallenges", cfg.ChallengeHandler.ListByUser)
		r.Get("/users/{id}/posts", cfg.PostHandler.ListByUser)
		r.Get("/users/{id}/liked-posts", cfg.PostHandler.ListLikedBy)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/me", cfg.UserHandler.Me)
		r.Put("/me", cfg.UserHandler.UpdateMe)
		r.Delete("/me", cfg.UserHandler.DeleteMe)
		r.Post("/me/avatar", cfg.UserHandler.UploadAvatar)
		r.Get("/me/stats", cfg.UserHandler.MyStats)
		r.Get("/me/photos", cfg.PhotoHandler.ListMine)
		r.Get("/me/challenges", cfg.ChallengeHandler.ListMine)
		r.Get("/me/posts", cfg.PostHandler.ListMine)
		r.Get("/me/liked-posts", cfg.PostHandler.ListMyLiked)

		r.Post("/users/{id}/follow", cfg.FollowHandler.Follow)
		r.Delete("/users/{id}/follow", cfg.FollowHandler.Unfollow)
		r.Get("/users/{id}/isFollowing", cfg.FollowHandler.IsFollowing)

		r.Post("/challenges", cfg.ChallengeHandler.Create)
		r.Put("/challenges/{id}", cfg.ChallengeHandler.Update)
		r.Delete("/challenges/{id}", cfg.ChallengeHandler.Delete)
		r.Post("/challenges/{id}/photos", cfg.PhotoHandler.Upload)

		r.Delete("/photos/{id}", cfg.PhotoHandler.Delete)
		r.Post("/photos/{id}/ratings", cfg.PhotoHandler.Rate)
		r.Post("/photos/{id}/comments", cfg.CommentHandler.Create)
		r.Delete("/comments/{id}", cfg.CommentHandler.Delete)

		r.Post("/posts", cfg.PostHandler.Create)
		r.Delete("/posts/{id}", cfg.PostHandler.Delete)
		r.Post("/posts/{id}/like", cfg.PostHandler.Like)
		r.Delete("/posts/{id}/like", cfg.PostHandler.Unlike)
		r.Post("/posts/{id}/comments", cfg.PostHandler.CreateComment)
		r.Delete("/posts/{postId}/comments/{commentId}", cfg.PostHandler.DeleteComment)

		r.Get("/lessons", cfg.LessonHandler.List)
		r.Get("/lessons/{id}", cfg.LessonHandler.GetByID)
	})

	return r
}
