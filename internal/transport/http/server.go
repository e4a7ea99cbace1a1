package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"fotofocus-backend/internal/config"
	"fotofocus-backend/internal/database"
	"fotofocus-backend/internal/handler"
	"fotofocus-backend/internal/mail"
	"fotofocus-backend/internal/repository"
	"fotofocus-backend/internal/service"
)

// Run wires the whole application together and serves it.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to init media service: %w", err)
	}

	mailer := mail.NewMailer(cfg)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	pendingRepo := repository.NewPendingRegistrationRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	postRepo := repository.NewPostRepository(db)
	postCmtRepo := repository.NewPostCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	lessonRepo := repository.NewLessonRepository(db)

	// Services
	txRunner := database.NewTxRunner(db)
	tokenService := service.NewTokenService(cfg)
	registrationService := service.NewRegistrationService(txRunner, userRepo, pendingRepo, tokenService, mailer)
	resetService := service.NewPasswordResetService(txRunner, userRepo, resetRepo, mailer, cfg.Production)
	userService := service.NewUserService(txRunner, userRepo, resetRepo, challengeRepo, photoRepo, ratingRepo,
		commentRepo, postRepo, postCmtRepo, followRepo, tokenService, mediaService)
	challengeService := service.NewChallengeService(txRunner, challengeRepo, photoRepo, ratingRepo, commentRepo, mediaService)
	photoService := service.NewPhotoService(txRunner, photoRepo, challengeRepo, ratingRepo, commentRepo, mediaService)
	commentService := service.NewCommentService(txRunner, commentRepo, photoRepo)
	postService := service.NewPostService(txRunner, postRepo, postCmtRepo, mediaService)
	followService := service.NewFollowService(followRepo, userRepo)
	lessonService := service.NewLessonService(lessonRepo)

	if cfg.SeedOnBoot {
		if err := lessonService.SeedDefaults(ctx); err != nil {
			return fmt.Errorf("failed to seed lessons: %w", err)
		}
	}

	router := NewRouter(RouterConfig{
		AuthHandler:      handler.NewAuthHandler(registrationService, userService, resetService),
		UserHandler:      handler.NewUserHandler(userService, mediaService),
		ChallengeHandler: handler.NewChallengeHandler(challengeService, mediaService),
		PhotoHandler:     handler.NewPhotoHandler(photoService, mediaService),
		CommentHandler:   handler.NewCommentHandler(commentService),
		PostHandler:      handler.NewPostHandler(postService, mediaService),
		FollowHandler:    handler.NewFollowHandler(followService),
		LessonHandler:    handler.NewLessonHandler(lessonService),
		TokenService:     tokenService,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("API listening on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
