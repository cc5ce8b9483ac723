// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountsfeature "github.com/bintangnugrahaa/course-lms/internal/app/features/accounts"
	coursesfeature "github.com/bintangnugrahaa/course-lms/internal/app/features/courses"
	healthfeature "github.com/bintangnugrahaa/course-lms/internal/app/features/health"
	paymentfeature "github.com/bintangnugrahaa/course-lms/internal/app/features/payment"
	studentsfeature "github.com/bintangnugrahaa/course-lms/internal/app/features/students"
	userstore "github.com/bintangnugrahaa/course-lms/internal/app/store/users"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/auth"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/uploads"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// The public surface is sign-up/sign-in, the payment webhook, the health
// check, and the uploaded-image file server. Everything else sits behind
// bearer-token auth, with the manager dashboard routes additionally gated
// on the manager role.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, auth.DefaultTokenTTL)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.UploadPath,
		BaseURL:  appCfg.AppURL + appCfg.UploadURL,
	})
	if err != nil {
		logger.Error("upload storage init failed", zap.Error(err))
		return nil, err
	}
	uploader := uploads.New(store, appCfg.AppURL+appCfg.UploadURL)

	// Every authenticated request re-fetches the user so deleted accounts
	// lose access immediately, not at token expiry.
	tokenAuth := &auth.Middleware{
		Tokens: tokens,
		Fetch:  userstore.NewFetcher(deps.MongoDatabase),
		Log:    logger,
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Get("/health", healthHandler.Serve)

	// Uploaded images with pre-compressed file support (gzip/brotli)
	r.Handle(appCfg.UploadURL+"/*", fileserver.Handler(appCfg.UploadURL, appCfg.UploadPath))

	// Public: account creation and login
	accountsHandler := accountsfeature.NewHandler(deps.MongoDatabase, tokens, appCfg.PaymentURL, logger)
	r.Mount("/", accountsfeature.Routes(accountsHandler))

	// Public: payment gateway webhook
	paymentHandler := paymentfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/payment", paymentfeature.Routes(paymentHandler))

	coursesHandler := coursesfeature.NewHandler(deps.MongoDatabase, uploader, logger)
	studentsHandler := studentsfeature.NewHandler(deps.MongoDatabase, uploader, logger)

	r.Group(func(r chi.Router) {
		r.Use(tokenAuth.RequireToken)

		r.Get("/categories", coursesHandler.ServeCategories)
		r.Mount("/courses", coursesfeature.Routes(coursesHandler))

		// Student management is a manager-only surface.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole("manager"))
			r.Mount("/students", studentsfeature.Routes(studentsHandler))
		})
	})

	return r, nil
}
