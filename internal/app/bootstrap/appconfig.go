// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, request limits). AppConfig is everything specific to
// this application: the database connection, token signing, upload storage,
// and the payment redirect stub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token authentication configuration
	JWTSecret string // Secret for signing bearer tokens (must be strong in production)

	// File storage configuration
	UploadPath string // Local path for uploaded images (e.g., "./public/uploads")
	UploadURL  string // URL prefix for serving uploaded images (e.g., "/uploads")

	// AppURL is the public base URL used to build absolute links to
	// uploaded images and payment redirects.
	AppURL string

	// PaymentURL is the gateway checkout page new managers are redirected
	// to after sign-up. The gateway calls back into POST /payment.
	PaymentURL string
}
