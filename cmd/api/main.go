package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"emotrack/internal/config"
	"emotrack/internal/observability/logging"
	"emotrack/internal/observability/metrics"
	"emotrack/internal/service"
	impl "emotrack/internal/service/impl"
	"emotrack/internal/store"
	httpx "emotrack/internal/transport/http"
	"emotrack/pkg/db"
)

func main() {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "emotrack",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	cfg := config.Load()
	metrics.MustRegister("emotrack")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	if err := store.Migrate(context.Background(), gdb); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)

	pw := impl.NewPasswordServiceBcrypt()
	tokens := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:         cfg.Issuer,
		AccessTTL:      cfg.AccessTTL,
		RecoveryTTL:    cfg.RecoveryTTL,
		AccessSecret:   []byte(cfg.JWTSecret),
		RecoverySecret: []byte(cfg.JWTRecoverySecret),
	})

	var mail service.EmailService
	if cfg.SMTPDisabled {
		mail = impl.NewEmailServiceLog()
	} else {
		mail = impl.NewEmailServiceSMTP(impl.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	}

	handler := httpx.NewRouter(httpx.Services{
		Auth:        impl.NewAuthServiceImpl(st, pw, tokens, mail, cfg.RecoveryLinkBase),
		Tokens:      tokens,
		Accounts:    impl.NewAccountServiceImpl(st, pw),
		Students:    impl.NewStudentService(st, pw),
		Professors:  impl.NewProfessorService(st, pw),
		HealthStaff: impl.NewHealthStaffService(st, pw),
		Courses:     impl.NewCourseServiceImpl(st),
		Emotions:    impl.NewEmotionServiceImpl(st),
	}, httpx.Options{
		CORSOrigins: corsOrigins(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func corsOrigins() []string {
	v := os.Getenv("CORS_ORIGINS")
	if v == "" {
		return nil
	}
	var out []string
	for _, origin := range strings.Split(v, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
