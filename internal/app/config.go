package app

import (
	"time"

	"github.com/yungbote/interviewsim-backend/internal/platform/envutil"
	"github.com/yungbote/interviewsim-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr       string
	JWTSecretKey   string
	AccessTokenTTL time.Duration

	// AutoMigrate is disabled in deployments that run migrations out of band.
	AutoMigrate bool
}

func LoadConfig(log *logger.Logger) Config {
	port := envutil.GetEnv("PORT", "8080", log)
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	autoMigrate := envutil.GetEnvAsBool("DB_AUTO_MIGRATE", true, log)
	return Config{
		HTTPAddr:       ":" + port,
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		AutoMigrate:    autoMigrate,
	}
}
