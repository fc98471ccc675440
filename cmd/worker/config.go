package main

import (
	"log"

	"friendshavestuff-backend/internal/shared/utils"
)

// Config holds worker-local settings read straight from the environment.
type Config struct {
	RedisAddr string
	SMTPHost  string
	SMTPPort  string
	SMTPFrom  string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr: utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		SMTPHost:  utils.GetEnvVariable("SMTP_HOST", "localhost"),
		SMTPPort:  utils.GetEnvVariable("SMTP_PORT", "1025"),
		SMTPFrom:  utils.GetEnvVariable("SMTP_FROM", "noreply@friendshavestuff.dev"),
	}

	log.Printf("[Config] Redis: %s, SMTP: %s:%s",
		cfg.RedisAddr, cfg.SMTPHost, cfg.SMTPPort)

	return cfg
}
