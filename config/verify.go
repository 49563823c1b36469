package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type InvalidField struct {
	Field  string
	Value  interface{}
	Reason string
}

func (err *InvalidField) Error() string {
	return fmt.Sprintf("'%s' has invalid value %v: %s", err.Field, err.Value, err.Reason)
}

// VerifyConfigs collects every problem in cfg instead of stopping at the first one.
func VerifyConfigs(cfg ServerConfig) []error {
	errs := []error{}
	invalid := func(field string, value interface{}, reason string) {
		errs = append(errs, &InvalidField{
			Field:  field,
			Value:  value,
			Reason: reason,
		})
	}

	if cfg.ListenTo == "" {
		invalid("listenTo", cfg.ListenTo, "must not be empty")
	}
	if d, err := time.ParseDuration(cfg.IdleTimeout); err != nil {
		invalid("idleTimeout", cfg.IdleTimeout, "not a duration")
	} else if d < 0 {
		invalid("idleTimeout", cfg.IdleTimeout, "must not be negative")
	}
	if cfg.MaxConnections < 1 {
		invalid("maxConnections", cfg.MaxConnections, "must be at least 1")
	}
	if cfg.BufferSize < 16 {
		invalid("bufferSize", cfg.BufferSize, "must be at least 16")
	}
	if cfg.MaxFrameLength < 1 || cfg.MaxFrameLength > 2097151 {
		invalid("maxFrameLength", cfg.MaxFrameLength, "must be between 1 and 2097151")
	}
	if cfg.MaxAddressLength < 1 {
		invalid("maxAddressLength", cfg.MaxAddressLength, "must be at least 1")
	}
	if cfg.EventQueueSize < 1 {
		invalid("eventQueueSize", cfg.EventQueueSize, "must be at least 1")
	}
	if cfg.RateLimit < 0 {
		invalid("rateLimit", cfg.RateLimit, "must not be negative")
	}
	if cfg.RateLimit > 0 {
		if d, err := time.ParseDuration(cfg.RateCooldown); err != nil || d <= 0 {
			invalid("rateCooldown", cfg.RateCooldown, "not a positive duration")
		}
	}
	if cfg.UsePrometheus && cfg.PrometheusBind == "" {
		invalid("prometheusBind", cfg.PrometheusBind, "required when prometheus is enabled")
	}

	status := cfg.Status
	if status.MaxPlayers < 0 {
		invalid("status.maxPlayers", status.MaxPlayers, "must not be negative")
	}
	if status.OnlinePlayers < 0 {
		invalid("status.onlinePlayers", status.OnlinePlayers, "must not be negative")
	}
	if status.OnlinePlayers > status.MaxPlayers {
		invalid("status.onlinePlayers", status.OnlinePlayers, "more than maxPlayers")
	}
	for i, player := range status.Sample {
		if player.Name == "" {
			invalid(fmt.Sprintf("status.sample[%d].name", i), player.Name, "must not be empty")
		}
		if player.ID == "" {
			continue
		}
		if _, err := uuid.Parse(player.ID); err != nil {
			invalid(fmt.Sprintf("status.sample[%d].id", i), player.ID, "not a uuid")
		}
	}

	return errs
}

// VerifyConfig joins everything VerifyConfigs finds into one error.
func VerifyConfig(cfg ServerConfig) error {
	return errors.Join(VerifyConfigs(cfg)...)
}
