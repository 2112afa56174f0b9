package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownDBEngine error if config db.engine is not one of sqlite, mysql or postgres.
	ErrUnknownDBEngine = errors.New("toml config db.engine is not supported")

	// ErrUnknownOverrideBackend error if config overrides.backend is not one of db or redis.
	ErrUnknownOverrideBackend = errors.New("toml config overrides.backend is not supported")

	// ErrEmptyRedisAddr error if the redis backend is selected without redis.addr.
	ErrEmptyRedisAddr = errors.New("toml config redis.addr can not be empty when overrides.backend is redis")

	// ErrUnknownModule error if config navigation.modules names an unknown module.
	ErrUnknownModule = errors.New("toml config navigation.modules contains an unknown module")
)
