// Package main provides the entry point of ChurchAdmin, the permission service
// behind the church mobile applications. It resolves the effective permissions
// of the five church roles from a fixed base table and administrator overrides,
// and serves them to the clients through a fiber JSON API. Overrides are
// persisted with gorm (sqlite, mysql or postgres) or in redis.
package main
