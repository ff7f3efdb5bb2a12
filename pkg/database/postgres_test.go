package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tsma-calendar-client/pkg/config"
)

func TestDSNQuotesValues(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "tsma",
		Password: `it's a secret\`,
		Name:     "tsma_client",
		SSLMode:  "disable",
	})
	assert.Equal(t, `host='db.local' port='5432' user='tsma' password='it\'s a secret\\' dbname='tsma_client' sslmode='disable'`, dsn)
}

func TestDSNSkipsEmptyValues(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "localhost", Port: 5432, Name: "tsma_client"})
	assert.Equal(t, `host='localhost' port='5432' dbname='tsma_client'`, dsn)
}
