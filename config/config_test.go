package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	c := map[string]string{"PORT": "9090"}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(c, "MISSING", "8080"))
	assert.Equal(t, "8080", GetString(nil, "PORT", "8080"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"TIMEOUT": "30", "BAD": "thirty"}

	assert.Equal(t, 30, GetInt(c, "TIMEOUT", 180))
	assert.Equal(t, 180, GetInt(c, "BAD", 180))
	assert.Equal(t, 180, GetInt(c, "MISSING", 180))
}

func TestGetDuration(t *testing.T) {
	c := map[string]string{"ACCESS_TOKEN_TTL": "15m", "BAD": "soon"}

	assert.Equal(t, 15*time.Minute, GetDuration(c, "ACCESS_TOKEN_TTL", time.Hour))
	assert.Equal(t, time.Hour, GetDuration(c, "BAD", time.Hour))
	assert.Equal(t, time.Hour, GetDuration(c, "MISSING", time.Hour))
}
