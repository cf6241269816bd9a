package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewAccountRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewAccountRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewFacilityRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewFacilityRepository(pool)
	assert.NotNil(t, repo)
}
