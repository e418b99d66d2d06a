package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("unique something"), want: false},
		{name: "other pg code", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, want: true},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestNewPgUserRepository(t *testing.T) {
	repo := NewPgUserRepository(nil)

	assert.NotNil(t, repo)
	assert.Nil(t, repo.pool)

	var _ UserRepository = repo
}
