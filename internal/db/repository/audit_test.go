package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamscao/certauth/internal/db"
	"github.com/adamscao/certauth/internal/models"
)

func newTestRepo(t *testing.T) *AuditRepository {
	t.Helper()

	database, err := db.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database))
	return NewAuditRepository(database.DB)
}

func TestCreateAndList(t *testing.T) {
	repo := newTestRepo(t)

	entry := &models.AuditLog{
		Action:      models.ActionCertAuth,
		Username:    "alice",
		Fingerprint: "SHA256:abc",
		Serial:      42,
		KeyID:       "alice@example.com",
		Success:     true,
	}
	require.NoError(t, repo.Create(entry))
	assert.NotZero(t, entry.ID)

	logs, err := repo.List("alice", "", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "alice", logs[0].Username)
	assert.Equal(t, uint64(42), logs[0].Serial)
	assert.Equal(t, "SHA256:abc", logs[0].Fingerprint)
	assert.True(t, logs[0].Success)
}

func TestListFilters(t *testing.T) {
	repo := newTestRepo(t)

	entries := []*models.AuditLog{
		{Action: models.ActionCertAuth, Username: "alice", Success: true},
		{Action: models.ActionCertAuth, Username: "bob", Success: false, Reason: "Certificate has expired"},
		{Action: models.ActionCertCheck, Username: "alice", Success: true},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(e))
	}

	byUser, err := repo.List("alice", "", 10)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byAction, err := repo.List("", models.ActionCertCheck, 10)
	require.NoError(t, err)
	assert.Len(t, byAction, 1)

	both, err := repo.List("alice", models.ActionCertAuth, 10)
	require.NoError(t, err)
	assert.Len(t, both, 1)

	limited, err := repo.List("", "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListFailures(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Create(&models.AuditLog{
		Action: models.ActionCertAuth, Username: "alice", Success: true,
	}))
	require.NoError(t, repo.Create(&models.AuditLog{
		Action: models.ActionCertAuth, Username: "bob", Success: false, Reason: "Certificate has expired",
	}))

	failures, err := repo.ListFailures(time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "bob", failures[0].Username)
	assert.Contains(t, failures[0].Reason, "expired")
}

func TestCountByAction(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.AuditLog{
			Action: models.ActionCertAuth, Success: true,
		}))
	}

	count, err := repo.CountByAction(models.ActionCertAuth, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestDeleteOld(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Create(&models.AuditLog{
		Action: models.ActionCertAuth, Success: true,
	}))

	deleted, err := repo.DeleteOld(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = repo.DeleteOld(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
