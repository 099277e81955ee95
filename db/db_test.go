package db_test

import (
	"testing"

	"cratedig/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	database := openTestDB(t)

	value, err := database.Setting("missing")
	require.NoError(t, err)
	assert.Equal(t, "", value, "absent keys read as empty, not as an error")

	require.NoError(t, database.SetSetting("discogs_token", "tok-1"))
	require.NoError(t, database.SetSetting("discogs_token", "tok-2"))

	value, err = database.Setting("discogs_token")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", value)

	assert.Error(t, database.SetSetting("", "nope"))
}

func TestDiscogsTokenHelpers(t *testing.T) {
	database := openTestDB(t)

	token, err := database.DiscogsToken()
	require.NoError(t, err)
	assert.Equal(t, "", token)

	require.NoError(t, database.SetDiscogsToken("secret"))
	token, err = database.DiscogsToken()
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
}

func TestJobLifecycle(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, database.CreateJob("job-1", "lagos-records"))
	require.NoError(t, database.FinishJob("job-1", data.JobCompleted, 12, 10, 12, ""))

	jobs, err := database.RecentJobs(10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, "lagos-records", job.Seller)
	assert.Equal(t, data.JobCompleted, job.Status)
	assert.Equal(t, int64(12), job.AlbumsAdded)
	assert.Equal(t, int64(10), job.AlbumsUpdated)
	assert.True(t, job.FinishedAt.Valid)

	assert.Error(t, database.CreateJob("", "lagos-records"))
}

func TestFinishJobRecordsFailure(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, database.CreateJob("job-2", "lagos-records"))
	require.NoError(t, database.FinishJob("job-2", data.JobFailed, 3, 0, 20, "rate limit exceeded"))

	jobs, err := database.RecentJobs(1)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, data.JobFailed, jobs[0].Status)
	assert.Equal(t, "rate limit exceeded", jobs[0].Error)
}
