package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careers-portal-backend/internal/models"
	"careers-portal-backend/internal/storage"
)

type fakeSyncer struct {
	createErr error
	uploadErr error

	createdApp   *models.Application
	uploadedID   string
	uploadedPath string
}

func (f *fakeSyncer) CreateCandidate(app *models.Application) (string, error) {
	f.createdApp = app
	if f.createErr != nil {
		return "", f.createErr
	}
	return "zoho-123", nil
}

func (f *fakeSyncer) UploadAttachment(candidateID, absPath string) error {
	f.uploadedID = candidateID
	f.uploadedPath = absPath
	return f.uploadErr
}

func syncFixture(t *testing.T, syncer CandidateSyncer) (*SyncService, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewSyncService(syncer, store), store
}

func TestRunMirrorsCandidateAndResume(t *testing.T) {
	syncer := &fakeSyncer{}
	svc, store := syncFixture(t, syncer)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir, "cv_1.pdf"), []byte("%PDF"), 0o644))

	app := &models.Application{ID: 9, ResumePath: "cv_1.pdf"}
	result := svc.Run(app)

	assert.True(t, result.Synced)
	assert.Equal(t, "zoho-123", result.CandidateID)
	assert.Empty(t, result.Reason)
	assert.Equal(t, app, syncer.createdApp)
	assert.Equal(t, "zoho-123", syncer.uploadedID)
	assert.Equal(t, filepath.Join(store.Dir, "cv_1.pdf"), syncer.uploadedPath)
}

func TestRunSkipsUploadWithoutResume(t *testing.T) {
	syncer := &fakeSyncer{}
	svc, _ := syncFixture(t, syncer)

	result := svc.Run(&models.Application{ID: 9})

	assert.True(t, result.Synced)
	assert.Empty(t, syncer.uploadedID)
}

func TestRunAbsorbsCreateFailure(t *testing.T) {
	syncer := &fakeSyncer{createErr: errors.New("zoho: POST /Candidates failed 401")}
	svc, _ := syncFixture(t, syncer)

	result := svc.Run(&models.Application{ID: 9, ResumePath: "cv_1.pdf"})

	assert.False(t, result.Synced)
	assert.Contains(t, result.Reason, "failed 401")
	// Never attempt the attachment after a failed create.
	assert.Empty(t, syncer.uploadedID)
}

func TestRunAbsorbsUploadFailure(t *testing.T) {
	syncer := &fakeSyncer{uploadErr: errors.New("zoho: attachment rejected")}
	svc, store := syncFixture(t, syncer)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir, "cv_1.pdf"), []byte("%PDF"), 0o644))

	result := svc.Run(&models.Application{ID: 9, ResumePath: "cv_1.pdf"})

	assert.False(t, result.Synced)
	assert.Equal(t, "zoho-123", result.CandidateID)
	assert.Contains(t, result.Reason, "attachment rejected")
}

func TestLastResultTracksMostRecentOutcome(t *testing.T) {
	syncer := &fakeSyncer{}
	svc, _ := syncFixture(t, syncer)

	assert.Nil(t, svc.LastResult())

	svc.Run(&models.Application{ID: 1})
	syncer.createErr = errors.New("boom")
	svc.Run(&models.Application{ID: 2})

	last := svc.LastResult()
	require.NotNil(t, last)
	assert.EqualValues(t, 2, last.ApplicationID)
	assert.False(t, last.Synced)
	assert.Equal(t, "boom", last.Reason)
}
