package services

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"careers-portal-backend/internal/models"
	"careers-portal-backend/internal/storage"
)

// CandidateSyncer is the slice of the CRM client the orchestrator needs.
type CandidateSyncer interface {
	CreateCandidate(app *models.Application) (string, error)
	UploadAttachment(candidateID, absPath string) error
}

// SyncResult is the explicit outcome of one mirroring attempt. The
// local insert is the authoritative success signal; this is advisory.
type SyncResult struct {
	ApplicationID uint      `json:"application_id"`
	Synced        bool      `json:"synced"`
	CandidateID   string    `json:"candidate_id,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	At            time.Time `json:"at"`
}

// SyncService mirrors stored applications into the CRM, best-effort.
// It runs strictly after the local insert has committed, never rolls
// that insert back, and never propagates an error to the HTTP layer.
type SyncService struct {
	client CandidateSyncer
	store  *storage.Store

	mu   sync.Mutex
	last *SyncResult
}

func NewSyncService(client CandidateSyncer, store *storage.Store) *SyncService {
	return &SyncService{client: client, store: store}
}

// Run creates the candidate record and, if that succeeded and a resume
// exists, uploads it as an attachment. Failures are logged and recorded
// in the result, nothing more.
func (s *SyncService) Run(app *models.Application) SyncResult {
	result := SyncResult{ApplicationID: app.ID, At: time.Now()}

	candidateID, err := s.client.CreateCandidate(app)
	if err != nil {
		result.Reason = err.Error()
		log.WithFields(log.Fields{
			"application_id": app.ID,
			"error":          err,
		}).Error("CRM sync: create candidate failed")
		s.record(result)
		return result
	}
	result.CandidateID = candidateID

	if app.ResumePath != "" {
		abs, err := s.store.Resolve(app.ResumePath)
		if err == nil {
			err = s.client.UploadAttachment(candidateID, abs)
		}
		if err != nil {
			result.Reason = err.Error()
			log.WithFields(log.Fields{
				"application_id": app.ID,
				"candidate_id":   candidateID,
				"error":          err,
			}).Error("CRM sync: attachment upload failed")
			s.record(result)
			return result
		}
	}

	result.Synced = true
	log.WithFields(log.Fields{
		"application_id": app.ID,
		"candidate_id":   candidateID,
	}).Info("CRM sync: candidate mirrored")
	s.record(result)
	return result
}

// LastResult returns the most recent outcome, or nil if no sync has
// run yet. Exposed for diagnostics only.
func (s *SyncService) LastResult() *SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	copied := *s.last
	return &copied
}

func (s *SyncService) record(r SyncResult) {
	s.mu.Lock()
	s.last = &r
	s.mu.Unlock()
}
