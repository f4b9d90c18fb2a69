package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"frigotec.com/frigotec/ponto/model"
)

// DefaultMinConfidence is the biometric acceptance threshold.
const DefaultMinConfidence = 0.7

// EventStore is the append-only attendance stream.
type EventStore interface {
	LatestEvent(ctx context.Context, userID string) (*model.ClockEvent, error)
	Append(ctx context.Context, event *model.ClockEvent) error
}

// EvidenceStore persists the captured frame and returns a retrievable
// URL. An uploaded frame whose event append later fails is left behind
// unreferenced; that is accepted, a committed event without completed
// verification is not.
type EvidenceStore interface {
	SaveFrame(ctx context.Context, userID string, capturedAt time.Time, frame []byte) (string, error)
}

// VerifyResult is the raw verdict of the face-similarity collaborator.
type VerifyResult struct {
	Match      bool
	Confidence float64
}

// FaceVerifier compares a live capture against the stored reference.
// An error means the service itself failed (transport, malformed
// output, timeout); a non-match is not an error.
type FaceVerifier interface {
	Verify(ctx context.Context, live, reference []byte) (VerifyResult, error)
}

// RegisterRequest carries one registration attempt. Reference is the
// profile's stored avatar bytes, nil when the profile has none.
// Position is nil when the GPS fix failed upstream.
type RegisterRequest struct {
	UserID       string
	Frame        []byte
	Reference    []byte
	Position     *Position
	Zones        []model.WorkLocation
	GlobalBypass bool

	// ExpectedAction, when set, must match the derived next action.
	// Makes a double-submitted form harmless: the second attempt fails
	// instead of writing a duplicate event type.
	ExpectedAction string
}

// Recorder orchestrates capture -> geofence -> biometric -> persist.
// No partial event is ever persisted: every gate runs before any
// write, and the event row is only appended after the evidence upload
// succeeded.
type Recorder struct {
	events        EventStore
	evidence      EvidenceStore
	verifier      FaceVerifier
	minConfidence float64
	now           func() time.Time
	log           *zap.Logger
}

func NewRecorder(events EventStore, evidence EvidenceStore, verifier FaceVerifier, log *zap.Logger) *Recorder {
	return &Recorder{
		events:        events,
		evidence:      evidence,
		verifier:      verifier,
		minConfidence: DefaultMinConfidence,
		now:           time.Now,
		log:           log,
	}
}

// WithMinConfidence overrides the biometric threshold (config driven).
func (r *Recorder) WithMinConfidence(min float64) *Recorder {
	if min > 0 {
		r.minConfidence = min
	}
	return r
}

// WithClock overrides time acquisition, for tests.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Register runs one attempt end to end and returns the created event.
// All failures carry a taxonomy code and leave no event behind.
func (r *Recorder) Register(ctx context.Context, req RegisterRequest) (*model.ClockEvent, error) {
	last, err := r.events.LatestEvent(ctx, req.UserID)
	if err != nil {
		return nil, NewStoreWriteFailure(err)
	}
	action := NextAction(last)

	if req.ExpectedAction != "" && req.ExpectedAction != action {
		r.log.Warn("stale registration attempt",
			zap.String("user_id", req.UserID),
			zap.String("expected", req.ExpectedAction),
			zap.String("derived", action))
		return nil, NewStoreWriteFailure(errStaleAction)
	}

	zone := MatchZone(req.Position, req.Zones, req.GlobalBypass)
	if zone == nil {
		return nil, ErrOutOfPerimeter
	}

	if len(req.Reference) == 0 {
		// Fail fast, do not spend a verification call.
		return nil, ErrNoReferencePhoto
	}

	verdict, err := r.verifier.Verify(ctx, req.Frame, req.Reference)
	if err != nil {
		r.log.Error("face verification service failed",
			zap.String("user_id", req.UserID), zap.Error(err))
		return nil, NewBiometricServiceError(err)
	}
	if !verdict.Match || verdict.Confidence < r.minConfidence {
		r.log.Info("face verification rejected",
			zap.String("user_id", req.UserID),
			zap.Bool("match", verdict.Match),
			zap.Float64("confidence", verdict.Confidence))
		return nil, NewBiometricMismatch(verdict.Confidence)
	}

	capturedAt := r.now()
	photoURL, err := r.evidence.SaveFrame(ctx, req.UserID, capturedAt, req.Frame)
	if err != nil {
		return nil, NewStoreWriteFailure(err)
	}

	event := &model.ClockEvent{
		UserID:            req.UserID,
		Type:              action,
		LocationID:        &zone.ID,
		PhotoEvidenceURL:  &photoURL,
		BiometricVerified: true,
	}
	if req.Position != nil {
		event.Latitude = &req.Position.Latitude
		event.Longitude = &req.Position.Longitude
	}

	if err := r.events.Append(ctx, event); err != nil {
		// The uploaded frame stays behind unreferenced.
		r.log.Error("event append failed after evidence upload",
			zap.String("user_id", req.UserID),
			zap.String("evidence", photoURL),
			zap.Error(err))
		return nil, NewStoreWriteFailure(err)
	}

	r.log.Info("clock event recorded",
		zap.String("user_id", req.UserID),
		zap.String("type", action),
		zap.String("location", zone.ID),
		zap.Float64("confidence", verdict.Confidence))

	return event, nil
}

var errStaleAction = &staleActionError{}

type staleActionError struct{}

func (*staleActionError) Error() string {
	return "derived action changed since the form was rendered"
}
