package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"frigotec.com/frigotec/ponto/model"
)

type fakeEventStore struct {
	latest    *model.ClockEvent
	latestErr error
	appendErr error
	appended  []*model.ClockEvent
}

func (f *fakeEventStore) LatestEvent(ctx context.Context, userID string) (*model.ClockEvent, error) {
	return f.latest, f.latestErr
}

func (f *fakeEventStore) Append(ctx context.Context, event *model.ClockEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, event)
	return nil
}

type fakeEvidenceStore struct {
	err   error
	saved int
}

func (f *fakeEvidenceStore) SaveFrame(ctx context.Context, userID string, capturedAt time.Time, frame []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved++
	return "https://evidence.frigotec.com.br/ponto/" + userID + ".jpg", nil
}

type fakeVerifier struct {
	result VerifyResult
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(ctx context.Context, live, reference []byte) (VerifyResult, error) {
	f.calls++
	return f.result, f.err
}

func validRequest() RegisterRequest {
	return RegisterRequest{
		UserID:    "u1",
		Frame:     []byte("live-jpeg"),
		Reference: []byte("reference-jpeg"),
		Position:  &Position{Latitude: hq.Latitude, Longitude: hq.Longitude},
		Zones:     []model.WorkLocation{hq},
	}
}

func newTestRecorder(events *fakeEventStore, evidence *fakeEvidenceStore, verifier *fakeVerifier) *Recorder {
	return NewRecorder(events, evidence, verifier, zap.NewNop())
}

func TestRegisterSuccess(t *testing.T) {
	events := &fakeEventStore{}
	evidence := &fakeEvidenceStore{}
	verifier := &fakeVerifier{result: VerifyResult{Match: true, Confidence: 0.93}}

	got, err := newTestRecorder(events, evidence, verifier).Register(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.NotNil(t, got)

	assert.Equal(t, model.EventEntry, got.Type)
	assert.True(t, got.BiometricVerified)
	assert.Equal(t, "matriz", *got.LocationID)
	assert.NotNil(t, got.PhotoEvidenceURL)
	assert.NotNil(t, got.Latitude)
	assert.Len(t, events.appended, 1)
}

func TestRegisterDerivesActionFromHistory(t *testing.T) {
	events := &fakeEventStore{latest: eventOf(model.EventEntry, time.Now())}
	verifier := &fakeVerifier{result: VerifyResult{Match: true, Confidence: 0.9}}

	got, err := newTestRecorder(events, &fakeEvidenceStore{}, verifier).Register(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.Equal(t, model.EventLunchStart, got.Type)
}

func TestRegisterOutOfPerimeter(t *testing.T) {
	events := &fakeEventStore{}
	verifier := &fakeVerifier{result: VerifyResult{Match: true, Confidence: 0.99}}

	req := validRequest()
	req.Position = &Position{Latitude: 10, Longitude: 10}

	_, err := newTestRecorder(events, &fakeEvidenceStore{}, verifier).Register(context.Background(), req)
	re, ok := AsRegistrationError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeOutOfPerimeter, re.Code)
	assert.Empty(t, events.appended)
	assert.Zero(t, verifier.calls, "geofence rejection must not spend a verification call")
}

func TestRegisterNoGPSBlocksNonAdmin(t *testing.T) {
	req := validRequest()
	req.Position = nil

	_, err := newTestRecorder(&fakeEventStore{}, &fakeEvidenceStore{}, &fakeVerifier{}).Register(context.Background(), req)
	re, _ := AsRegistrationError(err)
	assert.Equal(t, CodeOutOfPerimeter, re.Code)
}

func TestRegisterAdminBypassesPerimeter(t *testing.T) {
	events := &fakeEventStore{}
	verifier := &fakeVerifier{result: VerifyResult{Match: true, Confidence: 0.9}}

	req := validRequest()
	req.Position = nil
	req.Zones = nil
	req.GlobalBypass = true

	got, err := newTestRecorder(events, &fakeEvidenceStore{}, verifier).Register(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, model.LocationGlobal, *got.LocationID)
	assert.Nil(t, got.Latitude)
}

func TestRegisterNoReferencePhotoFailsFast(t *testing.T) {
	verifier := &fakeVerifier{result: VerifyResult{Match: true, Confidence: 1}}

	req := validRequest()
	req.Reference = nil

	_, err := newTestRecorder(&fakeEventStore{}, &fakeEvidenceStore{}, verifier).Register(context.Background(), req)
	re, _ := AsRegistrationError(err)
	assert.Equal(t, CodeNoReferencePhoto, re.Code)
	assert.Zero(t, verifier.calls, "missing reference must not spend a verification call")
}

func TestRegisterBiometricRejection(t *testing.T) {
	tests := []struct {
		name   string
		result VerifyResult
	}{
		{name: "explicit mismatch", result: VerifyResult{Match: false, Confidence: 0.2}},
		{name: "match below threshold", result: VerifyResult{Match: true, Confidence: 0.69}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &fakeEventStore{}
			evidence := &fakeEvidenceStore{}
			verifier := &fakeVerifier{result: tt.result}

			_, err := newTestRecorder(events, evidence, verifier).Register(context.Background(), validRequest())
			re, ok := AsRegistrationError(err)
			assert.True(t, ok)
			assert.Equal(t, CodeBiometricMismatch, re.Code)
			assert.Equal(t, tt.result.Confidence, re.Confidence)
			assert.Empty(t, events.appended)
			assert.Zero(t, evidence.saved, "rejected capture must not be stored")
		})
	}
}

func TestRegisterBiometricServiceError(t *testing.T) {
	events := &fakeEventStore{}
	verifier := &fakeVerifier{err: errors.New("inference timeout")}

	_, err := newTestRecorder(events, &fakeEvidenceStore{}, verifier).Register(context.Background(), validRequest())
	re, _ := AsRegistrationError(err)
	assert.Equal(t, CodeBiometricServiceError, re.Code)
	assert.True(t, re.Retryable())
	assert.Empty(t, events.appended)
}

func TestRegisterEvidenceUploadFailure(t *testing.T) {
	events := &fakeEventStore{}
	evidence := &fakeEvidenceStore{err: errors.New("s3 unavailable")}
	verifier := &fakeVerifier{result: VerifyResult{Match: true, Confidence: 0.9}}

	_, err := newTestRecorder(events, evidence, verifier).Register(context.Background(), validRequest())
	re, _ := AsRegistrationError(err)
	assert.Equal(t, CodeStoreWriteFailure, re.Code)
	assert.Empty(t, events.appended, "no event row without its evidence")
}

func TestRegisterAppendFailureLeavesNoEvent(t *testing.T) {
	events := &fakeEventStore{appendErr: errors.New("permission denied")}
	evidence := &fakeEvidenceStore{}
	verifier := &fakeVerifier{result: VerifyResult{Match: true, Confidence: 0.9}}

	_, err := newTestRecorder(events, evidence, verifier).Register(context.Background(), validRequest())
	re, _ := AsRegistrationError(err)
	assert.Equal(t, CodeStoreWriteFailure, re.Code)
	// The uploaded frame may remain, unreferenced; that is accepted.
	assert.Equal(t, 1, evidence.saved)
	assert.Empty(t, events.appended)
}

func TestRegisterStaleExpectedAction(t *testing.T) {
	events := &fakeEventStore{latest: eventOf(model.EventEntry, time.Now())}
	verifier := &fakeVerifier{result: VerifyResult{Match: true, Confidence: 0.9}}

	req := validRequest()
	req.ExpectedAction = model.EventEntry // form rendered before the entry landed

	_, err := newTestRecorder(events, &fakeEvidenceStore{}, verifier).Register(context.Background(), req)
	assert.Error(t, err)
	assert.Empty(t, events.appended)
}

func TestRegisterCustomThreshold(t *testing.T) {
	events := &fakeEventStore{}
	verifier := &fakeVerifier{result: VerifyResult{Match: true, Confidence: 0.75}}

	rec := newTestRecorder(events, &fakeEvidenceStore{}, verifier).WithMinConfidence(0.8)
	_, err := rec.Register(context.Background(), validRequest())
	re, _ := AsRegistrationError(err)
	assert.Equal(t, CodeBiometricMismatch, re.Code)
}
