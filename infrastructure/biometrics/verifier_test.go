package biometrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		match      bool
		confidence float64
		wantErr    bool
	}{
		{name: "accept", text: `{"match": true, "confidence": 0.92}`, match: true, confidence: 0.92},
		{name: "reject", text: `{"match": false, "confidence": 0.31}`, match: false, confidence: 0.31},
		{name: "surrounding whitespace tolerated", text: "  {\"match\": true, \"confidence\": 1}\n", match: true, confidence: 1},
		{name: "markdown fence is fatal", text: "```json\n{\"match\": true, \"confidence\": 0.9}\n```", wantErr: true},
		{name: "prose is fatal", text: "The faces match with high confidence.", wantErr: true},
		{name: "extra field is fatal", text: `{"match": true, "confidence": 0.9, "reason": "same"}`, wantErr: true},
		{name: "missing confidence is fatal", text: `{"match": true}`, wantErr: true},
		{name: "missing match is fatal", text: `{"confidence": 0.9}`, wantErr: true},
		{name: "confidence above range is fatal", text: `{"match": true, "confidence": 1.2}`, wantErr: true},
		{name: "negative confidence is fatal", text: `{"match": true, "confidence": -0.1}`, wantErr: true},
		{name: "trailing content is fatal", text: `{"match": true, "confidence": 0.9} ok`, wantErr: true},
		{name: "empty response is fatal", text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVerdict(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.match, got.Match)
			assert.Equal(t, tt.confidence, got.Confidence)
		})
	}
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:image/jpeg;base64,aGk=", dataURL([]byte("hi")))
}
