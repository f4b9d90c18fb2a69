package biometrics

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"frigotec.com/frigotec/ponto/core"
)

// DefaultTimeout bounds one verification call. The upstream flow had
// none; expiry surfaces as a service error, not a mismatch.
const DefaultTimeout = 20 * time.Second

const instruction = `Compare the person in the first photo (live capture) with the person in the second photo (reference).
Decide whether they are the same person.
Respond with ONLY a JSON object, no markdown, no explanation:
{"match": <boolean>, "confidence": <number between 0 and 1>}`

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Verifier asks the vision model for a same-person verdict over two
// JPEG frames. It returns the raw verdict; the acceptance threshold is
// the recorder's decision.
type Verifier struct {
	g       *genkit.Genkit
	timeout time.Duration
}

func New(ctx context.Context, cfg Config) *Verifier {
	model := cfg.Model
	if model == "" {
		model = "googleai/gemini-2.5-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	g := genkit.Init(ctx,
		genkit.WithPlugins(&googlegenai.GoogleAI{APIKey: cfg.APIKey}),
		genkit.WithDefaultModel(model),
	)

	return &Verifier{g: g, timeout: timeout}
}

// Verify sends both images with the instruction and parses the strict
// JSON verdict. Any transport failure, timeout, or response that is
// not exactly {match, confidence} is an error for this attempt,
// distinct from a mismatch.
func (v *Verifier) Verify(ctx context.Context, live, reference []byte) (core.VerifyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	resp, err := genkit.Generate(ctx, v.g,
		ai.WithMessages(ai.NewUserMessage(
			ai.NewMediaPart("image/jpeg", dataURL(live)),
			ai.NewMediaPart("image/jpeg", dataURL(reference)),
			ai.NewTextPart(instruction),
		)),
	)
	if err != nil {
		return core.VerifyResult{}, fmt.Errorf("face similarity call: %w", err)
	}

	return parseVerdict(resp.Text())
}

func dataURL(jpeg []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)
}

type verdict struct {
	Match      *bool    `json:"match"`
	Confidence *float64 `json:"confidence"`
}

func parseVerdict(text string) (core.VerifyResult, error) {
	raw := strings.TrimSpace(text)

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var v verdict
	if err := dec.Decode(&v); err != nil {
		return core.VerifyResult{}, fmt.Errorf("malformed verdict %q: %w", raw, err)
	}
	if dec.More() {
		return core.VerifyResult{}, fmt.Errorf("trailing content in verdict %q", raw)
	}
	if v.Match == nil || v.Confidence == nil {
		return core.VerifyResult{}, fmt.Errorf("incomplete verdict %q", raw)
	}
	if *v.Confidence < 0 || *v.Confidence > 1 {
		return core.VerifyResult{}, fmt.Errorf("confidence out of range in verdict %q", raw)
	}

	return core.VerifyResult{Match: *v.Match, Confidence: *v.Confidence}, nil
}
