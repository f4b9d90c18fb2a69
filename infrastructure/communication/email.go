package communication

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailInfo struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// SendEmail delivers a plain-text alert via SES. Used by the shift
// monitor for force-close notifications to the admins.
func SendEmail(ctx context.Context, info *EmailInfo) error {
	raw := buildEmailBuffer(info)

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	client := ses.NewFromConfig(cfg)

	_, err = client.SendRawEmail(
		ctx,
		&ses.SendRawEmailInput{
			RawMessage: &types.RawMessage{
				Data: raw.Bytes(),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildEmailBuffer(info *EmailInfo) *bytes.Buffer {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", info.From)
	for i, to := range info.To {
		if i == 0 {
			fmt.Fprintf(&buf, "To: %s", to)
		} else {
			fmt.Fprintf(&buf, ", %s", to)
		}
	}
	buf.WriteString("\r\n")
	fmt.Fprintf(&buf, "Subject: %s\r\n", info.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(info.Body)
	buf.WriteString("\r\n")
	return &buf
}
