package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildHTMLTemplate_EscapesAndBreaksLines(t *testing.T) {
	out := buildHTMLTemplate("Sparkle Cleaning", "Hi <Jane>,\nsee you Tuesday")

	assert.Contains(t, out, "Sparkle Cleaning")
	assert.Contains(t, out, "Hi &lt;Jane&gt;,<br />see you Tuesday")
	assert.NotContains(t, out, "<Jane>")
}

func TestBuildHTMLTemplate_DefaultBrand(t *testing.T) {
	assert.Contains(t, buildHTMLTemplate("", "x"), "Your service team")
}

func TestNewEmailSender_TLSByPort(t *testing.T) {
	assert.True(t, NewEmailSender("smtp.example.com", 465, "u", "p", "", "").dialer.SSL)
	s := NewEmailSender("smtp.example.com", 587, "u", "p", "", "")
	assert.False(t, s.dialer.SSL)
	assert.Equal(t, "u", s.from)
}

func TestSend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewEmailSender("127.0.0.1", 1, "", "", "a@b.c", "").Send(ctx, "x@y.z", "s", "b")
	assert.ErrorIs(t, err, context.Canceled)
}
