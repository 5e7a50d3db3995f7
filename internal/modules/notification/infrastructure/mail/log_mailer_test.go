package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogMailer_Send(t *testing.T) {
	m := NewLogMailer()
	assert.NoError(t, m.Send(context.Background(), "ops@example.com", "subject", "body"))
	assert.Error(t, m.Send(context.Background(), "  ", "subject", "body"))
}
