package mail

import (
	"context"
	"errors"
	"strings"

	"AeroComply/pkg/zlog"

	"go.uber.org/zap"
)

var errNoRecipient = errors.New("mail: empty recipient")

// LogMailer 只记录日志的邮件实现，真实投递由外部邮件服务负责
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return errNoRecipient
	}
	zlog.Info("mail queued",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_len", len(body)))
	return nil
}
