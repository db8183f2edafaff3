package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogMailer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewLogMailer("from@example.com", zap.New(core))

	require.NoError(t, m.Send(context.Background(), []string{"to@example.com"}, "Hello", "body"))

	entries := logs.FilterMessage("Mail").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Hello", fields["subject"])
	assert.Equal(t, "from@example.com", fields["from"])
}

func TestSMTPMailer(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Addr: "smtp.example.com:587", Username: "u", Password: "p", From: "from@example.com"})

	var gotAddr string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotMsg = msg
		assert.NotNil(t, a)
		assert.Equal(t, []string{"to@example.com"}, to)
		return nil
	}

	require.NoError(t, m.Send(context.Background(), []string{"to@example.com"}, "Welcome", "line one\nline two"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	msg := string(gotMsg)
	assert.True(t, strings.HasPrefix(msg, "From: from@example.com\r\n"))
	assert.Contains(t, msg, "Subject: Welcome\r\n")
	assert.Contains(t, msg, "line one\r\nline two")

	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay down") }
	assert.ErrorContains(t, m.Send(context.Background(), []string{"to@example.com"}, "x", "y"), "relay down")
	assert.Error(t, m.Send(context.Background(), nil, "x", "y"))
}
