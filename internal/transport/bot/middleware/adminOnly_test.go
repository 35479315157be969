package middleware

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"
)

func TestSenderID(t *testing.T) {
	rq := require.New(t)

	rq.Equal(int64(1), senderID(telego.Update{Message: &telego.Message{From: &telego.User{ID: 1}}}))
	rq.Equal(int64(2), senderID(telego.Update{CallbackQuery: &telego.CallbackQuery{From: telego.User{ID: 2}}}))
	rq.Zero(senderID(telego.Update{Message: &telego.Message{}}), "channel posts have no sender")
	rq.Zero(senderID(telego.Update{}))
}
