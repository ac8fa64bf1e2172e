package token

import (
	"os"
	"strings"
	"testing"
	"time"
	"voter-registration-backend/utils"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := utils.InitializeDateLocation(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestPasetoMakerRoundTrip(t *testing.T) {
	maker, err := NewPasetoMaker(strings.Repeat("a", 32))
	require.NoError(t, err)

	email := "officer@comelec.gov.ph"
	created, err := maker.CreateToken(email, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, created)

	payload, err := maker.VerifyToken(created)
	require.NoError(t, err)
	require.Equal(t, email, payload.Email)
	require.WithinDuration(t, payload.IssuedAt.Add(time.Minute), payload.ExpiredAt, time.Second)
}

func TestPasetoMakerRejectsExpiredToken(t *testing.T) {
	maker, err := NewPasetoMaker(strings.Repeat("a", 32))
	require.NoError(t, err)

	created, err := maker.CreateToken("officer@comelec.gov.ph", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	payload, err := maker.VerifyToken(created)
	require.Nil(t, payload)
	require.ErrorIs(t, err, ErrExpired)
}

func TestPasetoMakerRejectsShortKey(t *testing.T) {
	_, err := NewPasetoMaker("too-short")
	require.Error(t, err)
}

func TestPasetoMakerRejectsTamperedToken(t *testing.T) {
	maker, err := NewPasetoMaker(strings.Repeat("a", 32))
	require.NoError(t, err)

	created, err := maker.CreateToken("officer@comelec.gov.ph", time.Minute)
	require.NoError(t, err)

	other, err := NewPasetoMaker(strings.Repeat("b", 32))
	require.NoError(t, err)

	_, err = other.VerifyToken(created)
	require.Error(t, err)
}
