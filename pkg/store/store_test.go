package store

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FurryKamenomi/icqq-dev/pkg/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "client.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDeviceRoundTrip(t *testing.T) {
	s := openTestStore(t)

	d := session.NewDevice("store-seed")
	require.NoError(t, s.SaveDevice(10000, d))

	got, err := s.Device(10000)
	require.NoError(t, err)
	assert.Equal(t, d.IMEI, got.IMEI)
	assert.Equal(t, d.GUID, got.GUID)
	assert.Equal(t, d.Fingerprint, got.Fingerprint)
}

func TestDeviceNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Device(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeviceUpsert(t *testing.T) {
	s := openTestStore(t)

	d := session.NewDevice("first")
	require.NoError(t, s.SaveDevice(10000, d))

	d.Model = "replacement"
	require.NoError(t, s.SaveDevice(10000, d))

	got, err := s.Device(10000)
	require.NoError(t, err)
	assert.Equal(t, "replacement", got.Model)
}

func TestTicketRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveTicket(10000, TicketTGT, []byte("tgt-bytes")))
	got, err := s.Ticket(10000, TicketTGT)
	require.NoError(t, err)
	assert.Equal(t, []byte("tgt-bytes"), got)

	_, err = s.Ticket(10000, TicketD2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSigRoundTrip(t *testing.T) {
	s := openTestStore(t)

	sig := session.NewSig(10000)
	sig.TGT = []byte("tgt")
	sig.D2 = []byte("d2")
	sig.D2Key = []byte("0123456789abcdef")
	sig.Ksid = []byte("ksid")
	sig.Tgtgt = []byte("fedcba9876543210")
	require.NoError(t, s.SaveSig(sig))

	got, err := s.LoadSig(10000)
	require.NoError(t, err)
	assert.Equal(t, sig.TGT, got.TGT)
	assert.Equal(t, sig.D2, got.D2)
	assert.Equal(t, sig.D2Key, got.D2Key)
	assert.Equal(t, sig.Ksid, got.Ksid)
	assert.Equal(t, sig.Tgtgt, got.Tgtgt)

	// Sequence state never persists; a restored session starts fresh.
	assert.Equal(t, uint32(0), got.Seq)
}

func TestLoadSigPartial(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveTicket(10000, TicketKsid, []byte("only-ksid")))
	got, err := s.LoadSig(10000)
	require.NoError(t, err)
	assert.Equal(t, []byte("only-ksid"), got.Ksid)
	assert.Empty(t, got.TGT)
}
