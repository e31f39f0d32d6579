package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkeye/ctinotify/internal/core"
)

var (
	_ core.Directory         = (*Directory)(nil)
	_ core.Authorizer        = (*Directory)(nil)
	_ core.StreamingResolver = (*Directory)(nil)
)

const testDirectoryYAML = `
users:
  bob:
    extensions: ["201"]
  alice:
    extensions: ["201", "202"]
    auto_answer: true
    phonebook: true
    streaming: [door]
extensions:
  "201":
    webrtc: true
    auto_answer: true
streaming:
  door:
    number: "300"
    url: rtsp://cam.local/door
    description: Front door
    open: true
`

func TestParse_Lookups(t *testing.T) {
	ctx := context.Background()
	d, err := Parse([]byte(testDirectoryYAML))
	require.NoError(t, err)

	owners, err := d.UsersOwningExtension(ctx, "201")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, owners)
	owners, _ = d.UsersOwningExtension(ctx, "999")
	assert.Empty(t, owners)

	ok, _ := d.IsWebrtcExtension(ctx, "201")
	assert.True(t, ok)
	ok, _ = d.IsWebrtcExtension(ctx, "202")
	assert.False(t, ok)
	ok, _ = d.AgentSupportsAutoAnswer(ctx, "201")
	assert.True(t, ok)

	ok, _ = d.AutoAnswerEnabled(ctx, "alice")
	assert.True(t, ok)
	ok, _ = d.HasPhonebookAuthorization(ctx, "bob")
	assert.False(t, ok)
	ok, _ = d.HasStreamingAuthorization(ctx, "alice", "door")
	assert.True(t, ok)
	ok, _ = d.HasStreamingAuthorization(ctx, "bob", "door")
	assert.False(t, ok)
}

func TestParse_Streaming(t *testing.T) {
	ctx := context.Background()
	d, err := Parse([]byte(testDirectoryYAML))
	require.NoError(t, err)

	ok, _ := d.IsStreamingSource(ctx, "300")
	assert.True(t, ok)
	src, err := d.SourceDescriptor(ctx, "300")
	require.NoError(t, err)
	assert.Equal(t, "door", src.ID)
	assert.Equal(t, "Front door", src.Description)
	assert.True(t, src.Open)

	_, err = d.SourceDescriptor(ctx, "301")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("users: [oops"))
	assert.Error(t, err)

	_, err = Parse([]byte("streaming:\n  door:\n    url: x\n"))
	assert.ErrorContains(t, err, "no number")
}

func TestOwnersAreCopies(t *testing.T) {
	d, err := Parse([]byte(testDirectoryYAML))
	require.NoError(t, err)
	owners, _ := d.UsersOwningExtension(context.Background(), "201")
	owners[0] = "mallory"
	again, _ := d.UsersOwningExtension(context.Background(), "201")
	assert.Equal(t, "alice", again[0])
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	d, err := Parse([]byte("users:\n  alice:\n    password_hash: \"" + string(hash) + "\"\n  bob: {}\n"))
	require.NoError(t, err)

	assert.NoError(t, d.Authenticate("alice", "pw"))
	assert.ErrorIs(t, d.Authenticate("alice", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, d.Authenticate("bob", ""), ErrInvalidCredentials)
	assert.ErrorIs(t, d.Authenticate("carol", "pw"), ErrInvalidCredentials)
}

func TestLoadAndEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDirectoryYAML), 0o600))
	d, err := Load(path)
	require.NoError(t, err)
	ok, _ := d.IsStreamingSource(context.Background(), "300")
	assert.True(t, ok)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	owners, err := Empty().UsersOwningExtension(context.Background(), "201")
	require.NoError(t, err)
	assert.Empty(t, owners)
}
