package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/ctinotify/internal/domain"
)

func TestDecode_Login(t *testing.T) {
	req, err := Decode([]byte(`{"action":"login","username":"alice","token":"t0k"}`))
	require.NoError(t, err)
	assert.Equal(t, ActionLogin, req.Action)
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "t0k", req.Token)
	assert.True(t, req.HasCredentials())
}

func TestDecode_NonStringCredentials(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing token", `{"action":"login","username":"alice"}`},
		{"numeric username", `{"action":"login","username":42,"token":"t"}`},
		{"null token", `{"action":"login","username":"alice","token":null}`},
		{"object token", `{"action":"login","username":"alice","token":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Decode([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, ActionLogin, req.Action)
			assert.False(t, req.HasCredentials())
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, data := range []string{`{"action":`, `not json`, `null`, `[1,2]`, `"ping"`, ``} {
		_, err := Decode([]byte(data))
		assert.ErrorIs(t, err, ErrMalformed, "input %q", data)
	}
}

func TestDecode_ResetCommands(t *testing.T) {
	req, err := Decode([]byte(`{"action":"reset","type":"commands","username":"bob","token":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, ActionReset, req.Action)
	assert.Equal(t, ResetCommands, req.Type)
	assert.True(t, req.HasCredentials())
}

func TestOutboundShapes(t *testing.T) {
	f, err := Unauthorized()
	require.NoError(t, err)
	assert.Equal(t, `"401"`, string(f))

	f, err = AuthOK()
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"authe_ok"}`, string(f))

	f, err = PingReply()
	require.NoError(t, err)
	assert.JSONEq(t, `{"ping":"active"}`, string(f))

	f, err = Commands(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"commands":{}}`, string(f))

	f, err = Commands(map[string]Command{"crm": {Command: "crm.exe", RunWith: "cmd"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"commands":{"crm":{"command":"crm.exe","runwith":"cmd"}}}`, string(f))
}

func TestNotification(t *testing.T) {
	n := domain.Notification{
		ID:           "201<-3331234",
		Call:         &domain.CallNotification{RenderURL: "https://cti.local/call?x=1"},
		Width:        400,
		Height:       200,
		CloseTimeout: 10,
	}
	f, err := Notification(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"notification":{"id":"201<-3331234","url":"https://cti.local/call?x=1","width":400,"height":200,"action":"open","closetimeout":10}}`, string(f))
}

func TestCallerEvent(t *testing.T) {
	f, err := CallerEvent(domain.CallerData{CallerNum: "333", NumCalled: "201", Channel: "SIP/1", DialingExtension: "201"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"extenRinging","data":{"callerNum":"333","callerName":"","numCalled":"201","channel":"SIP/1","dialingExten":"201"}}`, string(f))
}
