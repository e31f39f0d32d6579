package app

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/ctinotify/internal/core/mocks"
	"github.com/dkeye/ctinotify/internal/domain"
)

const (
	callTemplate   = "/webrest/static/templates/notification_popup_call.html"
	streamTemplate = "/webrest/static/templates/notification_popup_streaming.html"
	doorNumber     = "300"
	testCaller     = "3331234567"
)

type builderMocks struct {
	dir     *mocks.MockDirectory
	authz   *mocks.MockAuthorizer
	streams *mocks.MockStreamingResolver
}

func newTestBuilder(t *testing.T) (*Builder, builderMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := builderMocks{
		dir:     mocks.NewMockDirectory(ctrl),
		authz:   mocks.NewMockAuthorizer(ctrl),
		streams: mocks.NewMockStreamingResolver(ctrl),
	}
	b := &Builder{
		Directory: m.dir,
		Authz:     m.authz,
		Streams:   m.streams,
		Templates: Templates{
			Scheme:    "https",
			Host:      "cti.example.org",
			Call:      PopupTemplate{Path: callTemplate},
			Streaming: PopupTemplate{Path: streamTemplate, Width: 640, Height: 480},
		},
		Now: func() time.Time { return time.UnixMilli(1700000000123) },
	}
	return b, m
}

func ringing(caller string) domain.RingingEvent {
	return domain.RingingEvent{
		Channel:          "PJSIP/201-0000001",
		DialingExtension: "201",
		CallerIdentity: &domain.CallerIdentity{
			CallerNum:  caller,
			CallerName: "Mario Rossi",
			NumCalled:  "201",
		},
	}
}

func query(t *testing.T, raw string) (*url.URL, url.Values) {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u, u.Query()
}

func TestBuilder_CallNotification(t *testing.T) {
	b, m := newTestBuilder(t)
	ctx := context.Background()
	m.streams.EXPECT().IsStreamingSource(gomock.Any(), testCaller).Return(false, nil)
	m.dir.EXPECT().IsWebrtcExtension(gomock.Any(), "201").Return(false, nil)
	m.dir.EXPECT().AgentSupportsAutoAnswer(gomock.Any(), "201").Return(true, nil)
	m.authz.EXPECT().AutoAnswerEnabled(gomock.Any(), "alice").Return(true, nil)

	n, err := b.Build(ctx, "alice", ringing(testCaller))
	require.NoError(t, err)

	require.NotNil(t, n.Call)
	assert.False(t, n.IsStreaming())
	assert.Equal(t, "201<-"+testCaller, n.ID)
	assert.True(t, n.Call.AnswerActionAllowed)
	assert.False(t, n.Call.IsWebrtc)
	assert.Equal(t, DefaultCallWidth, n.Width)
	assert.Equal(t, DefaultCallHeight, n.Height)
	assert.Equal(t, DefaultCloseTimeout, n.CloseTimeout)

	u, q := query(t, n.Call.RenderURL)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "cti.example.org", u.Host)
	assert.Equal(t, callTemplate, u.Path)
	assert.Equal(t, testCaller, q.Get("callerNum"))
	assert.Equal(t, "Mario Rossi", q.Get("callerName"))
	assert.Equal(t, "PJSIP/201-0000001", q.Get("channel"))
	assert.Equal(t, "201", q.Get("dialExten"))
	assert.Equal(t, "true", q.Get("answerAction"))
	assert.Equal(t, "false", q.Get("webrtc"))
	assert.Equal(t, "1700000000123", q.Get("t"))

	popup := n.Popup()
	assert.Equal(t, "open", popup.Action)
	assert.Equal(t, n.Call.RenderURL, popup.URL)
}

func TestBuilder_AnswerAction(t *testing.T) {
	tests := []struct {
		name       string
		webrtc     bool
		supports   *bool
		enabled    *bool
		wantAnswer bool
	}{
		{name: "webrtc always answers", webrtc: true, wantAnswer: true},
		{name: "phone without auto answer", supports: ptr(false), wantAnswer: false},
		{name: "phone supports, user disabled", supports: ptr(true), enabled: ptr(false), wantAnswer: false},
		{name: "phone supports, user enabled", supports: ptr(true), enabled: ptr(true), wantAnswer: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, m := newTestBuilder(t)
			m.streams.EXPECT().IsStreamingSource(gomock.Any(), testCaller).Return(false, nil)
			m.dir.EXPECT().IsWebrtcExtension(gomock.Any(), "201").Return(tt.webrtc, nil)
			if tt.supports != nil {
				m.dir.EXPECT().AgentSupportsAutoAnswer(gomock.Any(), "201").Return(*tt.supports, nil)
			}
			if tt.enabled != nil {
				m.authz.EXPECT().AutoAnswerEnabled(gomock.Any(), "alice").Return(*tt.enabled, nil)
			}

			n, err := b.Build(context.Background(), "alice", ringing(testCaller))
			require.NoError(t, err)
			assert.Equal(t, tt.wantAnswer, n.Call.AnswerActionAllowed)
			assert.Equal(t, tt.webrtc, n.Call.IsWebrtc)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func doorCamera() domain.StreamingSource {
	return domain.StreamingSource{
		ID:          "door1",
		Number:      doorNumber,
		URL:         "http://10.0.0.50/video.mjpg",
		Description: "Front door",
		Open:        true,
	}
}

func TestBuilder_StreamingAuthorized(t *testing.T) {
	b, m := newTestBuilder(t)
	m.streams.EXPECT().IsStreamingSource(gomock.Any(), doorNumber).Return(true, nil)
	m.streams.EXPECT().SourceDescriptor(gomock.Any(), doorNumber).Return(doorCamera(), nil)
	m.authz.EXPECT().HasStreamingAuthorization(gomock.Any(), "alice", "door1").Return(true, nil)
	m.dir.EXPECT().IsWebrtcExtension(gomock.Any(), "201").Return(true, nil)

	n, err := b.Build(context.Background(), "alice", ringing(doorNumber))
	require.NoError(t, err)

	require.True(t, n.IsStreaming())
	assert.Nil(t, n.Call)
	assert.Equal(t, "201<-"+doorNumber, n.ID)
	assert.Equal(t, 640, n.Width)
	assert.Equal(t, 480, n.Height)
	assert.True(t, n.Streaming.OpenAllowed)
	assert.True(t, n.Streaming.IsWebrtc)

	u, q := query(t, n.RenderURL())
	assert.Equal(t, streamTemplate, u.Path)
	assert.Equal(t, "door1", q.Get("id"))
	assert.Equal(t, "http://10.0.0.50/video.mjpg", q.Get("url"))
	assert.Equal(t, "Front door", q.Get("description"))
	assert.Equal(t, "true", q.Get("open"))
	assert.Equal(t, "true", q.Get("webrtc"))
}

func TestBuilder_StreamingFallsBackToCall(t *testing.T) {
	b, m := newTestBuilder(t)
	m.streams.EXPECT().IsStreamingSource(gomock.Any(), doorNumber).Return(true, nil)
	m.streams.EXPECT().SourceDescriptor(gomock.Any(), doorNumber).Return(doorCamera(), nil)
	m.authz.EXPECT().HasStreamingAuthorization(gomock.Any(), "bob", "door1").Return(false, nil)
	m.dir.EXPECT().IsWebrtcExtension(gomock.Any(), "201").Return(false, nil)
	m.dir.EXPECT().AgentSupportsAutoAnswer(gomock.Any(), "201").Return(false, nil)

	n, err := b.Build(context.Background(), "bob", ringing(doorNumber))
	require.NoError(t, err)
	assert.False(t, n.IsStreaming())
	require.NotNil(t, n.Call)
	assert.Equal(t, doorNumber, n.Call.CallerNum)
	u, _ := query(t, n.RenderURL())
	assert.Equal(t, callTemplate, u.Path)
}

func TestBuilder_CollaboratorError(t *testing.T) {
	b, m := newTestBuilder(t)
	boom := errors.New("directory unavailable")
	m.streams.EXPECT().IsStreamingSource(gomock.Any(), testCaller).Return(false, nil)
	m.dir.EXPECT().IsWebrtcExtension(gomock.Any(), "201").Return(false, boom)

	_, err := b.Build(context.Background(), "alice", ringing(testCaller))
	assert.ErrorIs(t, err, boom)
}

func contactsFixture() *domain.PhonebookContacts {
	return &domain.PhonebookContacts{
		Centralized: []domain.Contact{{Name: "Central Co", Number: testCaller}},
		Internal: []domain.Contact{
			{OwnerID: "bob", Type: domain.ContactPrivate, Name: "Bob's private"},
			{OwnerID: "carol", Type: domain.ContactPublic, Name: "Public entry"},
			{OwnerID: "alice", Type: domain.ContactPrivate, Name: "Alice's private"},
		},
	}
}

func TestSelectContact_Priority(t *testing.T) {
	pb := contactsFixture()
	assert.Equal(t, "Alice's private", selectContact("alice", pb).Name)
	assert.Equal(t, "Central Co", selectContact("dave", pb).Name)

	pb.Centralized = nil
	assert.Equal(t, "Public entry", selectContact("dave", pb).Name)

	pb.Internal = pb.Internal[:1]
	assert.Nil(t, selectContact("dave", pb))
}

func TestBuilder_CallerData(t *testing.T) {
	b, m := newTestBuilder(t)
	ev := ringing(testCaller)
	ev.CallerIdentity.PhonebookContacts = contactsFixture()

	m.authz.EXPECT().HasPhonebookAuthorization(gomock.Any(), "alice").Return(true, nil)
	data, err := b.CallerData(context.Background(), "alice", ev)
	require.NoError(t, err)
	require.NotNil(t, data.PhonebookContact)
	assert.Equal(t, "Alice's private", data.PhonebookContact.Name)
	assert.Equal(t, "201", data.NumCalled)

	m.authz.EXPECT().HasPhonebookAuthorization(gomock.Any(), "eve").Return(false, nil)
	data, err = b.CallerData(context.Background(), "eve", ev)
	require.NoError(t, err)
	assert.Nil(t, data.PhonebookContact)
	assert.Equal(t, testCaller, data.CallerNum)
}
