package app

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dkeye/ctinotify/internal/core"
	"github.com/dkeye/ctinotify/internal/domain"
)

// Fallback geometry when the configuration leaves it out.
const (
	DefaultCallWidth       = 400
	DefaultCallHeight      = 200
	DefaultStreamingWidth  = 400
	DefaultStreamingHeight = 400
	DefaultCloseTimeout    = 10
)

type PopupTemplate struct {
	Path   string
	Width  int
	Height int
}

// Templates locates the popup pages clients render.
type Templates struct {
	Scheme       string
	Host         string
	CloseTimeout int
	Call         PopupTemplate
	Streaming    PopupTemplate
}

// Builder produces the per-recipient notification for a ringing event.
type Builder struct {
	Directory core.Directory
	Authz     core.Authorizer
	Streams   core.StreamingResolver
	Templates Templates
	// Now defaults to time.Now.
	Now func() time.Time
}

// Build returns a streaming popup when the caller is a streaming source the
// recipient may watch, a call popup otherwise.
func (b *Builder) Build(ctx context.Context, username string, ev domain.RingingEvent) (domain.Notification, error) {
	isStream, err := b.Streams.IsStreamingSource(ctx, ev.CallerIdentity.CallerNum)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("streaming lookup: %w", err)
	}
	if isStream {
		n, ok, err := b.buildStreaming(ctx, username, ev)
		if err != nil {
			return domain.Notification{}, err
		}
		if ok {
			return n, nil
		}
	}
	return b.buildCall(ctx, username, ev)
}

func (b *Builder) buildStreaming(ctx context.Context, username string, ev domain.RingingEvent) (domain.Notification, bool, error) {
	src, err := b.Streams.SourceDescriptor(ctx, ev.CallerIdentity.CallerNum)
	if err != nil {
		return domain.Notification{}, false, fmt.Errorf("streaming source %s: %w", ev.CallerIdentity.CallerNum, err)
	}
	allowed, err := b.Authz.HasStreamingAuthorization(ctx, username, src.ID)
	if err != nil {
		return domain.Notification{}, false, fmt.Errorf("streaming authorization: %w", err)
	}
	if !allowed {
		return domain.Notification{}, false, nil
	}
	webrtc, err := b.Directory.IsWebrtcExtension(ctx, ev.DialingExtension)
	if err != nil {
		return domain.Notification{}, false, fmt.Errorf("endpoint type of %s: %w", ev.DialingExtension, err)
	}

	q := url.Values{}
	q.Set("id", src.ID)
	q.Set("url", src.URL)
	q.Set("description", src.Description)
	q.Set("open", strconv.FormatBool(src.Open))
	q.Set("webrtc", strconv.FormatBool(webrtc))

	sn := &domain.StreamingNotification{
		ID:          src.ID,
		URL:         src.URL,
		Description: src.Description,
		OpenAllowed: src.Open,
		IsWebrtc:    webrtc,
		RenderURL:   b.renderURL(b.Templates.Streaming.Path, q),
	}
	return domain.Notification{
		ID:           ev.NotificationID(),
		Streaming:    sn,
		Width:        orDefault(b.Templates.Streaming.Width, DefaultStreamingWidth),
		Height:       orDefault(b.Templates.Streaming.Height, DefaultStreamingHeight),
		CloseTimeout: orDefault(b.Templates.CloseTimeout, DefaultCloseTimeout),
	}, true, nil
}

func (b *Builder) buildCall(ctx context.Context, username string, ev domain.RingingEvent) (domain.Notification, error) {
	webrtc, err := b.Directory.IsWebrtcExtension(ctx, ev.DialingExtension)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("endpoint type of %s: %w", ev.DialingExtension, err)
	}
	answer, err := b.answerAllowed(ctx, username, ev.DialingExtension, webrtc)
	if err != nil {
		return domain.Notification{}, err
	}

	ci := ev.CallerIdentity
	q := url.Values{}
	q.Set("callerNum", ci.CallerNum)
	q.Set("callerName", ci.CallerName)
	q.Set("channel", ev.Channel)
	q.Set("dialExten", ev.DialingExtension)
	q.Set("answerAction", strconv.FormatBool(answer))
	q.Set("webrtc", strconv.FormatBool(webrtc))
	q.Set("t", strconv.FormatInt(b.now().UnixMilli(), 10))

	cn := &domain.CallNotification{
		CallerNum:           ci.CallerNum,
		CallerName:          ci.CallerName,
		Channel:             ev.Channel,
		DialingExtension:    ev.DialingExtension,
		AnswerActionAllowed: answer,
		IsWebrtc:            webrtc,
		RenderURL:           b.renderURL(b.Templates.Call.Path, q),
	}
	return domain.Notification{
		ID:           ev.NotificationID(),
		Call:         cn,
		Width:        orDefault(b.Templates.Call.Width, DefaultCallWidth),
		Height:       orDefault(b.Templates.Call.Height, DefaultCallHeight),
		CloseTimeout: orDefault(b.Templates.CloseTimeout, DefaultCloseTimeout),
	}, nil
}

// answerAllowed: WebRTC endpoints can always answer; physical phones only when
// both the device and the user have automatic click-to-call.
func (b *Builder) answerAllowed(ctx context.Context, username, exten string, webrtc bool) (bool, error) {
	if webrtc {
		return true, nil
	}
	supports, err := b.Directory.AgentSupportsAutoAnswer(ctx, exten)
	if err != nil {
		return false, fmt.Errorf("auto answer support of %s: %w", exten, err)
	}
	if !supports {
		return false, nil
	}
	enabled, err := b.Authz.AutoAnswerEnabled(ctx, username)
	if err != nil {
		return false, fmt.Errorf("auto answer setting: %w", err)
	}
	return enabled, nil
}

// CallerData describes the caller for raw consumers, attaching at most one
// phonebook contact when the recipient may view the phonebook.
func (b *Builder) CallerData(ctx context.Context, username string, ev domain.RingingEvent) (domain.CallerData, error) {
	ci := ev.CallerIdentity
	data := domain.CallerData{
		CallerNum:        ci.CallerNum,
		CallerName:       ci.CallerName,
		NumCalled:        ci.NumCalled,
		Channel:          ev.Channel,
		DialingExtension: ev.DialingExtension,
	}
	if ci.PhonebookContacts == nil {
		return data, nil
	}
	allowed, err := b.Authz.HasPhonebookAuthorization(ctx, username)
	if err != nil {
		return domain.CallerData{}, fmt.Errorf("phonebook authorization: %w", err)
	}
	if allowed {
		data.PhonebookContact = selectContact(username, ci.PhonebookContacts)
	}
	return data, nil
}

// selectContact prefers the recipient's private entry, then the first
// centralized match, then the first public entry.
func selectContact(username string, pb *domain.PhonebookContacts) *domain.Contact {
	for i := range pb.Internal {
		c := pb.Internal[i]
		if c.Type == domain.ContactPrivate && c.OwnerID == username {
			return &c
		}
	}
	if len(pb.Centralized) > 0 {
		c := pb.Centralized[0]
		return &c
	}
	for i := range pb.Internal {
		c := pb.Internal[i]
		if c.Type == domain.ContactPublic {
			return &c
		}
	}
	return nil
}

func (b *Builder) renderURL(path string, q url.Values) string {
	u := url.URL{
		Scheme:   b.Templates.Scheme,
		Host:     b.Templates.Host,
		Path:     path,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
