package domain

const PopupActionOpen = "open"

type CallNotification struct {
	CallerNum           string
	CallerName          string
	Channel             string
	DialingExtension    string
	AnswerActionAllowed bool
	IsWebrtc            bool
	RenderURL           string
}

type StreamingNotification struct {
	ID          string
	URL         string
	Description string
	OpenAllowed bool
	IsWebrtc    bool
	RenderURL   string
}

// Notification is built per (event, recipient). Exactly one of Call and
// Streaming is set.
type Notification struct {
	ID           string
	Call         *CallNotification
	Streaming    *StreamingNotification
	Width        int
	Height       int
	CloseTimeout int
}

func (n Notification) IsStreaming() bool { return n.Streaming != nil }

func (n Notification) RenderURL() string {
	if n.Streaming != nil {
		return n.Streaming.RenderURL
	}
	if n.Call != nil {
		return n.Call.RenderURL
	}
	return ""
}

// Popup is the wire shape pushed to templated clients.
type Popup struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Action       string `json:"action"`
	CloseTimeout int    `json:"closetimeout"`
}

func (n Notification) Popup() Popup {
	return Popup{
		ID:           n.ID,
		URL:          n.RenderURL(),
		Width:        n.Width,
		Height:       n.Height,
		Action:       PopupActionOpen,
		CloseTimeout: n.CloseTimeout,
	}
}

// CallerData is the caller description pushed to raw (non-templated) clients.
type CallerData struct {
	CallerNum        string   `json:"callerNum"`
	CallerName       string   `json:"callerName"`
	NumCalled        string   `json:"numCalled"`
	Channel          string   `json:"channel"`
	DialingExtension string   `json:"dialingExten"`
	PhonebookContact *Contact `json:"phonebookContact,omitempty"`
}
