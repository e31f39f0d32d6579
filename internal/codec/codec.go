// Package codec decodes inbound client messages and encodes outbound ones.
// Every message is a single JSON document.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/ctinotify/internal/core"
	"github.com/dkeye/ctinotify/internal/domain"
)

var ErrMalformed = errors.New("malformed message")

const (
	ActionLogin = "login"
	ActionPing  = "ping"
	ActionReset = "reset"

	ResetCommands = "commands"
)

// Request is a decoded inbound message. Username and Token are only
// populated when the peer sent them as JSON strings.
type Request struct {
	Action   string
	Type     string
	Username string
	Token    string

	hasUsername bool
	hasToken    bool
}

// HasCredentials reports whether both username and token were present as strings.
func (r Request) HasCredentials() bool { return r.hasUsername && r.hasToken }

// Decode parses one inbound JSON document. Non-object documents are malformed;
// fields of the wrong type are treated as absent.
func Decode(data []byte) (Request, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if raw == nil {
		return Request{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	var req Request
	req.Action, _ = raw["action"].(string)
	req.Type, _ = raw["type"].(string)
	req.Username, req.hasUsername = raw["username"].(string)
	req.Token, req.hasToken = raw["token"].(string)
	return req, nil
}

// Command is one client-side command advertised after login.
type Command struct {
	Command string `json:"command" mapstructure:"command"`
	RunWith string `json:"runwith" mapstructure:"run_with"`
}

const unauthorized = "401"

type authOK struct {
	Message string `json:"message"`
}

type pingReply struct {
	Ping string `json:"ping"`
}

type commandsMsg struct {
	Commands map[string]Command `json:"commands"`
}

type notificationMsg struct {
	Notification domain.Popup `json:"notification"`
}

type eventMsg struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// EventExtenRinging is pushed to raw consumers on fan-out.
const EventExtenRinging = "extenRinging"

func Unauthorized() (core.Frame, error) { return Encode(unauthorized) }
func AuthOK() (core.Frame, error)       { return Encode(authOK{Message: "authe_ok"}) }
func PingReply() (core.Frame, error)    { return Encode(pingReply{Ping: "active"}) }

func Commands(cmds map[string]Command) (core.Frame, error) {
	if cmds == nil {
		cmds = map[string]Command{}
	}
	return Encode(commandsMsg{Commands: cmds})
}

func Notification(n domain.Notification) (core.Frame, error) {
	return Encode(notificationMsg{Notification: n.Popup()})
}

func CallerEvent(d domain.CallerData) (core.Frame, error) {
	return Encode(eventMsg{Event: EventExtenRinging, Data: d})
}

// Encode serializes an outbound structure.
func Encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return core.Frame(b), nil
}
