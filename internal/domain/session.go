package domain

// ConnectionID identifies one accepted connection, "remoteIP:remotePort".
type ConnectionID string

// Transport tells how a session consumes ringing notifications.
type Transport string

const (
	// TransportTCP clients render a popup from a templated url.
	TransportTCP Transport = "tcp"
	// TransportWS clients receive raw caller data.
	TransportWS Transport = "ws"
)
