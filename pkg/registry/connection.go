package registry

import "github.com/saboracaiteria/br.canaa/pkg/protocol"

// Connection is the registry's handle on one client. Send must not block;
// a transport that cannot keep up should drop the client instead.
type Connection interface {
	ID() string
	Send(protocol.Event)
}

// Binding ties a connection to the player it controls.
type Binding struct {
	Code     string
	PlayerID string
}

type delivery struct {
	conn  Connection
	event protocol.Event
}

func flush(deliveries []delivery) {
	for _, d := range deliveries {
		d.conn.Send(d.event)
	}
}
