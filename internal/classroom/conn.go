package classroom

// Connection is one live duplex channel to a client. The transport layer
// owns the underlying socket; the core holds it only as a delivery target.
// ID must be stable for the connection's lifetime and unique per process;
// it doubles as the wire-visible recipient handle in signaling envelopes.
type Connection interface {
	ID() string
	WriteJSON(v any) error
}
