package services

import "net"

// newListener opens a TCP listener on addr. Split out from Start so
// Start's error path (port already in use, etc.) is trivial to test
// without actually serving.
func newListener(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}
