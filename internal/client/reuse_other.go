//go:build !unix

package client

import "syscall"

func reuseAddr(network, address string, c syscall.RawConn) error {
	return nil
}
