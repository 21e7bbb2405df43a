// Package client is a direct transliteration of
// proj3/client/tecnicofs-client-api.c: it binds an ephemeral client-side
// UNIX datagram socket, sends one fixed-size command datagram per call, and
// reads back the 4-byte sentinel reply.
//
// One bug in the source is deliberately not carried over: tfsMount calls
// mkstemp on cli_addr.sun_path without having initialized it beyond the
// bzero, so the generated temp name is built from whatever bytes bzero left
// (all zero, in practice, making every client bind to the same fixed path
// and collide under concurrent clients). Mount here instead asks the OS for
// a real unique path with os.CreateTemp.
package client

import (
	"fmt"
	"net"
	"os"

	"github.com/tecnicofs/tecnicofs/fs"
	"github.com/tecnicofs/tecnicofs/proto"
)

// ErrAbort is returned when the server replies with the Abort sentinel,
// mirroring tfsSend's exit(EXIT_FAILURE) on that case — except here the
// client gets a typed error back instead of the process dying outright.
var ErrAbort = fmt.Errorf("client: server signalled abort")

// Client is a mounted connection to one TecnicoFS server socket.
type Client struct {
	conn       *net.UnixConn
	clientAddr string
}

// Mount binds a fresh client-side socket and targets it at the server
// socket found at socketPath, mirroring tfsMount.
func Mount(socketPath string) (*Client, error) {
	tmp, err := os.CreateTemp("", "tecnicofs-client-*.sock")
	if err != nil {
		return nil, fmt.Errorf("client: allocate socket name: %w", err)
	}
	clientAddr := tmp.Name()
	tmp.Close()
	os.Remove(clientAddr)

	local := &net.UnixAddr{Name: clientAddr, Net: "unixgram"}
	remote := &net.UnixAddr{Name: socketPath, Net: "unixgram"}

	conn, err := net.DialUnix("unixgram", local, remote)
	if err != nil {
		os.Remove(clientAddr)
		return nil, fmt.Errorf("client: dial %s: %w", socketPath, err)
	}

	return &Client{conn: conn, clientAddr: clientAddr}, nil
}

// Unmount closes the socket and removes its backing file, mirroring
// tfsUnmount.
func (c *Client) Unmount() error {
	cerr := c.conn.Close()
	if err := os.Remove(c.clientAddr); err != nil && cerr == nil {
		return err
	}
	return cerr
}

// send transmits one padded command datagram and decodes the reply,
// mirroring tfsSend.
func (c *Client) send(cmd proto.Command) (int, error) {
	if _, err := c.conn.Write(proto.PadCommand(cmd.Format())); err != nil {
		return fs.Fail, err
	}

	reply := make([]byte, proto.ReplySize)
	n, err := c.conn.Read(reply)
	if err != nil {
		return fs.Fail, err
	}
	if n < proto.ReplySize {
		return fs.Fail, fmt.Errorf("client: short reply (%d bytes)", n)
	}

	result := int(proto.DecodeReply(reply))
	if result == fs.Abort {
		return result, ErrAbort
	}
	return result, nil
}

// Create mirrors tfsCreate.
func (c *Client) Create(path string, kind fs.Kind) (int, error) {
	return c.send(proto.Command{Op: proto.OpCreate, Path: path, Kind: kind})
}

// Delete mirrors tfsDelete.
func (c *Client) Delete(path string) (int, error) {
	return c.send(proto.Command{Op: proto.OpDelete, Path: path})
}

// Move mirrors tfsMove.
func (c *Client) Move(from, to string) (int, error) {
	return c.send(proto.Command{Op: proto.OpMove, Path: from, Dest: to})
}

// Lookup mirrors tfsLookup.
func (c *Client) Lookup(path string) (int, error) {
	return c.send(proto.Command{Op: proto.OpLookup, Path: path})
}

// Print mirrors tfsPrint: outputFile names where the server should dump
// its tree snapshot.
func (c *Client) Print(outputFile string) (int, error) {
	return c.send(proto.Command{Op: proto.OpPrint, Path: outputFile})
}
