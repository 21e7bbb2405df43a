package server

import (
	"os"

	"github.com/tecnicofs/tecnicofs/fs"
	"github.com/tecnicofs/tecnicofs/proto"
)

// apply decodes one command datagram and executes it against the tree,
// returning the wire sentinel to send back. It mirrors applyCommand's
// switch on token, one case per op.
func (s *Server) apply(payload []byte) int {
	cmd, err := proto.Parse(string(payload))
	if err != nil {
		s.log.Printf("malformed command: %v", err)
		return fs.Fail
	}

	result := fs.Fail
	var opErr error
	switch cmd.Op {
	case proto.OpCreate:
		if opErr = s.fsys.Create(cmd.Path, cmd.Kind); opErr == nil {
			result = fs.Success
		}
	case proto.OpDelete:
		if opErr = s.fsys.Delete(cmd.Path); opErr == nil {
			result = fs.Success
		}
	case proto.OpMove:
		if opErr = s.fsys.Move(cmd.Path, cmd.Dest); opErr == nil {
			result = fs.Success
		}
	case proto.OpLookup:
		var n int
		if n, opErr = s.fsys.Lookup(cmd.Path); opErr == nil {
			result = n
		}
	case proto.OpPrint:
		result = s.print(cmd.Path)
	default:
		s.log.Printf("unknown op %q", byte(cmd.Op))
	}
	if opErr != nil {
		s.log.Printf("%s: %v", cmd.Op, opErr)
	}

	if s.metrics != nil {
		s.metrics.Observe(byte(cmd.Op), resultName(result))
	}
	return result
}

// print dumps the tree to the file named by path, mirroring
// print_tecnicofs_tree's behavior of writing the snapshot to disk rather
// than returning it over the wire.
func (s *Server) print(path string) int {
	f, err := os.Create(path)
	if err != nil {
		s.log.Printf("print: create %s: %v", path, err)
		return fs.Fail
	}
	defer f.Close()

	if err := s.fsys.PrintTree(f); err != nil {
		s.log.Printf("print: write %s: %v", path, err)
		return fs.Fail
	}
	return fs.Success
}

func resultName(result int) string {
	switch {
	case result == fs.Fail:
		return "fail"
	case result == fs.Abort:
		return "abort"
	default:
		return "success"
	}
}
