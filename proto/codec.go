package proto

import "encoding/binary"

// ReplySize is the width of the reply sentinel: a native int in the C
// original, fixed here at 4 bytes little-endian (spec.md §6).
const ReplySize = 4

// EncodeReply packs a result sentinel (Success, Fail, or Abort) into the
// fixed-width reply datagram.
func EncodeReply(result int32) []byte {
	buf := make([]byte, ReplySize)
	binary.LittleEndian.PutUint32(buf, uint32(result))
	return buf
}

// DecodeReply unpacks a reply datagram back into its sentinel value.
func DecodeReply(buf []byte) int32 {
	return int32(binary.LittleEndian.Uint32(buf))
}

// PadCommand pads (or truncates) a formatted command to MaxInputSize bytes,
// the way tfsSend's sendto(sockfd, command, MAX_INPUT_SIZE, ...) always
// ships a fixed-size datagram regardless of the command's actual length.
func PadCommand(s string) []byte {
	buf := make([]byte, MaxInputSize)
	copy(buf, s)
	return buf
}
