// Package ledserial implements the packets the simulator mirrors frames with
// to a serial LED bridge. The stream is one-way: the bridge never answers.
//
// Every packet is a type byte, a body and the CRC32 of both. A stream starts
// with an InitializePacket announcing the size of each strip; the
// FramePackets that follow carry one frame each, NorthWest first.
package ledserial

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"time"

	"libdb.so/perimeter/anim"
)

// Endianness defines the endianness of the protocol.
var Endianness = binary.LittleEndian

// PacketType is a type of packet.
type PacketType uint8

const (
	TypeInitializePacket PacketType = iota
	TypeFramePacket
	TypeClearPacket
)

// String returns a string representation of the packet type.
func (t PacketType) String() string {
	switch t {
	case TypeInitializePacket:
		return "initialize"
	case TypeFramePacket:
		return "frame"
	case TypeClearPacket:
		return "clear"
	default:
		return fmt.Sprintf("PacketType(%d)", t)
	}
}

// Packet is a packet sent over the wire.
type Packet interface {
	// Type returns the type of packet.
	Type() PacketType
}

// InitializePacket announces how many LEDs each strip has.
type InitializePacket struct {
	LEDs [len(anim.Strips)]uint16
}

// FramePacket carries one frame.
type FramePacket struct {
	// Elapsed is the clock reading the frame was drawn for. It travels in
	// whole milliseconds.
	Elapsed time.Duration
	// Mode is the active mode.
	Mode anim.Mode
	// Strips holds each strip's bytes in wire order.
	Strips [len(anim.Strips)][]byte
}

// ClearPacket turns all LEDs off.
type ClearPacket struct{}

func (p InitializePacket) Type() PacketType { return TypeInitializePacket }
func (p FramePacket) Type() PacketType      { return TypeFramePacket }
func (p ClearPacket) Type() PacketType      { return TypeClearPacket }

// frameHeader is the fixed part of a FramePacket.
type frameHeader struct {
	ElapsedMillis uint32
	Mode          anim.Mode
}

// ReadContext is what the reader knows about the stream so far.
type ReadContext struct {
	// LEDs is the strip sizes announced by the last InitializePacket.
	LEDs [len(anim.Strips)]uint16
}

// Update applies what p says about the stream.
func (c *ReadContext) Update(p Packet) {
	if init, ok := p.(InitializePacket); ok {
		c.LEDs = init.LEDs
	}
}

// ReadPacket reads a packet from the given reader.
func ReadPacket(r io.Reader, context ReadContext) (Packet, error) {
	hash := crc32.NewIEEE()
	r = io.TeeReader(r, hash)

	var packet Packet
	var ptypeBuf [1]byte
	if _, err := io.ReadFull(r, ptypeBuf[:]); err != nil {
		return nil, fmt.Errorf("failed to read packet type: %w", err)
	}

	switch ptype := PacketType(ptypeBuf[0]); ptype {
	case TypeInitializePacket:
		var p InitializePacket
		if err := binary.Read(r, Endianness, &p); err != nil {
			return nil, fmt.Errorf("failed to read strip sizes: %w", err)
		}
		packet = p

	case TypeFramePacket:
		var h frameHeader
		if err := binary.Read(r, Endianness, &h); err != nil {
			return nil, fmt.Errorf("failed to read frame header: %w", err)
		}

		p := FramePacket{
			Elapsed: time.Duration(h.ElapsedMillis) * time.Millisecond,
			Mode:    h.Mode,
		}
		for i, n := range context.LEDs {
			p.Strips[i] = make([]byte, 3*int(n))
			if _, err := io.ReadFull(r, p.Strips[i]); err != nil {
				return nil, fmt.Errorf("failed to read %v: %w", anim.Strip(i), err)
			}
		}
		packet = p

	case TypeClearPacket:
		packet = ClearPacket{}

	default:
		return nil, fmt.Errorf("unknown packet type: %s", ptype)
	}

	sum := hash.Sum32()

	var checksum uint32
	if err := binary.Read(r, Endianness, &checksum); err != nil {
		return nil, fmt.Errorf("failed to read packet checksum: %w", err)
	}

	if checksum != sum {
		return nil, fmt.Errorf("packet checksum mismatch")
	}

	return packet, nil
}

// WritePacket writes a packet to the given writer.
func WritePacket(w io.Writer, p Packet) error {
	if p, ok := p.(FramePacket); ok {
		for i, data := range p.Strips {
			if len(data)%3 != 0 {
				return fmt.Errorf("%v: %d bytes is not whole pixels", anim.Strip(i), len(data))
			}
		}
	}

	hash := crc32.NewIEEE()
	body := io.MultiWriter(w, hash)

	if err := binary.Write(body, Endianness, p.Type()); err != nil {
		return fmt.Errorf("failed to write packet type: %w", err)
	}

	switch p := p.(type) {
	case InitializePacket:
		if err := binary.Write(body, Endianness, p); err != nil {
			return fmt.Errorf("failed to write packet: %w", err)
		}

	case FramePacket:
		h := frameHeader{
			ElapsedMillis: uint32(p.Elapsed.Milliseconds()),
			Mode:          p.Mode,
		}
		if err := binary.Write(body, Endianness, h); err != nil {
			return fmt.Errorf("failed to write frame header: %w", err)
		}
		for i, data := range p.Strips {
			if _, err := body.Write(data); err != nil {
				return fmt.Errorf("failed to write %v: %w", anim.Strip(i), err)
			}
		}

	case ClearPacket:

	default:
		return fmt.Errorf("unknown packet type: %T", p)
	}

	if err := binary.Write(w, Endianness, hash.Sum32()); err != nil {
		return fmt.Errorf("failed to write packet checksum: %w", err)
	}

	return nil
}
