package midi

import "fmt"

// OutcomeKind tags the result of a single Parser.Parse call.
type OutcomeKind int

const (
	// OutcomeNeedMoreBytes means the input did not contain a complete
	// message; the caller should wait for more I/O before calling again.
	OutcomeNeedMoreBytes OutcomeKind = iota
	// OutcomeMessage means a complete message was decoded.
	OutcomeMessage
	// OutcomeInterruptingRealTime means a System Real-Time byte was found
	// in the middle of another message or a SysEx payload. The caller
	// must excise that one byte and resubmit the remainder.
	OutcomeInterruptingRealTime
	// OutcomeUnexpectedDataByte means a data byte arrived with no running
	// status in effect.
	OutcomeUnexpectedDataByte
	// OutcomeUnexpectedEox means a bare 0xF7 arrived outside of a SysEx.
	OutcomeUnexpectedEox
	// OutcomeBrokenMessage means a status byte (other than Real-Time)
	// interrupted a message or SysEx payload already in progress.
	OutcomeBrokenMessage
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNeedMoreBytes:
		return "NeedMoreBytes"
	case OutcomeMessage:
		return "Message"
	case OutcomeInterruptingRealTime:
		return "InterruptingRealTime"
	case OutcomeUnexpectedDataByte:
		return "UnexpectedDataByte"
	case OutcomeUnexpectedEox:
		return "UnexpectedEox"
	case OutcomeBrokenMessage:
		return "BrokenMessage"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is what Parser.Parse returns: exactly one interpretation of the
// bytes handed to it, plus how many bytes the caller should drop from the
// head of its buffer.
type Outcome struct {
	// BytesConsumed is the number of bytes, from the start of the slice
	// passed to Parse, that belong to this outcome and should be dropped
	// by the caller. Always <= len(input).
	BytesConsumed int

	Kind OutcomeKind

	// Message holds the decoded message when Kind == OutcomeMessage.
	Message Message

	// NeedMoreHint holds the number of additional bytes known to be
	// required when Kind == OutcomeNeedMoreBytes, or nil when the
	// shortfall isn't known yet (mid-SysEx, or an empty buffer).
	NeedMoreHint *int

	// InterruptingMessage and ByteIndex are set when Kind ==
	// OutcomeInterruptingRealTime: the Real-Time message observed, and
	// its index within the input slice passed to this call.
	InterruptingMessage SystemRealTimeMessage
	ByteIndex           int
}

// Parser is an incremental MIDI 1.0 byte-stream decoder. It holds the
// running-status register (and, as a performance optimization on top of
// the wire contract, how much of an in-progress SysEx payload has already
// been scanned clean) and nothing else. A Parser is not safe for
// concurrent use; each independent stream needs its own instance.
type Parser struct {
	runningStatus byte
	hasRunning    bool

	// sysexScanned is the number of bytes after a SysEx's leading 0xF0
	// already confirmed to be plain data by a previous call. Because a
	// SysEx that is still being gathered is always resubmitted by the
	// caller with BytesConsumed == 0 (the leading 0xF0 is never dropped
	// until the message completes or breaks), re-scanning from byte zero
	// on every call would make a SysEx repeatedly interrupted by
	// Real-Time bytes quadratic in the number of interruptions. Resuming
	// from sysexScanned instead makes each call linear in the bytes it
	// hasn't seen before.
	sysexScanned int
}

// NewParser returns a Parser with no running status in effect.
func NewParser() *Parser {
	return &Parser{}
}

// Parse consumes as much of input as it can classify into exactly one
// Outcome. It never blocks. It allocates when assembling a SysEx payload
// and when returning a NeedMoreBytes outcome with a NeedMoreHint, whose
// int is heap-allocated; other outcomes allocate nothing.
func (p *Parser) Parse(input []byte) Outcome {
	if len(input) == 0 {
		return Outcome{Kind: OutcomeNeedMoreBytes}
	}

	b0 := input[0]
	if IsStatusByte(b0) {
		return p.parseExplicitStatus(input)
	}
	if p.hasRunning {
		return p.parseFixed(p.runningStatus, input, false)
	}
	return Outcome{BytesConsumed: 1, Kind: OutcomeUnexpectedDataByte}
}

func (p *Parser) parseExplicitStatus(input []byte) Outcome {
	b0 := input[0]
	switch {
	case IsRealTime(b0):
		// Real-Time messages are never gathered; running status is left
		// untouched no matter what it currently holds.
		return Outcome{
			BytesConsumed: 1,
			Kind:          OutcomeMessage,
			Message:       SystemRealTimeMessage{Status: b0},
		}
	case b0 == StatusEOX:
		p.clearRunning()
		p.sysexScanned = 0
		return Outcome{BytesConsumed: 1, Kind: OutcomeUnexpectedEox}
	case b0 == StatusSysExStart:
		return p.parseSysEx(input)
	default:
		return p.parseFixed(b0, input[1:], true)
	}
}

// parseFixed gathers the fixed number of data bytes status expects from
// data (which holds only data bytes — no leading status byte) and builds
// the resulting message. consumedLeadingByte is true when data came from
// input[1:] of an explicit status byte, so the eventual BytesConsumed and
// ByteIndex must account for that leading byte; it is false when data is
// itself the full input, decoded under a running status carried from a
// previous call.
func (p *Parser) parseFixed(status byte, data []byte, consumedLeadingByte bool) Outcome {
	n, ok := fixedDataBytes(status)
	if !ok {
		panic("midi: parseFixed called with a variable-length status byte")
	}

	limit := n
	if len(data) < limit {
		limit = len(data)
	}
	for i := 0; i < limit; i++ {
		if !IsStatusByte(data[i]) {
			continue
		}
		interrupt := data[i]
		if IsRealTime(interrupt) {
			byteIndex := i
			if consumedLeadingByte {
				byteIndex++
			}
			return Outcome{
				Kind:                OutcomeInterruptingRealTime,
				InterruptingMessage: SystemRealTimeMessage{Status: interrupt},
				ByteIndex:           byteIndex,
			}
		}
		p.clearRunning()
		consumed := i
		if consumedLeadingByte {
			consumed++
		}
		return Outcome{BytesConsumed: consumed, Kind: OutcomeBrokenMessage}
	}

	if len(data) < n {
		shortfall := n - len(data)
		return Outcome{Kind: OutcomeNeedMoreBytes, NeedMoreHint: &shortfall}
	}

	gathered := data[:n]
	isChannel := IsChannelStatus(status)

	var msg Message
	if isChannel {
		msg = buildChannelMessage(status, gathered)
		p.setRunning(status)
	} else {
		msg = buildSystemCommonMessage(status, gathered)
		p.clearRunning()
	}

	consumed := n
	if consumedLeadingByte {
		consumed++
	}
	return Outcome{BytesConsumed: consumed, Kind: OutcomeMessage, Message: msg}
}

// parseSysEx scans input (whose first byte is always 0xF0, the SysEx
// start) for the byte that ends or interrupts it.
func (p *Parser) parseSysEx(input []byte) Outcome {
	data := input[1:]

	start := p.sysexScanned
	if start > len(data) {
		// The caller handed back a shorter buffer than our bookkeeping
		// expected; that's a contract violation, but re-scanning from
		// scratch is always safe, just potentially slower.
		start = 0
	}

	for i := start; i < len(data); i++ {
		b := data[i]
		if !IsStatusByte(b) {
			continue
		}
		if b == StatusEOX {
			payload := make([]byte, i)
			copy(payload, data[:i])
			p.sysexScanned = 0
			p.clearRunning()
			return Outcome{
				BytesConsumed: 1 + i + 1,
				Kind:          OutcomeMessage,
				Message:       SystemExclusiveMessage{Payload: payload},
			}
		}
		if IsRealTime(b) {
			p.sysexScanned = i
			return Outcome{
				Kind:                OutcomeInterruptingRealTime,
				InterruptingMessage: SystemRealTimeMessage{Status: b},
				ByteIndex:           1 + i,
			}
		}
		p.sysexScanned = 0
		p.clearRunning()
		return Outcome{BytesConsumed: 1 + i, Kind: OutcomeBrokenMessage}
	}

	p.sysexScanned = len(data)
	return Outcome{Kind: OutcomeNeedMoreBytes}
}

func (p *Parser) setRunning(status byte) {
	p.runningStatus = status
	p.hasRunning = true
}

func (p *Parser) clearRunning() {
	p.runningStatus = 0
	p.hasRunning = false
}

func buildChannelMessage(status byte, data []byte) ChannelMessage {
	channel := mustChannel(LowNibble(status))
	var body ChannelBody
	switch HighNibble(status) {
	case 0x8:
		body = NoteOff{Note: mustU7(data[0]), Velocity: mustU7(data[1])}
	case 0x9:
		body = NoteOn{Note: mustU7(data[0]), Velocity: mustU7(data[1])}
	case 0xA:
		body = PolyAftertouch{Note: mustU7(data[0]), Value: mustU7(data[1])}
	case 0xB:
		body = buildControlOrModeMessage(data[0], data[1])
	case 0xC:
		body = ProgramChange{Program: mustU7(data[0])}
	case 0xD:
		body = ChannelAftertouch{Value: mustU7(data[0])}
	case 0xE:
		body = PitchBend{Value: mustU14(data[0], data[1])}
	default:
		panic("midi: buildChannelMessage called with a non-channel status byte")
	}
	return ChannelMessage{Channel: channel, Body: body}
}

func buildControlOrModeMessage(first, second byte) ChannelBody {
	if first < 120 {
		return ControlChange{Controller: mustU7(first), Value: mustU7(second)}
	}
	switch channelModeKind(first) {
	case channelModeAllSoundOff:
		return AllSoundOff{Value: mustU7(second)}
	case channelModeResetAllControllers:
		return ResetAllControllers{Value: mustU7(second)}
	case channelModeLocalControl:
		return LocalControl{On: second >= 64, RawValue: second}
	case channelModeAllNotesOff:
		return AllNotesOff{Value: mustU7(second)}
	case channelModeOmniOff:
		return OmniOff{Value: mustU7(second)}
	case channelModeOmniOn:
		return OmniOn{Value: mustU7(second)}
	case channelModeMonoOn:
		return MonoOn{Value: mustU7(second)}
	case channelModePolyOn:
		return PolyOn{Value: mustU7(second)}
	default:
		panic("midi: unreachable channel mode first byte")
	}
}

func buildSystemCommonMessage(status byte, data []byte) Message {
	switch status {
	case StatusMTCQuarterFram:
		return MTCQuarterFrame{Data: mustU7(data[0])}
	case StatusSongPosition:
		return SongPositionPointer{Position: mustU14(data[0], data[1])}
	case StatusSongSelect:
		return SongSelect{Song: mustU7(data[0])}
	case StatusUndefinedF4, StatusUndefinedF5:
		return UndefinedCommon{Status: status}
	case StatusTuneRequest:
		return TuneRequest{}
	default:
		panic("midi: buildSystemCommonMessage called with a non-system-common status byte")
	}
}

// mustU7, mustU14, and mustChannel convert bytes already proven in range
// by the classifier above. A failure here means IsStatusByte let a
// high-bit byte through as a data byte — a bug in the classifier, not a
// wire anomaly — so we assert rather than plumb an error return through
// every call site.

func mustU7(b byte) U7 {
	v, err := NewU7(b)
	if err != nil {
		panic(fmt.Sprintf("midi: internal invariant violated: %v", err))
	}
	return v
}

func mustU14(lsb, msb byte) U14 {
	v, err := NewU14(lsb, msb)
	if err != nil {
		panic(fmt.Sprintf("midi: internal invariant violated: %v", err))
	}
	return v
}

func mustChannel(nibble byte) ChannelId {
	v, err := NewChannelId(nibble)
	if err != nil {
		panic(fmt.Sprintf("midi: internal invariant violated: %v", err))
	}
	return v
}
