package smf

import "fmt"

// Format is the order in which tracks are laid out when playing back an
// SMF file, stored as a 16-bit code.
type Format int

const (
	// SingleTrack files hold exactly one track.
	SingleTrack Format = iota
	// Parallel files hold several tracks played simultaneously. Usually
	// the first track carries tempo and other song metadata.
	Parallel
	// Sequential files hold several independent songs, one per track,
	// played one after another.
	Sequential
)

func (f Format) String() string {
	switch f {
	case SingleTrack:
		return "single track"
	case Parallel:
		return "parallel"
	case Sequential:
		return "sequential"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ReadFormat reads the 16-bit format code. An unknown code is a structural
// error regardless of mode.
func (r *Reader) ReadFormat() (Format, error) {
	code, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	switch code {
	case 0:
		return SingleTrack, nil
	case 1:
		return Parallel, nil
	case 2:
		return Sequential, nil
	}
	return 0, fmt.Errorf("%w: invalid smf format %d", ErrInvalidData, code)
}

// Encode returns the 16-bit big-endian format code.
func (f Format) Encode() [2]byte {
	return [2]byte{0, byte(f)}
}

type TimeFormat int

const (
	MetricalTF TimeFormat = iota + 1
	TimeCodeTF
)

// Timing is the division field of an SMF header: either ticks per beat
// (metrical) or an SMPTE frame rate with a subframe divisor (timecode).
type Timing struct {
	Format TimeFormat

	// TicksPerBeat is set when Format is MetricalTF.
	TicksPerBeat Uint15

	// FPS and Subframe are set when Format is TimeCodeTF; a tick then
	// lasts 1/fps/subframe seconds.
	FPS      Fps
	Subframe uint8
}

// MetricalTiming returns a ticks-per-beat division.
func MetricalTiming(ticksPerBeat Uint15) Timing {
	return Timing{Format: MetricalTF, TicksPerBeat: ticksPerBeat}
}

// TimecodeTiming returns an SMPTE frames-per-second division.
func TimecodeTiming(fps Fps, subframe uint8) Timing {
	return Timing{Format: TimeCodeTF, FPS: fps, Subframe: subframe}
}

// ReadTiming reads the 16-bit division field. Bit 15 selects timecode; the
// frame rate is then stored negated in the top byte with the subframe
// divisor in the bottom byte.
func (r *Reader) ReadTiming() (Timing, error) {
	division, err := r.ReadUint16()
	if err != nil {
		return Timing{}, fmt.Errorf("unexpected eof when reading midi timing: %w", err)
	}
	if division&0x8000 == 0 {
		return MetricalTiming(NewUint15(division)), nil
	}
	fps, err := FpsFromInt(uint8(-int8(division >> 8)))
	if err != nil {
		return Timing{}, err
	}
	return TimecodeTiming(fps, uint8(division)), nil
}

// Encode returns the 16-bit big-endian division field.
func (t Timing) Encode() [2]byte {
	if t.Format == TimeCodeTF {
		return [2]byte{uint8(-int8(t.FPS.Int())), t.Subframe}
	}
	ticks := t.TicksPerBeat.Uint16()
	return [2]byte{byte(ticks >> 8), byte(ticks)}
}

// SmpteTime is an SMPTE time of day. Values are validated on
// construction:
//
//   - hour is inside [0,23]
//   - minute is inside [0,59]
//   - second is inside [0,59]
//   - frame is inside [0,fps)
//   - subframe is inside [0,99]
type SmpteTime struct {
	hour     uint8
	minute   uint8
	second   uint8
	frame    uint8
	subframe uint8
	fps      Fps
}

// NewSmpteTime validates the given fields and builds an SmpteTime; an
// out-of-range field is a structural error.
func NewSmpteTime(hour, minute, second, frame, subframe uint8, fps Fps) (SmpteTime, error) {
	ok := hour < 24 &&
		minute < 60 &&
		second < 60 &&
		frame < fps.Int() &&
		subframe < 100
	if !ok {
		return SmpteTime{}, fmt.Errorf("%w: invalid smpte time %d:%d:%d frame %d.%d at %d fps",
			ErrInvalidData, hour, minute, second, frame, subframe, fps.Int())
	}
	return SmpteTime{hour, minute, second, frame, subframe, fps}, nil
}

func (s SmpteTime) Hour() uint8     { return s.hour }
func (s SmpteTime) Minute() uint8   { return s.minute }
func (s SmpteTime) Second() uint8   { return s.second }
func (s SmpteTime) Frame() uint8    { return s.frame }
func (s SmpteTime) Subframe() uint8 { return s.subframe }
func (s SmpteTime) FPS() Fps        { return s.fps }

// SecondF64 returns the second with the frame and subframe folded in as a
// fraction.
func (s SmpteTime) SecondF64() float64 {
	return float64(s.second) + (float64(s.frame)+float64(s.subframe)/100)/s.fps.Float64()
}

// ReadSmpteTime reads the 5-byte layout: hour in the low 5 bits of byte 0
// with the 2-bit fps code above it, then minute, second, frame and
// subframe one byte each.
func (r *Reader) ReadSmpteTime() (SmpteTime, error) {
	b, err := r.Split(5)
	if err != nil {
		return SmpteTime{}, fmt.Errorf("smpte time: %w", err)
	}
	fps := FpsFromCode(NewUint2(b[0] >> 5))
	return NewSmpteTime(b[0]&0x1F, b[1], b[2], b[3], b[4], fps)
}

// Encode returns the 5-byte layout.
func (s SmpteTime) Encode() [5]byte {
	return [5]byte{s.hour | s.fps.Code().Uint8()<<5, s.minute, s.second, s.frame, s.subframe}
}

// Fps is one of the four frame rates allowed for SMPTE times by the MIDI
// standard, stored on the wire as a 2-bit code.
type Fps int

const (
	Fps24 Fps = iota
	Fps25
	// Fps29 is actually 29.97 = 30/1.001 frames per second, a value with
	// interesting historical reasons.
	Fps29
	Fps30
)

// FpsFromCode converts a 2-bit wire code to an Fps.
func FpsFromCode(code Uint2) Fps {
	switch code.Uint8() {
	case 0:
		return Fps24
	case 1:
		return Fps25
	case 2:
		return Fps29
	case 3:
		return Fps30
	}
	panic("unreachable: 2-bit fps code")
}

// Code converts an Fps to its 2-bit wire code.
func (f Fps) Code() Uint2 {
	return NewUint2(uint8(f))
}

// FpsFromInt converts a semantic integer frame rate to an Fps; 29 maps to
// the 29.97 variant.
func FpsFromInt(raw uint8) (Fps, error) {
	switch raw {
	case 24:
		return Fps24, nil
	case 25:
		return Fps25, nil
	case 29:
		return Fps29, nil
	case 30:
		return Fps30, nil
	}
	return 0, fmt.Errorf("%w: invalid smpte fps %d", ErrInvalidData, raw)
}

// Int returns the approximate integer frame rate.
func (f Fps) Int() uint8 {
	switch f {
	case Fps24:
		return 24
	case Fps25:
		return 25
	case Fps29:
		return 29
	default:
		return 30
	}
}

// Float64 returns the exact frame rate; Fps29 yields 30/1.001.
func (f Fps) Float64() float64 {
	if f == Fps29 {
		return 30.0 / 1.001
	}
	return float64(f.Int())
}
