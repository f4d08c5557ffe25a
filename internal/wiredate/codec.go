package wiredate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidWireDate = errors.New("invalid wire date")

// Codec converts a Date to and from one backend's JSON representation.
// A null or absent value decodes to the zero Date.
type Codec interface {
	Name() string
	Encode(d Date) (json.RawMessage, error)
	Decode(raw json.RawMessage) (Date, error)
}

var (
	// Array is the [year, month, day] form.
	Array Codec = arrayCodec{}
	// Compact is the "YYYYMMDD" numeric string form.
	Compact Codec = compactCodec{}
	// ISO is the "YYYY-MM-DD" string form.
	ISO Codec = isoCodec{}
)

func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "array":
		return Array, nil
	case "compact":
		return Compact, nil
	case "iso":
		return ISO, nil
	}
	return nil, fmt.Errorf("unknown date codec %q", name)
}

var null = json.RawMessage("null")

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, null)
}

func checked(d Date, raw json.RawMessage) (Date, error) {
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %s", ErrInvalidWireDate, string(raw))
	}
	return d, nil
}

type arrayCodec struct{}

func (arrayCodec) Name() string { return "array" }

func (arrayCodec) Encode(d Date) (json.RawMessage, error) {
	if d.IsZero() {
		return null, nil
	}
	return json.Marshal([3]int{d.Year, int(d.Month), d.Day})
}

func (arrayCodec) Decode(raw json.RawMessage) (Date, error) {
	if isNull(raw) {
		return Date{}, nil
	}
	var parts []int
	if err := json.Unmarshal(raw, &parts); err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrInvalidWireDate, err)
	}
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: want 3 elements, got %d", ErrInvalidWireDate, len(parts))
	}
	return checked(New(parts[0], time.Month(parts[1]), parts[2]), raw)
}

type compactCodec struct{}

func (compactCodec) Name() string { return "compact" }

func (compactCodec) Encode(d Date) (json.RawMessage, error) {
	if d.IsZero() {
		return null, nil
	}
	return json.Marshal(fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day))
}

func (compactCodec) Decode(raw json.RawMessage) (Date, error) {
	return decodeString(raw)
}

type isoCodec struct{}

func (isoCodec) Name() string { return "iso" }

func (isoCodec) Encode(d Date) (json.RawMessage, error) {
	if d.IsZero() {
		return null, nil
	}
	return json.Marshal(d.String())
}

func (isoCodec) Decode(raw json.RawMessage) (Date, error) {
	return decodeString(raw)
}

// decodeString accepts the compact and ISO string forms, RFC 3339
// timestamps, and a bare YYYYMMDD number.
func decodeString(raw json.RawMessage) (Date, error) {
	if isNull(raw) {
		return Date{}, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		var number json.Number
		if numErr := json.Unmarshal(raw, &number); numErr != nil {
			return Date{}, fmt.Errorf("%w: %v", ErrInvalidWireDate, err)
		}
		value = number.String()
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, nil
	}
	if len(value) == 8 && allDigits(value) {
		t, err := time.Parse("20060102", value)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidWireDate, value)
		}
		return FromTime(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return FromTime(t), nil
	}
	if len(value) >= 10 {
		if t, err := time.Parse(isoLayout, value[:10]); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidWireDate, value)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
