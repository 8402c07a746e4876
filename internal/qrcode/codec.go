package qrcode

import (
	"errors"
	"fmt"
	"strconv"
)

// Payload tags. Extension data always travels as additional tags,
// never as free-form substrings of the payload.
const (
	TagMerchantAddress = "01"
	TagAmountFiat      = "02"
	TagSessionID       = "03"

	TagTargetCurrency = "10"
	TagTargetAmount   = "11"
	TagExchangeRate   = "12"

	TagIssuedAt = "20"
)

// MaxValueLength is bounded by the 2-digit length field.
const MaxValueLength = 99

const checksumLength = 4

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrValueTooLong     = errors.New("value exceeds 99 bytes")
	ErrInvalidTag       = errors.New("tag must be exactly 2 digits")
)

// Field is a single tag-length-value entry of the QR payload.
type Field struct {
	Tag   string
	Value string
}

// Encode renders fields as tag + zero-padded 2-digit length + value,
// concatenated in order, followed by the CRC16-CCITT checksum of
// everything preceding it.
func Encode(fields []Field) (string, error) {
	var body string
	for _, f := range fields {
		if !isNumericTag(f.Tag) {
			return "", fmt.Errorf("%w: %q", ErrInvalidTag, f.Tag)
		}
		if len(f.Value) > MaxValueLength {
			return "", fmt.Errorf("%w: tag %s has %d bytes", ErrValueTooLong, f.Tag, len(f.Value))
		}
		body += fmt.Sprintf("%s%02d%s", f.Tag, len(f.Value), f.Value)
	}
	return body + Checksum(body), nil
}

// Decode walks the payload consuming 2-digit tag + 2-digit length + value
// until exhausted, then verifies the trailing checksum over the prefix.
// Any structural defect or checksum mismatch yields ErrMalformedPayload;
// no partial result is ever returned.
func Decode(payload string) (map[string]string, error) {
	if len(payload) < checksumLength {
		return nil, fmt.Errorf("%w: shorter than checksum", ErrMalformedPayload)
	}

	body := payload[:len(payload)-checksumLength]
	gotCRC := payload[len(payload)-checksumLength:]
	if wantCRC := Checksum(body); gotCRC != wantCRC {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrMalformedPayload)
	}

	fields := make(map[string]string)
	for i := 0; i < len(body); {
		if i+4 > len(body) {
			return nil, fmt.Errorf("%w: truncated length field at offset %d", ErrMalformedPayload, i)
		}
		tag := body[i : i+2]
		if !isNumericTag(tag) {
			return nil, fmt.Errorf("%w: non-numeric tag at offset %d", ErrMalformedPayload, i)
		}
		// Both length characters must be digits. Atoi alone would also
		// accept signed forms like "-1" or "+5", which Encode never emits
		// and which break the slice bounds below.
		if !isDigits(body[i+2 : i+4]) {
			return nil, fmt.Errorf("%w: non-numeric length at offset %d", ErrMalformedPayload, i)
		}
		length, _ := strconv.Atoi(body[i+2 : i+4])
		if i+4+length > len(body) {
			return nil, fmt.Errorf("%w: declared length overruns payload at offset %d", ErrMalformedPayload, i)
		}
		fields[tag] = body[i+4 : i+4+length]
		i += 4 + length
	}

	return fields, nil
}

func isNumericTag(tag string) bool {
	return len(tag) == 2 && isDigits(tag)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
