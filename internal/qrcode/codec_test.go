package qrcode

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		fields []Field
	}{
		{
			name: "minimal payment payload",
			fields: []Field{
				{Tag: TagMerchantAddress, Value: "TXk4fGb8mDsQ9pW2vYhZr3cL1nA7eJqK5o"},
				{Tag: TagAmountFiat, Value: "1000"},
				{Tag: TagSessionID, Value: "V1StGXR8_Z5jdHi6B-myT"},
			},
		},
		{
			name: "with extension tags",
			fields: []Field{
				{Tag: TagMerchantAddress, Value: "addr-1"},
				{Tag: TagAmountFiat, Value: "250000"},
				{Tag: TagSessionID, Value: "sess-42"},
				{Tag: TagTargetCurrency, Value: "USDT"},
				{Tag: TagTargetAmount, Value: "3.012048"},
				{Tag: TagExchangeRate, Value: "83.00"},
				{Tag: TagIssuedAt, Value: "1735689600"},
			},
		},
		{
			name:   "single empty value",
			fields: []Field{{Tag: "09", Value: ""}},
		},
		{
			name:   "maximum value length",
			fields: []Field{{Tag: "05", Value: strings.Repeat("x", MaxValueLength)}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Encode(tc.fields)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			decoded, err := Decode(payload)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(decoded) != len(tc.fields) {
				t.Fatalf("decoded %d fields, want %d", len(decoded), len(tc.fields))
			}
			for _, f := range tc.fields {
				if got := decoded[f.Tag]; got != f.Value {
					t.Errorf("tag %s: got %q, want %q", f.Tag, got, f.Value)
				}
			}
		})
	}
}

func TestEncodeRejectsOversizedValue(t *testing.T) {
	_, err := Encode([]Field{{Tag: "01", Value: strings.Repeat("a", MaxValueLength+1)}})
	if !errors.Is(err, ErrValueTooLong) {
		t.Fatalf("got %v, want ErrValueTooLong", err)
	}
}

func TestEncodeRejectsBadTag(t *testing.T) {
	for _, tag := range []string{"1", "ABC", "a1", "0x", ""} {
		if _, err := Encode([]Field{{Tag: tag, Value: "v"}}); !errors.Is(err, ErrInvalidTag) {
			t.Errorf("tag %q: got %v, want ErrInvalidTag", tag, err)
		}
	}
}

func TestDecodeTamperDetection(t *testing.T) {
	payload, err := Encode([]Field{
		{Tag: TagMerchantAddress, Value: "addr-1"},
		{Tag: TagAmountFiat, Value: "1000"},
		{Tag: TagSessionID, Value: "sess-1"},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Flip every position in turn. A single changed character is always
	// inside the CRC's guaranteed burst detection range, so each mutation
	// must be rejected.
	for i := 0; i < len(payload); i++ {
		mutated := []byte(payload)
		if mutated[i] == 'Z' {
			mutated[i] = 'Y'
		} else {
			mutated[i] = 'Z'
		}
		if _, err := Decode(string(mutated)); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("flip at %d: got %v, want ErrMalformedPayload", i, err)
		}
	}
}

func TestDecodeStructuralErrors(t *testing.T) {
	withCRC := func(body string) string { return body + Checksum(body) }

	cases := []struct {
		name    string
		payload string
	}{
		{"empty string", ""},
		{"shorter than checksum", "AB"},
		{"checksum only mismatch", "0000"},
		{"truncated length field", withCRC("01")},
		{"non-numeric length", withCRC("01XY")},
		{"negative length", withCRC("01-1")},
		{"signed length", withCRC("01+5AAAAA")},
		{"length overruns payload", withCRC("0150short")},
		{"non-numeric tag", withCRC("AB02xx")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.payload); !errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("got %v, want ErrMalformedPayload", err)
			}
		})
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	fields, err := Decode(Checksum(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(fields) != 0 {
		t.Fatalf("got %d fields, want 0", len(fields))
	}
}

func TestChecksumIsUppercaseHex(t *testing.T) {
	sum := Checksum("010431000")
	if len(sum) != 4 {
		t.Fatalf("checksum length %d, want 4", len(sum))
	}
	for _, c := range sum {
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			t.Fatalf("checksum %q contains non-uppercase-hex %q", sum, c)
		}
	}
}
