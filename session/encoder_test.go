package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestUserRecordRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		record UserRecord
	}{
		{"full", UserRecord{ID: "u-1", Email: "ana@example.com", Name: "Ana", Plan: "premium"}},
		{"empty fields", UserRecord{ID: "u-2"}},
		{"zero value", UserRecord{}},
		{"unicode name", UserRecord{ID: "u-3", Email: "joão@example.com", Name: "João Ângelo", Plan: "free"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := EncodeUser(&tc.record)
			if err != nil {
				t.Fatalf("EncodeUser failed: %v", err)
			}
			got, err := DecodeUser(data)
			if err != nil {
				t.Fatalf("DecodeUser failed: %v", err)
			}
			if *got != tc.record {
				t.Fatalf("round trip changed record: got %+v, want %+v", *got, tc.record)
			}
		})
	}
}

func TestTokenRecordRoundTrip(t *testing.T) {
	// Access tokens are JWTs and routinely exceed the single-byte length
	// range; make sure long values survive.
	long := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 40)

	cases := []struct {
		name   string
		record TokenRecord
	}{
		{"short", TokenRecord{AccessToken: "a", RefreshToken: "r"}},
		{"long access token", TokenRecord{AccessToken: long, RefreshToken: "r"}},
		{"zero value", TokenRecord{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := EncodeTokens(&tc.record)
			if err != nil {
				t.Fatalf("EncodeTokens failed: %v", err)
			}
			got, err := DecodeTokens(data)
			if err != nil {
				t.Fatalf("DecodeTokens failed: %v", err)
			}
			if *got != tc.record {
				t.Fatal("round trip changed record")
			}
		})
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	valid, err := EncodeUser(&UserRecord{ID: "u-1", Email: "ana@example.com", Name: "Ana", Plan: "free"})
	if err != nil {
		t.Fatalf("EncodeUser failed: %v", err)
	}

	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"version only", []byte{userRecordVersionCurrent}},
		{"unknown version", append([]byte{99}, valid[1:]...)},
		{"truncated", valid[:len(valid)-3]},
		{"length past end", []byte{userRecordVersionCurrent, 0xFF, 0xFF, 'x'}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeUser(tc.data); !errors.Is(err, ErrCorruptRecord) {
				t.Fatalf("err = %v, want ErrCorruptRecord", err)
			}
		})
	}
}

func TestEncodeRejectsOversizedField(t *testing.T) {
	record := UserRecord{Name: strings.Repeat("x", 0x10000)}
	if _, err := EncodeUser(&record); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("err = %v, want ErrCorruptRecord", err)
	}
}

func TestUserAndTokenEncodingsAreDistinct(t *testing.T) {
	// Both formats carry a version byte; a token payload must not decode as a
	// user record with the wrong field count silently accepted.
	tokens, err := EncodeTokens(&TokenRecord{AccessToken: "a", RefreshToken: "r"})
	if err != nil {
		t.Fatalf("EncodeTokens failed: %v", err)
	}
	if _, err := DecodeUser(tokens); err == nil {
		t.Fatal("token payload decoded as user record")
	}

	user, err := EncodeUser(&UserRecord{ID: "u", Email: "e", Name: "n", Plan: "p"})
	if err != nil {
		t.Fatalf("EncodeUser failed: %v", err)
	}
	if !bytes.Equal(user[:1], []byte{userRecordVersionCurrent}) {
		t.Fatal("user encoding does not start with its version byte")
	}
}
