package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const (
	userRecordVersionCurrent  = 1
	tokenRecordVersionCurrent = 1
)

// ErrCorruptRecord is returned by the decoders for any malformed payload.
// Restoration treats it as "slot absent".
var ErrCorruptRecord = errors.New("corrupt session record")

// Strings are length-prefixed with uint16 rather than a single byte because
// access tokens are JWTs and routinely exceed 255 bytes.
func writeString(buf *bytes.Buffer, s string) error {
	if len(s) > 0xFFFF {
		return ErrCorruptRecord
	}
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(s)))
	buf.Write(lenBuf[:])
	buf.WriteString(s)
	return nil
}

func readString(r *bytes.Reader) (string, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", ErrCorruptRecord
	}
	n := binary.BigEndian.Uint16(lenBuf[:])
	if int(n) > r.Len() {
		return "", ErrCorruptRecord
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		return "", ErrCorruptRecord
	}
	return string(out), nil
}

// EncodeUser serializes a user record.
func EncodeUser(u *UserRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(userRecordVersionCurrent)
	for _, s := range []string{u.ID, u.Email, u.Name, u.Plan} {
		if err := writeString(&buf, s); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeUser deserializes a user record, returning [ErrCorruptRecord] for any
// payload this package did not produce.
func DecodeUser(data []byte) (*UserRecord, error) {
	r := bytes.NewReader(data)

	version, err := r.ReadByte()
	if err != nil || version != userRecordVersionCurrent {
		return nil, ErrCorruptRecord
	}

	u := &UserRecord{}
	for _, field := range []*string{&u.ID, &u.Email, &u.Name, &u.Plan} {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		*field = s
	}
	if r.Len() != 0 {
		return nil, ErrCorruptRecord
	}
	return u, nil
}

// EncodeTokens serializes a token pair.
func EncodeTokens(t *TokenRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(tokenRecordVersionCurrent)
	for _, s := range []string{t.AccessToken, t.RefreshToken} {
		if err := writeString(&buf, s); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeTokens deserializes a token pair, returning [ErrCorruptRecord] for
// any payload this package did not produce.
func DecodeTokens(data []byte) (*TokenRecord, error) {
	r := bytes.NewReader(data)

	version, err := r.ReadByte()
	if err != nil || version != tokenRecordVersionCurrent {
		return nil, ErrCorruptRecord
	}

	t := &TokenRecord{}
	for _, field := range []*string{&t.AccessToken, &t.RefreshToken} {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		*field = s
	}
	if r.Len() != 0 {
		return nil, ErrCorruptRecord
	}
	return t, nil
}
