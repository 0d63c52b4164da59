package resolvers

import (
	"context"
	"encoding/json"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Text is a plain string field. Numbers and booleans are accepted and
// converted to their text; surrounding whitespace is trimmed unless
// KeepWhitespace is set.
type Text struct {
	MaxLength      int // 0 means unlimited
	AllowBlank     bool
	KeepWhitespace bool
}

func (t Text) Encode(s string) any { return s }

func (t Text) Decode(_ context.Context, raw json.RawMessage) (string, error) {
	s, ok := scalarText(raw)
	if !ok {
		return "", InvalidType("Not a valid string.")
	}
	if !t.KeepWhitespace {
		s = strings.TrimSpace(s)
	}
	if strings.TrimSpace(s) == "" && !t.AllowBlank {
		return "", Invalid("This field may not be blank.")
	}
	if t.MaxLength > 0 && utf8.RuneCountInString(s) > t.MaxLength {
		return "", Invalid("Ensure this field has no more than %d characters.", t.MaxLength)
	}
	return s, nil
}

// Email is an optional e-mail address field.
type Email struct {
	MaxLength int
}

func (e Email) Encode(s string) any { return s }

func (e Email) Decode(ctx context.Context, raw json.RawMessage) (string, error) {
	s, err := Text{MaxLength: e.MaxLength, AllowBlank: true}.Decode(ctx, raw)
	if err != nil || s == "" {
		return s, err
	}
	addr, perr := mail.ParseAddress(s)
	if perr != nil || addr.Address != s {
		return "", Invalid("Enter a valid email address.")
	}
	return s, nil
}

// Description is one task description paragraph. Only JSON strings are
// accepted; the empty string is allowed.
type Description struct{}

func (Description) Encode(s string) any { return s }

func (Description) Decode(_ context.Context, raw json.RawMessage) (string, error) {
	if rawKind(raw) != "str" {
		return "", InvalidType("%s: description must be a string or empty", literal(raw))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", InvalidType("%s: description must be a string or empty", literal(raw))
	}
	return s, nil
}
