package scaffold

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// PythonLiteral renders a JSON document as the Python expression that
// str() gives for the value json.loads returns. Object key order is
// preserved; a repeated key keeps its first position and its last value.
func PythonLiteral(raw []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	out, err := pyValue(dec)
	if err != nil {
		return "", fmt.Errorf("render python literal: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("render python literal: trailing data after value")
	}
	return out, nil
}

func pyValue(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return pyDict(dec)
		case '[':
			return pyList(dec)
		default:
			return "", fmt.Errorf("unexpected delimiter %q", v)
		}
	case string:
		return pyRepr(v), nil
	case json.Number:
		return pyNumber(v)
	case bool:
		if v {
			return "True", nil
		}
		return "False", nil
	case nil:
		return "None", nil
	default:
		return "", fmt.Errorf("unexpected token %v", tok)
	}
}

func pyDict(dec *json.Decoder) (string, error) {
	var keys []string
	values := make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", err
		}
		key, ok := keyTok.(string)
		if !ok {
			return "", fmt.Errorf("object key %v is not a string", keyTok)
		}
		value, err := pyValue(dec)
		if err != nil {
			return "", err
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pyRepr(key))
		b.WriteString(": ")
		b.WriteString(values[key])
	}
	b.WriteByte('}')
	return b.String(), nil
}

func pyList(dec *json.Decoder) (string, error) {
	var b strings.Builder
	b.WriteByte('[')
	for first := true; dec.More(); first = false {
		if !first {
			b.WriteString(", ")
		}
		value, err := pyValue(dec)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
	}
	if _, err := dec.Token(); err != nil {
		return "", err
	}
	b.WriteByte(']')
	return b.String(), nil
}

// pyNumber follows json.loads: numbers without a fraction or exponent are
// ints of any size, everything else is a float printed like Python's repr.
func pyNumber(n json.Number) (string, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return "", fmt.Errorf("invalid integer %q", s)
		}
		return i.String(), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return "", fmt.Errorf("invalid number %q: %w", s, err)
	}
	return pyFloat(f), nil
}

// pyFloat prints the shortest round-tripping form, switching to exponent
// notation when the decimal point sits below -4 or above 16 digits.
func pyFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil {
		return sci
	}
	if decpt := exp + 1; decpt <= -4 || decpt > 16 {
		return sci
	}

	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed
}

// pyRepr quotes s the way Python's repr does: single quotes unless the
// string contains a single quote and no double quote.
func pyRepr(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case !unicode.IsPrint(r) && r > 0x7f:
			if r > 0xffff {
				fmt.Fprintf(&b, `\U%08x`, r)
			} else if r > 0xff {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				fmt.Fprintf(&b, `\x%02x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}
