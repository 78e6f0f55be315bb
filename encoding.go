package jsons

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// Loadb and Dumpb accept any character set the IANA index knows about.
// UTF-8 is the default and is handled inline.

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return true
	default:
		return false
	}
}

func decodeText(data []byte, name string) (string, error) {
	if isUTF8Name(name) {
		if !utf8.Valid(data) {
			return "", errors.New("the input is not valid utf-8")
		}
		return string(data), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", unsupportedEncoding(name, err)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("cannot decode the input as %s:\n\t * %w", name, err)
	}
	return string(decoded), nil
}

func encodeText(text string, name string) ([]byte, error) {
	if isUTF8Name(name) {
		return []byte(text), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, unsupportedEncoding(name, err)
	}
	encoded, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("cannot encode the output as %s:\n\t * %w", name, err)
	}
	return encoded, nil
}

func unsupportedEncoding(name string, err error) error {
	if err != nil {
		return fmt.Errorf("unsupported encoding %q:\n\t * %w", name, err)
	}
	return fmt.Errorf("unsupported encoding %q", name)
}
