package sshutil

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ParseAuthorizedBlob extracts the raw wire blob and optional comment
// from a key in the OpenSSH "type base64data [comment]" public-key-file
// format, as found in *.pub and *-cert.pub files or supplied through a
// certificate configuration option.
func ParseAuthorizedBlob(data []byte) ([]byte, string, error) {
	fields := strings.Fields(strings.TrimSpace(string(data)))
	if len(fields) < 2 {
		return nil, "", fmt.Errorf("malformed authorized key line: expected \"type base64data [comment]\"")
	}

	blob, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode key data: %w", err)
	}

	comment := strings.Join(fields[2:], " ")
	return blob, comment, nil
}
