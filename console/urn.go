package console

import (
	"fmt"
	"strings"
)

// The backend addresses everything with aff4-style URNs:
//
//	client:  aff4:/C.1234/...        -> client ID is segment 1
//	hunt:    aff4:/hunts/H:5678      -> hunt ID is segment 2

// ClientIDFromPath extracts the client ID from a client path token.
func ClientIDFromPath(token string) (string, error) {
	parts := strings.Split(token, "/")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("client path %q: %w", token, ErrMalformedIdentifier)
	}
	return parts[1], nil
}

// HuntIDFromURN extracts the hunt ID from a hunt URN.
func HuntIDFromURN(urn string) (string, error) {
	parts := strings.Split(urn, "/")
	if len(parts) < 3 || parts[2] == "" {
		return "", fmt.Errorf("hunt urn %q: %w", urn, ErrMalformedIdentifier)
	}
	return parts[2], nil
}
