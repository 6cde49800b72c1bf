package prompts

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Shot is one worked example (user or assistant turn) inserted before
// the live input.
type Shot struct {
	Role    string
	Content string
}

// Prompt is a fully rendered oracle request, ready for the client.
type Prompt struct {
	Name       string
	Version    int
	System     string
	User       string
	Shots      []Shot
	SchemaName string
	Schema     map[string]any
}

// Fingerprint identifies the prompt text + version for logging, so a
// changed prompt is visible in call logs without dumping its body.
func (p Prompt) Fingerprint() string {
	h := sha256.Sum256([]byte(
		strings.TrimSpace(p.Name) + "|" +
			strconv.Itoa(p.Version) + "|" +
			strings.TrimSpace(p.System) + "|" +
			strings.TrimSpace(p.User),
	))
	return hex.EncodeToString(h[:])
}
