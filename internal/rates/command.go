package rates

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"gstrecon/internal/domain"
)

// CommandLookup runs an external rate script once per keyword. The script
// receives the keyword as its last argument and prints a JSON object with a
// "rate" field (string or number) or an "error" field.
type CommandLookup struct {
	command string
	args    []string
	sem     chan struct{}
}

// NewCommandLookup creates a CommandLookup that runs at most maxProcs scripts
// at a time.
func NewCommandLookup(command string, args []string, maxProcs int) *CommandLookup {
	if maxProcs <= 0 {
		maxProcs = 4
	}
	return &CommandLookup{command: command, args: args, sem: make(chan struct{}, maxProcs)}
}

type commandOutput struct {
	Rate  json.RawMessage `json:"rate"`
	Error string          `json:"error"`
}

// Lookup implements port.RateLookup.
func (c *CommandLookup) Lookup(ctx context.Context, keyword string) (string, error) {
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	args := append(append([]string{}, c.args...), keyword)
	cmd := exec.CommandContext(ctx, c.command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("rates.CommandLookup: %s: %w (%s)", c.command, err, strings.TrimSpace(stderr.String()))
	}

	var out commandOutput
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &out); err != nil {
		return "", fmt.Errorf("rates.CommandLookup: decoding output: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("rates.CommandLookup: %s", out.Error)
	}
	return rawRate(out.Rate)
}

// rawRate flattens a JSON rate that may be a string or a number.
func rawRate(msg json.RawMessage) (string, error) {
	if len(msg) == 0 || string(msg) == "null" {
		return "", domain.ErrRateNotFound
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s, nil
	}
	var n float64
	if err := json.Unmarshal(msg, &n); err != nil {
		return "", fmt.Errorf("rates: unexpected rate value %s", string(msg))
	}
	return strconv.FormatFloat(n, 'f', -1, 64), nil
}
