// Package protocol implements the line-oriented cache command protocol.
//
// One command per line, whitespace-tokenized:
//
//	SET <key> <value...> [<ttl_seconds>]
//	GET <key>
//	RM  <key>
//
// PUT and DEL are accepted as aliases for SET and RM. Responses are single
// lines: OK, NULL, NOTFOUND, the stored value, or "ERROR <reason>".
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Op identifies a decoded command verb.
type Op int

const (
	OpSet Op = iota
	OpGet
	OpRemove
)

// Response lines. The value line for a GET hit is the value itself.
const (
	StatusOK       = "OK"
	StatusNull     = "NULL"
	StatusNotFound = "NOTFOUND"
)

// Command is one decoded request line.
//
// TTL is only meaningful when HasTTL is true; a wire TTL of 0 is a valid
// request for immediate expiry and is distinct from "no TTL".
type Command struct {
	Op     Op
	Key    string
	Value  string
	TTL    time.Duration
	HasTTL bool
}

var (
	errMissingKey      = errors.New("missing key")
	errMissingKeyValue = errors.New("missing key or value")
)

// ParseCommand decodes a single request line into a Command.
//
// A decode error means the line must not touch the store; the session
// reports it to the client and keeps reading.
func ParseCommand(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, errors.New("empty command")
	}

	verb, args := tokens[0], tokens[1:]

	switch verb {
	case "GET":
		if len(args) < 1 {
			return Command{}, errMissingKey
		}
		return Command{Op: OpGet, Key: args[0]}, nil

	case "RM", "DEL":
		if len(args) < 1 {
			return Command{}, errMissingKey
		}
		return Command{Op: OpRemove, Key: args[0]}, nil

	case "SET", "PUT":
		if len(args) < 2 {
			return Command{}, errMissingKeyValue
		}
		cmd := Command{Op: OpSet, Key: args[0]}
		value := args[1:]

		// Trailing-integer heuristic: with at least two tokens after the
		// key, a last token that parses as a non-negative integer is the
		// TTL, not part of the value.
		if len(value) >= 2 {
			if secs, err := strconv.Atoi(value[len(value)-1]); err == nil && secs >= 0 {
				cmd.TTL = time.Duration(secs) * time.Second
				cmd.HasTTL = true
				value = value[:len(value)-1]
			}
		}

		cmd.Value = strings.Join(value, " ")
		return cmd, nil

	default:
		return Command{}, fmt.Errorf("unknown command '%s'", verb)
	}
}

// ErrorResponse formats a decode error as a response line.
func ErrorResponse(err error) string {
	return "ERROR " + err.Error()
}
