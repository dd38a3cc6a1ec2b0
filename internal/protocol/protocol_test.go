package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{
			name: "simple set",
			line: "SET x ABC",
			want: Command{Op: OpSet, Key: "x", Value: "ABC"},
		},
		{
			name: "set with ttl",
			line: "SET x ABC 60",
			want: Command{Op: OpSet, Key: "x", Value: "ABC", TTL: 60 * time.Second, HasTTL: true},
		},
		{
			name: "set with zero ttl",
			line: "SET x ABC 0",
			want: Command{Op: OpSet, Key: "x", Value: "ABC", TTL: 0, HasTTL: true},
		},
		{
			name: "set with multi-token value",
			line: "SET greeting hello there world",
			want: Command{Op: OpSet, Key: "greeting", Value: "hello there world"},
		},
		{
			name: "set with multi-token value and ttl",
			line: "SET greeting hello world 30",
			want: Command{Op: OpSet, Key: "greeting", Value: "hello world", TTL: 30 * time.Second, HasTTL: true},
		},
		{
			name: "single numeric token is the value, not a ttl",
			line: "SET counter 42",
			want: Command{Op: OpSet, Key: "counter", Value: "42"},
		},
		{
			name: "two numeric tokens: last one is the ttl",
			line: "SET counter 42 10",
			want: Command{Op: OpSet, Key: "counter", Value: "42", TTL: 10 * time.Second, HasTTL: true},
		},
		{
			name: "negative trailing token is part of the value",
			line: "SET temp below -5",
			want: Command{Op: OpSet, Key: "temp", Value: "below -5"},
		},
		{
			name: "put alias",
			line: "PUT x ABC",
			want: Command{Op: OpSet, Key: "x", Value: "ABC"},
		},
		{
			name: "get",
			line: "GET x",
			want: Command{Op: OpGet, Key: "x"},
		},
		{
			name: "get ignores extra tokens",
			line: "GET x y z",
			want: Command{Op: OpGet, Key: "x"},
		},
		{
			name: "rm",
			line: "RM x",
			want: Command{Op: OpRemove, Key: "x"},
		},
		{
			name: "del alias",
			line: "DEL x",
			want: Command{Op: OpRemove, Key: "x"},
		},
		{
			name: "leading and trailing whitespace",
			line: "  GET   x  \r\n",
			want: Command{Op: OpGet, Key: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"unknown verb", "BOGUS foo", "unknown command 'BOGUS'"},
		{"lowercase verb is unknown", "get x", "unknown command 'get'"},
		{"get without key", "GET", "missing key"},
		{"rm without key", "RM", "missing key"},
		{"set without key", "SET", "missing key or value"},
		{"set without value", "SET x", "missing key or value"},
		{"empty line", "", "empty command"},
		{"whitespace only", "   \t ", "empty command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommand(tt.line)
			require.Error(t, err)
			assert.Equal(t, tt.reason, err.Error())
			assert.Equal(t, "ERROR "+tt.reason, ErrorResponse(err))
		})
	}
}
