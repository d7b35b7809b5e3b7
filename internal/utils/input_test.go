package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAskConfirmation(t *testing.T) {
	tests := []struct {
		input string
		force bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		in := &InputUtils{In: strings.NewReader(tt.input), Out: &out}
		assert.Equal(t, tt.want, in.AskConfirmation("Continue?", tt.force), "input %q", tt.input)
		if tt.force {
			assert.Empty(t, out.String())
		} else {
			assert.Equal(t, "Continue? (y/N): ", out.String())
		}
	}
}

func TestTruncateWarning(t *testing.T) {
	assert.Contains(t, TruncateWarning([]string{"users", "posts"}), "Tables users, posts will be truncated")
	assert.Contains(t, TruncateWarning(nil), "Every table written by this run")
}
