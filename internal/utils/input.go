package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type InputUtils struct {
	In  io.Reader
	Out io.Writer
}

// AskConfirmation asks user for yes/no confirmation
func (i *InputUtils) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Fprintf(i.Out, "%s (y/N): ", message)

	response, _ := bufio.NewReader(i.In).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// TruncateWarning lists the tables a run is about to empty.
func TruncateWarning(tables []string) string {
	if len(tables) == 0 {
		return "⚠️  Every table written by this run will be truncated first. Continue?"
	}
	return fmt.Sprintf("⚠️  Tables %s will be truncated first. Continue?", strings.Join(tables, ", "))
}
