package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/msto63/logchain/internal/chain"
)

// ScriptEntry is one message read from a script
type ScriptEntry struct {
	Line     int
	Severity chain.Severity
	Message  string
}

// ParseScript reads lines in the console format "<SEVERITY>: <message>".
// Blank lines and lines starting with '#' are skipped. Exactly one space
// after the colon is the separator; the rest of the line is the message.
func ParseScript(r io.Reader) ([]ScriptEntry, error) {
	var entries []ScriptEntry

	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read script: %w", err)
		}
		if raw == "" && err == io.EOF {
			break
		}
		lineNo++

		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			tag, message, found := strings.Cut(line, ":")
			if !found {
				return nil, fmt.Errorf("line %d: missing ':' separator", lineNo)
			}

			sev, perr := chain.ParseSeverity(tag)
			if perr != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, perr)
			}

			entries = append(entries, ScriptEntry{
				Line:     lineNo,
				Severity: sev,
				Message:  strings.TrimPrefix(message, " "),
			})
		}

		if err == io.EOF {
			break
		}
	}

	return entries, nil
}
