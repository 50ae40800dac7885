package main

import (
	"io"
	"os"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// readText returns text, or all of stdin when text is empty
func readText(text string, stdin io.Reader) (string, error) {
	if text != "" {
		return text, nil
	}
	data, err := io.ReadAll(stdin)
	return string(data), err
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == OutputStdout {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// displayName names a source path in errors and logs
func displayName(path string) string {
	if path == InputSourceStdin {
		return StdinDisplayName
	}
	return path
}
