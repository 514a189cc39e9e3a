// Package clip is the clipboard collaborator of the conv commands.
package clip

import "github.com/atotto/clipboard"

// Clipboard reads and replaces the clipboard's text content.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

func (System) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Memory is an in-memory clipboard for tests.
type Memory struct {
	Text string
}

func (m *Memory) ReadAll() (string, error) {
	return m.Text, nil
}

func (m *Memory) WriteAll(text string) error {
	m.Text = text
	return nil
}
