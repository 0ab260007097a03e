package agentstream

import (
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	dataPrefix = "data: "
	doneMarker = "[DONE]"
)

// Accumulator reassembles assistant text from an SSE chat-completion stream
// fed to it in arbitrary byte chunks. It tolerates lines and JSON payloads
// split across chunk boundaries by retaining incomplete input until the next
// write.
type Accumulator struct {
	pending strings.Builder
	text    strings.Builder
	onText  func(full string)
}

// New returns an Accumulator. onText, if non-nil, is invoked with the full
// accumulated text after every content delta.
func New(onText func(full string)) *Accumulator {
	return &Accumulator{onText: onText}
}

// Write consumes the next chunk of stream bytes. It never fails; malformed
// payloads are either deferred (mid-stream) or dropped (at Flush).
func (a *Accumulator) Write(p []byte) (int, error) {
	a.pending.WriteString(string(p))
	buf := a.pending.String()

	for {
		idx := strings.Index(buf, "\n")
		if idx < 0 {
			break
		}
		line := buf[:idx]
		buf = buf[idx+1:]

		if a.consumeLine(line) {
			// The JSON payload was split across network reads.
			// Reconstruct the line and wait for the next chunk.
			buf = line + "\n" + buf
			break
		}
	}

	a.pending.Reset()
	a.pending.WriteString(buf)
	return len(p), nil
}

// consumeLine processes one logical line. pushBack is true when the payload
// failed to parse and should be retried once more bytes arrive.
func (a *Accumulator) consumeLine(line string) (pushBack bool) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" || strings.HasPrefix(line, ":") {
		return false
	}

	data, found := strings.CutPrefix(line, dataPrefix)
	if !found {
		return false
	}
	if data == doneMarker {
		// Terminates this line only; the stream keeps being read until
		// the transport reports completion.
		return false
	}

	var chunk openai.ChatCompletionStreamResponse
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return true
	}

	if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
		a.text.WriteString(chunk.Choices[0].Delta.Content)
		if a.onText != nil {
			a.onText(a.text.String())
		}
	}
	return false
}

// Flush processes whatever remains in the buffer after the stream has ended.
// Parse failures are discarded since no further chunks will complete them.
func (a *Accumulator) Flush() {
	remainder := a.pending.String()
	a.pending.Reset()

	for _, line := range strings.Split(remainder, "\n") {
		a.consumeLine(line)
	}
}

// Text returns the accumulated assistant text so far.
func (a *Accumulator) Text() string {
	return a.text.String()
}
