package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque backend identifier. The backend sends numbers, but nothing on this side
// does arithmetic with them.
type ID string

func (that ID) String() string {
	return string(that)
}

func (that ID) IsEmpty() bool {
	return that == ""
}

func (that *ID) UnmarshalJSON(data []byte) error {
	text, err := decodeText(data)
	if err != nil {
		return fmt.Errorf("failed to decode id: %w", err)
	}

	*that = ID(text)

	return nil
}

// Text is a display value the backend sends either as a string or as a number.
type Text string

func (that *Text) UnmarshalJSON(data []byte) error {
	text, err := decodeText(data)
	if err != nil {
		return fmt.Errorf("failed to decode text: %w", err)
	}

	*that = Text(text)

	return nil
}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		return "", nil
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return "", err
		}
		return text, nil
	default:
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return "", err
		}
		return number.String(), nil
	}
}
