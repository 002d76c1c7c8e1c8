package cookie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Run("Returns the value of a present cookie", func(t *testing.T) {
		// Given: a cookie string with several segments
		header := "sessionID=12; access_token=abc.def; unfinishedGameID=3"

		// When: reading each name
		// Then: padded segments still match
		assert.Equal(t, "abc.def", Get(header, AccessToken))
		assert.Equal(t, "12", Get(header, SessionID))
		assert.Equal(t, "3", Get(header, UnfinishedGameID))
	})

	t.Run("Returns empty string for an absent cookie", func(t *testing.T) {
		assert.Equal(t, "", Get("sessionID=12", AccessToken))
		assert.Equal(t, "", Get("", AccessToken))
	})

	t.Run("Skips several leading spaces", func(t *testing.T) {
		assert.Equal(t, "v", Get("a=1;    name=v", "name"))
	})

	t.Run("Decodes percent-encoded values", func(t *testing.T) {
		assert.Equal(t, "hello world", Get("name=hello%20world", "name"))
	})

	t.Run("Does not match a name that only shares a suffix", func(t *testing.T) {
		assert.Equal(t, "", Get("xaccess_token=1", AccessToken))
	})

	t.Run("Falls back to the raw string on bad encoding", func(t *testing.T) {
		assert.Equal(t, "50%", Get("ratio=50%", "ratio"))
	})
}

func TestJoin(t *testing.T) {
	// Given: values with characters that need escaping
	values := map[string]string{
		SessionID:   "7",
		AccessToken: "a b",
	}

	// When: rendering them
	header := Join(values)

	// Then: the output is ordered and readable by Get
	assert.Equal(t, "access_token=a%20b; sessionID=7", header)
	assert.Equal(t, "a b", Get(header, AccessToken))
	assert.Equal(t, "7", Get(header, SessionID))
}

func TestJoin_SeparatorInValue(t *testing.T) {
	// Given: a value holding the segment separator
	header := Join(map[string]string{SessionID: "7;8"})

	// When: reading it back
	value := Get(header, SessionID)

	// Then: decoding before splitting cuts the value at the separator
	assert.Equal(t, "7", value)
}
