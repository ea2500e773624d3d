package socketio_utils

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var ErrBadPayload = errors.New("invalid payload")

// DecodePayload decodes the first event argument into dst. Objects are
// decoded field by field; a bare scalar is taken as the value of key, so
// "ROOM42" and {"room_id": "ROOM42"} are the same join_room payload.
// No argument leaves dst untouched.
func DecodePayload(args []interface{}, dst any, key string) error {
	if len(args) == 0 || args[0] == nil {
		return nil
	}
	value := args[0]
	switch v := value.(type) {
	case map[string]interface{}:
	case string, bool, float64, int:
		if key == "" {
			return fmt.Errorf("%w: expected an object", ErrBadPayload)
		}
		value = map[string]interface{}{key: v}
	default:
		return fmt.Errorf("%w: unexpected %T", ErrBadPayload, v)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}
