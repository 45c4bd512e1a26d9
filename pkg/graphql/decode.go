package graphql

import (
	"encoding/json"

	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
)

// DecodeField unmarshals data[field] into dest. It reports false, with no error,
// when data is empty or the field is absent or null.
func DecodeField(data json.RawMessage, field string, dest any) (bool, error) {
	if isAbsent(data) {
		return false, nil
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDecode, err, "decode response data")
	}
	raw, ok := members[field]
	if !ok || isAbsent(raw) {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDecode, err, "decode "+field)
	}
	return true, nil
}
