package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	RemoteStatus   int      `json:"remote_status,omitempty"`
	RemoteBody     string   `json:"remote_body,omitempty"`
	RemoteMessages []string `json:"remote_messages,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	for e := err; e != nil; {
		typed := As(e)
		if typed == nil {
			break
		}
		switch details := typed.Details().(type) {
		case TransportDetails:
			d.RemoteStatus = details.Status
			d.RemoteBody = details.Body
			return d
		case ProtocolDetails:
			d.RemoteMessages = ProtocolMessages(details.Errors)
			return d
		}
		e = typed.Unwrap()
	}

	return d
}

// ProtocolMessages extracts the "message" of each entry of a raw errors array.
// Entries without a message are rendered as their raw JSON.
func ProtocolMessages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []string{string(raw)}
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(entry, &msg); err == nil && msg.Message != "" {
			out = append(out, msg.Message)
			continue
		}
		out = append(out, string(entry))
	}
	return out
}
