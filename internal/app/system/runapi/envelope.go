// internal/app/system/runapi/envelope.go
package runapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the wrapper every admin endpoint responds with:
//
//	{ "success": true, "message": "optional", "<payloadKey>": ... }
//
// The payload key varies per endpoint ("analytics", "agents", "data", ...),
// so the remaining fields are kept raw and decoded by the caller.
type Envelope struct {
	Success bool
	Message string

	fields map[string]json.RawMessage
}

// UnmarshalJSON keeps every top-level field so payloads can be decoded
// lazily under whichever key the endpoint uses. Only a JSON boolean true
// counts as success.
func (e *Envelope) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("decode envelope: body is not an object")
	}

	e.fields = raw
	e.Success = false
	e.Message = ""

	if v, ok := raw["success"]; ok {
		var b bool
		if json.Unmarshal(v, &b) == nil {
			e.Success = b
		}
	}
	if v, ok := raw["message"]; ok {
		var m string
		if json.Unmarshal(v, &m) == nil {
			e.Message = m
		}
	}
	return nil
}

// Payload returns the raw JSON stored under key. A missing key or an
// explicit null reports false.
func (e Envelope) Payload(key string) (json.RawMessage, bool) {
	v, ok := e.fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

// Decode unmarshals the payload stored under key into dst.
func (e Envelope) Decode(key string, dst any) error {
	raw, ok := e.Payload(key)
	if !ok {
		return fmt.Errorf("payload %q missing", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("payload %q: %w", key, err)
	}
	return nil
}

// NewEnvelope builds an Envelope in-process. Fakes and tests use it to
// hand the loader a response without going through HTTP.
func NewEnvelope(success bool, message string, payload map[string]any) (Envelope, error) {
	env := Envelope{Success: success, Message: message, fields: map[string]json.RawMessage{}}
	for k, v := range payload {
		b, err := json.Marshal(v)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode payload %q: %w", k, err)
		}
		env.fields[k] = b
	}
	return env, nil
}

// Check turns an application-level failure (success != true) into an
// error. Mutating handlers use it on the result of a POST/PUT/DELETE.
func Check(env Envelope, err error) error {
	if err != nil {
		return err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return &AppError{Message: msg}
	}
	return nil
}

// AppError is a 2xx response whose body reported success=false.
type AppError struct {
	Message string
}

func (e *AppError) Error() string { return e.Message }

// UserMessage returns text safe to show a staff user for err: the API's
// own message for application failures and 4xx responses, otherwise
// fallback. Transport and 5xx details stay in the logs.
func UserMessage(err error, fallback string) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	var se *StatusError
	if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 && se.Message != "" {
		return se.Message
	}
	return fallback
}
