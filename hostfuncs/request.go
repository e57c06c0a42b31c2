package hostfuncs

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
)

// Request is the request a guest is handling, as seen through request_get_field
// and request_set_field. Header keys are stored lowercase.
type Request struct {
	Headers     map[string]string `json:"headers"`
	RespHeaders map[string]string `json:"respHeaders"`
	Params      map[string]string `json:"params"`
	State       map[string][]byte `json:"state"`
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	ID          string            `json:"id"`
	Body        []byte            `json:"body"`
}

// NewRequest creates a Request with a fresh ID.
func NewRequest(method, rawURL string, body []byte) *Request {
	if body == nil {
		body = []byte{}
	}
	return &Request{
		Method:      method,
		URL:         rawURL,
		ID:          uuid.NewString(),
		Body:        body,
		Headers:     map[string]string{},
		RespHeaders: map[string]string{},
		Params:      map[string]string{},
		State:       map[string][]byte{},
	}
}

// SetHeaders copies the first value of each header.
func (r *Request) SetHeaders(h http.Header) {
	for k, v := range h {
		if len(v) > 0 {
			r.Headers[strings.ToLower(k)] = v[0]
		}
	}
}

// GetField reads key from the part of the request selected by field.
func (r *Request) GetField(field entities.FieldType, key string) ([]byte, error) {
	switch field {
	case entities.FieldTypeMeta:
		switch key {
		case "method":
			return []byte(r.Method), nil
		case "url":
			return []byte(r.URL), nil
		case "id":
			return []byte(r.ID), nil
		case "body":
			return r.Body, nil
		default:
			return nil, errors.Wrapf(ErrKeyNotFound, "meta %q", key)
		}
	case entities.FieldTypeBody:
		val, err := r.BodyField(key)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get BodyField")
		}
		return []byte(val), nil
	case entities.FieldTypeHeader:
		val, ok := r.Headers[strings.ToLower(key)]
		if !ok {
			return nil, errors.Wrapf(ErrKeyNotFound, "header %q", key)
		}
		return []byte(val), nil
	case entities.FieldTypeParams:
		val, ok := r.Params[key]
		if !ok {
			return nil, errors.Wrapf(ErrKeyNotFound, "param %q", key)
		}
		return []byte(val), nil
	case entities.FieldTypeState:
		val, ok := r.State[key]
		if !ok {
			return nil, errors.Wrapf(ErrKeyNotFound, "state %q", key)
		}
		return val, nil
	case entities.FieldTypeQuery:
		u, err := url.Parse(r.URL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to url.Parse")
		}
		return []byte(u.Query().Get(key)), nil
	default:
		return nil, errors.Wrapf(ErrInvalidFieldType, "module requested field type %d", field)
	}
}

// SetField writes key in the part of the request selected by field.
func (r *Request) SetField(field entities.FieldType, key, val string) error {
	switch field {
	case entities.FieldTypeMeta:
		switch key {
		case "method":
			r.Method = val
		case "url":
			r.URL = val
		case "id":
			// read-only
		case "body":
			r.Body = []byte(val)
		default:
			return errors.Wrapf(ErrKeyNotFound, "meta %q", key)
		}
	case entities.FieldTypeBody:
		if err := r.SetBodyField(key, val); err != nil {
			return errors.Wrap(err, "failed to SetBodyField")
		}
	case entities.FieldTypeHeader:
		r.Headers[strings.ToLower(key)] = val
	case entities.FieldTypeParams:
		r.Params[key] = val
	case entities.FieldTypeState:
		r.State[key] = []byte(val)
	default:
		return errors.Wrapf(ErrInvalidFieldType, "module set field type %d", field)
	}
	return nil
}

// SetResponseHeader records a header for the response.
func (r *Request) SetResponseHeader(key, val string) {
	if r.RespHeaders == nil {
		r.RespHeaders = map[string]string{}
	}
	r.RespHeaders[key] = val
}

// BodyField returns a top-level field of the JSON body.
// Strings are returned unquoted, other values as JSON.
func (r *Request) BodyField(key string) (string, error) {
	fields, err := r.bodyFields()
	if err != nil {
		return "", err
	}

	raw, ok := fields[key]
	if !ok {
		return "", errors.Wrapf(ErrKeyNotFound, "body field %q", key)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	return string(raw), nil
}

// SetBodyField sets a top-level string field of the JSON body.
func (r *Request) SetBodyField(key, val string) error {
	fields, err := r.bodyFields()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(val)
	if err != nil {
		return errors.Wrap(err, "failed to Marshal field")
	}
	fields[key] = encoded

	body, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrap(err, "failed to Marshal body")
	}
	r.Body = body
	return nil
}

func (r *Request) bodyFields() (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if len(r.Body) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(r.Body, &fields); err != nil {
		return nil, errors.Wrap(err, "failed to Unmarshal body")
	}
	return fields, nil
}
