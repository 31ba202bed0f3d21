package echo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

var errNotObject = errors.New("JSON body must be an object or array")

var cborDecoder = func() cbor.DecMode {
	dm, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// messageFrom returns the body's "message" value as text, or "" when the body
// is absent, has no such field, holds a falsy value, or uses a content type
// that is not read (JSON, CBOR and urlencoded forms are). A body that claims
// a readable type but does not parse is an error.
func messageFrom(contentType string, body []byte) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", nil
	}
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return jsonMessage(body)
	case mediaType == "application/cbor":
		return cborMessage(body)
	case mediaType == "application/x-www-form-urlencoded":
		return formMessage(body)
	default:
		return "", nil
	}
}

func jsonMessage(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", nil
	}
	if body[0] != '{' && body[0] != '[' {
		return "", errNotObject
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return "", fmt.Errorf("invalid JSON body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", errors.New("invalid JSON body: unexpected data after top-level value")
	}
	obj, _ := payload.(map[string]any)
	return textOf(obj["message"]), nil
}

func cborMessage(body []byte) (string, error) {
	if len(body) == 0 {
		return "", nil
	}
	var payload any
	if err := cborDecoder.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("invalid CBOR body: %w", err)
	}
	obj, _ := payload.(map[string]any)
	return textOf(obj["message"]), nil
}

func formMessage(body []byte) (string, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return "", fmt.Errorf("invalid form body: %w", err)
	}
	switch msgs := values["message"]; len(msgs) {
	case 0:
		return "", nil
	case 1:
		return msgs[0], nil
	default:
		return textOf(msgs), nil
	}
}

// textOf renders v as text. Falsy values (null, false, zero, "") give "".
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return ""
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return numberText(f)
	case float64:
		return numberText(t)
	case float32:
		return numberText(float64(t))
	case int64:
		if t == 0 {
			return ""
		}
		return strconv.FormatInt(t, 10)
	case uint64:
		if t == 0 {
			return ""
		}
		return strconv.FormatUint(t, 10)
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(buf)
}

func numberText(f float64) string {
	if f == 0 || math.IsNaN(f) {
		return ""
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		return strings.NewReplacer("e-0", "e-", "e+0", "e+").Replace(s)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
