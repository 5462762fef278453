package sensor

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Renderer defines the contract for transforming a raw response body into the scalar
// string a sensor publishes. Users may implement custom renderers (e.g. regex capture,
// XML extraction, arbitrary template engines) to control exactly how the state is derived.
// The interface is intentionally minimal and string-based because both the response body
// and the published state are plain text.
type Renderer interface {
	// Render extracts the published value from the raw response body.
	// An empty string with a nil error means the body yielded nothing, in which case
	// the sensor publishes its "N/A" default instead.
	Render(raw string) (string, error)
}

// JSONRenderer is the built-in renderer used when a value template is configured.
// It treats the response body as possible JSON and walks a dot-separated key path
// down to the value to publish, formatting numbers without floating-point mangling.
// A body that is not JSON, or a path that resolves to nothing, yields the empty
// string rather than an error — the sensor then falls back to its default.
// Users who need anything richer than key-path extraction should supply their own Renderer.
type JSONRenderer struct {
	path []string
}

// NewJSONRenderer constructs a renderer extracting the value at the given dot-separated
// key path, e.g. "data.temperature" selects body["data"]["temperature"]. An empty path
// renders the whole decoded document.
func NewJSONRenderer(path string) *JSONRenderer {
	renderer := &JSONRenderer{}

	for _, key := range strings.Split(path, ".") {
		if key != "" {
			renderer.path = append(renderer.path, key)
		}
	}

	return renderer
}

// Render method walks the configured key path through the decoded body and formats the
// value found there as a string. Numbers are decoded as json.Number so that an integer
// like 10 renders as "10" and not "1e+01". Every way the path can fail to resolve —
// non-JSON body, intermediate value that is not an object, missing key — yields the
// empty string so the caller can substitute its default.
func (r *JSONRenderer) Render(raw string) (string, error) {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		// The body is not JSON. That counts as "template yields nothing" rather
		// than a failure.
		return "", nil
	}

	for _, key := range r.path {
		object, ok := value.(map[string]interface{})
		if !ok {
			return "", nil
		}

		value, ok = object[key]
		if !ok {
			return "", nil
		}
	}

	return formatValue(value)
}

// formatValue converts a decoded JSON value into its published string form.
// Scalars render directly; composite values are re-encoded as compact JSON.
func formatValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}
