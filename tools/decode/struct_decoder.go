package decode

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Options tunes Decode behaviour.
type Options struct {
	// WeaklyTypedInput enables lenient conversions such as "123" -> int
	// and 1.0 -> int64. Default true.
	WeaklyTypedInput bool
}

func DefaultOptions() Options {
	return Options{WeaklyTypedInput: true}
}

// Map decodes an untyped map (typically a JSON payload or an env snapshot)
// into a struct T. Struct fields are matched via the `json` tag.
func Map[T any](m map[string]any, opts ...Options) (*T, error) {
	if m == nil {
		return nil, fmt.Errorf("map is nil")
	}

	cfg := DefaultOptions()
	if len(opts) > 0 {
		cfg = opts[0]
	}

	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		WeaklyTypedInput: cfg.WeaklyTypedInput,
	})
	if err != nil {
		return nil, fmt.Errorf("new decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("decode struct: %w", err)
	}
	return &out, nil
}
