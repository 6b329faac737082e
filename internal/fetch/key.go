// internal/fetch/key.go
package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Key builds the cache key of an operation call: the operation name followed
// by a canonical JSON encoding of params. Params are round-tripped through a
// generic value so object keys come out sorted whatever the field order of
// the params type.
func Key(operation string, params any) (string, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode params of %s: %w", operation, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return "", fmt.Errorf("decode params of %s: %w", operation, err)
	}

	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("encode params of %s: %w", operation, err)
	}
	return operation + "@" + string(canonical), nil
}
