package render

import (
	"encoding/json"
	"io"
)

// Renderer renders the result of one use case
type Renderer[T any] interface {
	Render(result T) error
}

// JSON writes v as indented JSON
func JSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
