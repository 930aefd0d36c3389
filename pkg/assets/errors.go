package assets

import "fmt"

// AssetNotFoundError reports a template that no loader could supply.
type AssetNotFoundError struct {
	Key  Key
	Path string // file that was looked for, empty for generated assets
	Err  error
}

func (e *AssetNotFoundError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("assets: template %s not found", e.Key)
	}
	return fmt.Sprintf("assets: template %s not found at %s", e.Key, e.Path)
}

func (e *AssetNotFoundError) Unwrap() error { return e.Err }
