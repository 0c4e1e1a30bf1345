// Package assets embeds default files written out on first run.
package assets

import _ "embed"

//go:embed defaults/config.yaml
var DefaultConfig []byte
