//go:build tools

package arcade

import (
	_ "golang.org/x/tools/cmd/stringer"
)
