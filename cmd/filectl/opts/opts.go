package opts

import (
	"github.com/sentgine/file/pkg/fileops"
	"github.com/sentgine/file/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Ops     *fileops.Operator
	Console *log.Logger
}
