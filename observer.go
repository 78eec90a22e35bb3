// Copyright © NGRSoftlab 2020-2025

package goscp

import (
	"os"

	"github.com/ngrsoftlab/goscp/utils"
)

// Observer is a capability set offered by callers to watch transfer
// progress: four function-valued fields instead of an interface with four
// methods, so callers compose behavior by supplying only the hooks they
// need. A nil field is a no-op; a nil *Observer is a no-op entirely.
//
// Handlers must never panic across this boundary. A panicking StartFolder
// or StartFile hook is recovered rather than propagated; the resulting
// error is handed back to the caller so it can be folded into the error
// the matching end-* call reports, per the observer contract in §4.F.
type Observer struct {
	StartFolder func(op Direction, path string, perm os.FileMode)
	EndFolder   func(op Direction, path string, perm os.FileMode, err error)
	StartFile   func(op Direction, path string, size int64, perm os.FileMode)
	EndFile     func(op Direction, path string, size int64, perm os.FileMode, err error)
}

// StartFolderEvent invokes the StartFolder hook if present; safe on a nil
// Observer. A panic inside the hook is recovered and returned rather than
// raised, so the caller can surface it via the matching EndFolderEvent.
func (o *Observer) StartFolderEvent(op Direction, path string, perm os.FileMode) (hookErr error) {
	if o == nil || o.StartFolder == nil {
		return nil
	}
	defer utils.Recover("observer.start-folder", &hookErr)
	o.StartFolder(op, path, perm)
	return nil
}

// EndFolderEvent invokes the EndFolder hook if present; safe on a nil
// Observer. A panic inside the hook is recovered and swallowed: there is
// no further end-* call to surface it through.
func (o *Observer) EndFolderEvent(op Direction, path string, perm os.FileMode, err error) {
	if o == nil || o.EndFolder == nil {
		return
	}
	var hookErr error
	defer utils.Recover("observer.end-folder", &hookErr)
	o.EndFolder(op, path, perm, err)
}

// StartFileEvent invokes the StartFile hook if present; safe on a nil
// Observer. A panic inside the hook is recovered and returned rather than
// raised, so the caller can surface it via the matching EndFileEvent.
func (o *Observer) StartFileEvent(op Direction, path string, size int64, perm os.FileMode) (hookErr error) {
	if o == nil || o.StartFile == nil {
		return nil
	}
	defer utils.Recover("observer.start-file", &hookErr)
	o.StartFile(op, path, size, perm)
	return nil
}

// EndFileEvent invokes the EndFile hook if present; safe on a nil
// Observer. A panic inside the hook is recovered and swallowed: there is
// no further end-* call to surface it through.
func (o *Observer) EndFileEvent(op Direction, path string, size int64, perm os.FileMode, err error) {
	if o == nil || o.EndFile == nil {
		return
	}
	var hookErr error
	defer utils.Recover("observer.end-file", &hookErr)
	o.EndFile(op, path, size, perm, err)
}
