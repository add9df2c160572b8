package provision

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/programmor/pbhook/internal/platform"
)

// State is the observed condition of a link path.
type State string

const (
	StateLinked     State = "linked"
	StateMissing    State = "missing"
	StateMismatch   State = "mismatch"
	StateNotSymlink State = "not-a-symlink"
)

// LinkStatus reports what currently sits at a link path.
type LinkStatus struct {
	Name   string
	Source string
	Link   string
	Target string
	State  State
}

// Status inspects the link for name without modifying anything.
func (p *Provisioner) Status(vars Substituter, sourceDir, name string) (LinkStatus, error) {
	source, link, err := p.paths(vars, sourceDir, name)
	st := LinkStatus{Name: name, Source: source, Link: link}
	if err != nil {
		return st, err
	}

	isLink, err := platform.IsSymlink(p.fs, link)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		st.State = StateMissing
		return st, nil
	case err != nil:
		return st, fmt.Errorf("inspecting %s: %w", link, err)
	case !isLink:
		st.State = StateNotSymlink
		return st, nil
	}

	target, err := platform.ReadSymlinkTarget(p.fs, link)
	if err != nil {
		return st, fmt.Errorf("reading link %s: %w", link, err)
	}
	st.Target = target
	if target == source {
		st.State = StateLinked
	} else {
		st.State = StateMismatch
	}
	return st, nil
}
