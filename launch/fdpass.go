package launch

import (
	"github.com/grovetools/termlaunch/errors"
)

// FDTransport assigns transport slots for forwarded file descriptors.
// The index is opaque to the plan builder; it is whatever slot the
// descriptor-forwarding layer hands out.
type FDTransport interface {
	Append(fd int) (int, error)
}

// UnixFDList is the default transport: a flat list whose indices are
// assigned in append order, mirroring the descriptor list eventually
// attached to the activation message.
type UnixFDList struct {
	fds []int
}

// NewUnixFDList creates an empty descriptor list.
func NewUnixFDList() *UnixFDList {
	return &UnixFDList{}
}

// Append queues fd and returns its transport index.
func (l *UnixFDList) Append(fd int) (int, error) {
	l.fds = append(l.fds, fd)
	return len(l.fds) - 1, nil
}

// FDs returns the queued descriptors in transport order.
func (l *UnixFDList) FDs() []int {
	return l.fds
}

// addPassFD records a forward request on the tab. The table is keyed by
// target fd; duplicates are rejected before a transport slot is taken.
func (t *Tab) addPassFD(fd int, transport FDTransport) error {
	for _, e := range t.FDs {
		if e.FD == fd {
			return errors.UsageConflict("cannot pass FD %d twice", fd)
		}
	}

	idx, err := transport.Append(fd)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "queueing file descriptor").
			WithDetail("fd", fd)
	}

	t.FDs = append(t.FDs, PassFD{Index: idx, FD: fd})
	return nil
}
