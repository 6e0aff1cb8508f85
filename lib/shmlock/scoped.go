package shmlock

// --------------------------------------------------------------------------
// Scoped Acquisition
// --------------------------------------------------------------------------

// With acquires the lock with the given timeout, runs fn, and guarantees
// a matching Release on every exit path when the acquisition succeeded.
// fn receives the acquisition result so the caller can handle a timeout
// explicitly; when acquired is false nothing was taken and nothing is
// released.
func (l *Lock) With(t Timeout, fn func(acquired bool) error) error {
	acquired, err := l.Acquire(t)
	if err != nil {
		return err
	}
	if acquired {
		defer func() {
			_ = l.Release()
		}()
	}
	return fn(acquired)
}

// WithHeld is the strict variant of With: fn only runs while the lock is
// held, and an acquisition timeout is reported as ErrTimeout instead of
// a boolean. OS failures are returned as-is and are distinguishable from
// ErrTimeout via errors.Is.
func (l *Lock) WithHeld(t Timeout, fn func() error) error {
	acquired, err := l.Acquire(t)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrTimeout
	}
	defer func() {
		_ = l.Release()
	}()
	return fn()
}

// Do runs fn under the lock using the default wait window. It is the
// plain convenience form of WithHeld.
func (l *Lock) Do(fn func() error) error {
	return l.WithHeld(DefaultWait, fn)
}
