package worklog

// Held exposes the number of tracked lock keys to black-box tests.
func (l *KeyedLocker) Held() int { return l.held() }
