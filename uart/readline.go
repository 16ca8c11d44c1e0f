package uart

// LineStatus tells how ReadLineBounded finished.
type LineStatus int

const (
	LineComplete  LineStatus = iota // terminator seen, or nothing to read
	LineTruncated                   // maxLen characters accumulated
	LineTimedOut                    // idle limit reached
)

func (s LineStatus) String() string {
	switch s {
	case LineComplete:
		return "complete"
	case LineTruncated:
		return "truncated"
	case LineTimedOut:
		return "timed out"
	}
	return "unknown"
}

const (
	msgMaxLength = "ERROR! Maximum length reached, terminating input.\n"
	msgTimedOut  = "ERROR! Input timed out, terminating input.\n"
)

// ReadLine collects characters until term arrives. The terminator is not
// part of the result. It blocks until then, however long that takes.
func (u *UART) ReadLine(term byte) string {
	var line []byte
	for {
		c, ok := u.PollChar()
		if !ok {
			u.idle()
			continue
		}
		if c == term {
			return string(line)
		}
		line = append(line, c)
	}
}

// ReadLineBounded is ReadLine with two ways out: after maxLen characters,
// or after timeout consecutive polls that brought nothing. Either one sends
// an error line on the link and returns what was read so far. The timeout
// is counted in polls, so its length in seconds depends on the caller.
func (u *UART) ReadLineBounded(term byte, maxLen int, timeout uint32) (string, LineStatus) {
	if maxLen <= 0 || timeout == 0 {
		return "", LineComplete
	}
	line := make([]byte, 0, maxLen)
	var idle uint32
	for {
		c, ok := u.PollChar()
		if !ok {
			idle++
			if idle == timeout {
				u.Print(msgTimedOut)
				return string(line), LineTimedOut
			}
			u.idle()
			continue
		}
		if c == term {
			return string(line), LineComplete
		}
		line = append(line, c)
		idle = 0
		if len(line) == maxLen {
			u.Print(msgMaxLength)
			return string(line), LineTruncated
		}
	}
}
