package routes

import (
	"regexp"
	"strings"
)

// Kind is the lexical class of one configuration line.
type Kind int

const (
	KindIgnored  Kind = iota // no arrow, not a bare word: skipped
	KindRejected             // bare word
	KindComment
	KindSend
	KindReceive
)

func (k Kind) String() string {
	switch k {
	case KindIgnored:
		return "ignored"
	case KindRejected:
		return "rejected"
	case KindComment:
		return "comment"
	case KindSend:
		return "send"
	case KindReceive:
		return "receive"
	default:
		return "unknown"
	}
}

const (
	sendArrow    = "->"
	receiveArrow = "<-"
)

var (
	bareWordRe = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)
	commentRe  = regexp.MustCompile(`^\s*#`)
)

// Classify returns the class of a single line without its newline.
// The bare-word check runs before anything else.
func Classify(line string) Kind {
	switch {
	case bareWordRe.MatchString(line):
		return KindRejected
	case commentRe.MatchString(line):
		return KindComment
	case strings.Contains(line, sendArrow):
		return KindSend
	case strings.Contains(line, receiveArrow):
		return KindReceive
	default:
		return KindIgnored
	}
}
