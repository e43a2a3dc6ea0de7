package expr

import "strings"

// argScanner walks an argument list and cuts it at top-level commas.
type argScanner struct {
	src   string
	pos   int
	depth int
	start int
}

// next returns the next argument and whether one was produced. Arguments
// are trimmed. A separator comma always yields the argument before it, even
// when empty; the final argument is produced only if it is non-blank.
func (s *argScanner) next() (string, bool) {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++
		switch c {
		case '(':
			s.depth++
		case ')':
			s.depth--
		case ',':
			if s.depth == 0 {
				arg := strings.TrimSpace(s.src[s.start : s.pos-1])
				s.start = s.pos
				return arg, true
			}
		}
	}
	if s.start <= len(s.src) {
		arg := strings.TrimSpace(s.src[s.start:])
		s.start = len(s.src) + 1
		if arg != "" {
			return arg, true
		}
	}
	return "", false
}

// SplitArgs splits the body of a call into its arguments, honouring nested
// parentheses: SplitArgs("x,add(y,z)") == ["x", "add(y,z)"].
func SplitArgs(body string) []string {
	s := &argScanner{src: body}
	var args []string
	for {
		arg, ok := s.next()
		if !ok {
			return args
		}
		args = append(args, arg)
	}
}
