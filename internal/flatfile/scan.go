package flatfile

import (
	"strconv"

	"github.com/rogersnm/roster/internal/model"
)

// parseRow reads id,name,role,salary,active from line left to right and
// stops at the first field that does not match. Fields after that point
// keep their zero value. complete is true only when every field was read
// and nothing but blanks follows the active flag.
func parseRow(line string) (e model.Employee, complete bool) {
	s := &scanner{in: line}

	id, ok := s.readInt()
	if !ok {
		return e, false
	}
	e.ID = id
	if !s.comma() {
		return e, false
	}

	name, ok := s.readField()
	if !ok {
		return e, false
	}
	e.Name = name
	if !s.comma() {
		return e, false
	}

	role, ok := s.readField()
	if !ok {
		return e, false
	}
	e.Role = role
	if !s.comma() {
		return e, false
	}

	salary, ok := s.readFloat()
	if !ok {
		return e, false
	}
	e.Salary = salary
	if !s.comma() {
		return e, false
	}

	active, ok := s.readInt()
	if !ok {
		return e, false
	}
	e.Active = active != 0

	s.blanks()
	return e, s.done()
}

type scanner struct {
	in  string
	pos int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.in)
}

func (s *scanner) peek() byte {
	return s.in[s.pos]
}

func (s *scanner) blanks() {
	for !s.done() && isSpace(s.peek()) {
		s.pos++
	}
}

func (s *scanner) comma() bool {
	if s.done() || s.peek() != ',' {
		return false
	}
	s.pos++
	return true
}

// readField reads a non-empty run of anything but a comma.
func (s *scanner) readField() (string, bool) {
	start := s.pos
	for !s.done() && s.peek() != ',' {
		s.pos++
	}
	if s.pos == start {
		return "", false
	}
	return s.in[start:s.pos], true
}

// readInt reads an optionally signed decimal integer after leading blanks.
func (s *scanner) readInt() (int, bool) {
	s.blanks()
	start := s.pos
	s.sign()
	if s.digits() == 0 {
		s.pos = start
		return 0, false
	}
	n, err := strconv.Atoi(s.in[start:s.pos])
	if err != nil {
		s.pos = start
		return 0, false
	}
	return n, true
}

// readFloat reads the longest decimal prefix: sign, digits, fraction and an
// optional exponent.
func (s *scanner) readFloat() (float64, bool) {
	s.blanks()
	start := s.pos
	s.sign()
	n := s.digits()
	if !s.done() && s.peek() == '.' {
		s.pos++
		n += s.digits()
	}
	if n == 0 {
		s.pos = start
		return 0, false
	}
	if !s.done() && (s.peek() == 'e' || s.peek() == 'E') {
		mark := s.pos
		s.pos++
		s.sign()
		if s.digits() == 0 {
			s.pos = mark
		}
	}
	f, err := strconv.ParseFloat(s.in[start:s.pos], 64)
	if err != nil {
		s.pos = start
		return 0, false
	}
	return f, true
}

func (s *scanner) sign() {
	if !s.done() && (s.peek() == '+' || s.peek() == '-') {
		s.pos++
	}
}

func (s *scanner) digits() int {
	n := 0
	for !s.done() && s.peek() >= '0' && s.peek() <= '9' {
		s.pos++
		n++
	}
	return n
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
