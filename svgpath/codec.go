package svgpath

import (
	"fmt"
	"strconv"
	"strings"
)

// This file implements the path command mini-language: a
// closed vocabulary of moveto, lineto and cubic curveto
// commands with numeric coordinates.

// coordPrec is the number of decimal places kept when
// serializing coordinates. One decimal keeps the command
// strings compact while staying well below visible error.
const coordPrec = 1

// FormatError reports document text or path data falling outside
// the closed subset of the format. It is never silently repaired:
// accepting malformed geometry would corrupt later hit testing.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string { return e.msg }

func formatErrorf(format string, args ...interface{}) *FormatError {
	return &FormatError{msg: fmt.Sprintf(format, args...)}
}

// NewFormatError returns a FormatError with the given message.
// The document codec reports framing violations with the same
// error kind as bad path data.
func NewFormatError(msg string) *FormatError { return &FormatError{msg: msg} }

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', coordPrec, 64)
}

func fmtPoint(p Point) string {
	return fmtCoord(p.X) + "," + fmtCoord(p.Y)
}

// Encode returns the command string for a fitted curve sequence:
// one leading moveto at the first curve's start point, then one
// cubic curveto per segment. Returns the empty string for an
// empty input.
func Encode(curves []CubicBezier) string {
	if len(curves) == 0 {
		return ""
	}
	chunks := make([]string, 0, len(curves)+1)
	chunks = append(chunks, "M"+fmtPoint(curves[0].P0))
	for _, c := range curves {
		chunks = append(chunks, "C"+fmtPoint(c.P1)+" "+fmtPoint(c.P2)+" "+fmtPoint(c.P3))
	}
	return strings.Join(chunks, " ")
}

// EncodePolyline returns the command string connecting the points
// with straight lines. It is the fallback used whenever curve
// fitting is skipped or cannot produce a curve.
func EncodePolyline(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	chunks := make([]string, 0, len(points))
	chunks = append(chunks, "M"+fmtPoint(points[0]))
	for _, p := range points[1:] {
		chunks = append(chunks, "L"+fmtPoint(p))
	}
	return strings.Join(chunks, " ")
}

// pathParser walks a command string, tracking the current point
// like a plotter head.
type pathParser struct {
	data    string
	pos     int
	cur     Point
	started bool
	segs    []Segment
}

// Decode parses a command string into its geometric segments.
// Only absolute and relative moveto, lineto and curveto commands
// are accepted; any other command letter yields a FormatError.
func Decode(data string) ([]Segment, error) {
	p := pathParser{data: data}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.segs, nil
}

func (p *pathParser) run() error {
	for {
		p.skipSeparators()
		if p.pos >= len(p.data) {
			return nil
		}
		cmd := p.data[p.pos]
		p.pos++
		rel := cmd >= 'a' && cmd <= 'z'
		switch cmd {
		case 'M', 'm':
			if err := p.moveTo(rel); err != nil {
				return err
			}
		case 'L', 'l':
			if err := p.lineTo(rel); err != nil {
				return err
			}
		case 'C', 'c':
			if err := p.curveTo(rel); err != nil {
				return err
			}
		default:
			return formatErrorf("unsupported path command %q", string(cmd))
		}
	}
}

func (p *pathParser) moveTo(rel bool) error {
	pt, err := p.point(rel)
	if err != nil {
		return err
	}
	p.cur = pt
	p.started = true
	// Extra coordinate pairs after a moveto are implicit linetos.
	for p.hasNumber() {
		next, err := p.point(rel)
		if err != nil {
			return err
		}
		p.segs = append(p.segs, Line{Start: p.cur, End: next})
		p.cur = next
	}
	return nil
}

func (p *pathParser) lineTo(rel bool) error {
	if !p.started {
		return formatErrorf("path data must begin with a moveto")
	}
	for first := true; first || p.hasNumber(); first = false {
		next, err := p.point(rel)
		if err != nil {
			return err
		}
		p.segs = append(p.segs, Line{Start: p.cur, End: next})
		p.cur = next
	}
	return nil
}

func (p *pathParser) curveTo(rel bool) error {
	if !p.started {
		return formatErrorf("path data must begin with a moveto")
	}
	for first := true; first || p.hasNumber(); first = false {
		c1, err := p.point(rel)
		if err != nil {
			return err
		}
		c2, err := p.point(rel)
		if err != nil {
			return err
		}
		end, err := p.point(rel)
		if err != nil {
			return err
		}
		p.segs = append(p.segs, CubicBezier{P0: p.cur, P1: c1, P2: c2, P3: end})
		p.cur = end
	}
	return nil
}

func (p *pathParser) point(rel bool) (Point, error) {
	x, err := p.number()
	if err != nil {
		return Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return Point{}, err
	}
	pt := Point{x, y}
	if rel {
		pt = p.cur.Add(pt)
	}
	return pt, nil
}

func isSeparator(b byte) bool {
	return b == ' ' || b == ',' || b == '\t' || b == '\n' || b == '\r'
}

func (p *pathParser) skipSeparators() {
	for p.pos < len(p.data) && isSeparator(p.data[p.pos]) {
		p.pos++
	}
}

// hasNumber reports whether the next token starts a numeric value,
// which continues the current command per the SVG grammar.
func (p *pathParser) hasNumber() bool {
	p.skipSeparators()
	if p.pos >= len(p.data) {
		return false
	}
	b := p.data[p.pos]
	return b == '-' || b == '+' || b == '.' || (b >= '0' && b <= '9')
}

func (p *pathParser) number() (float64, error) {
	p.skipSeparators()
	start := p.pos
	if p.pos < len(p.data) && (p.data[p.pos] == '-' || p.data[p.pos] == '+') {
		p.pos++
	}
	seenDot := false
	for p.pos < len(p.data) {
		b := p.data[p.pos]
		if b >= '0' && b <= '9' {
			p.pos++
			continue
		}
		// a second dot starts the next number, as in "1.5.5"
		if b == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		if b == 'e' || b == 'E' {
			p.pos++
			if p.pos < len(p.data) && (p.data[p.pos] == '-' || p.data[p.pos] == '+') {
				p.pos++
			}
			continue
		}
		break
	}
	if p.pos == start {
		return 0, formatErrorf("expected number at offset %d in path data", start)
	}
	v, err := strconv.ParseFloat(p.data[start:p.pos], 64)
	if err != nil {
		return 0, formatErrorf("malformed number %q in path data", p.data[start:p.pos])
	}
	return v, nil
}
