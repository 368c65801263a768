package glyph

import (
	"fmt"
	"strconv"

	"seehuhn.de/go/geom/vec"
)

// ParsePath converts SVG path data made of straight segments into
// polylines. Each subpath becomes one polyline; subpaths with fewer than two
// points are dropped. Curve and arc commands are rejected.
func ParsePath(d string) ([][]vec.Vec2, error) {
	toks, err := lexPath(d)
	if err != nil {
		return nil, err
	}

	var (
		out        [][]vec.Vec2
		cur        []vec.Vec2
		pen, start vec.Vec2
		cmd        byte
		i          int
	)
	flush := func() {
		if len(cur) >= 2 {
			out = append(out, cur)
		}
		cur = nil
	}
	number := func() (float64, error) {
		if i >= len(toks) || toks[i].isCmd {
			return 0, fmt.Errorf("command %c: missing number", cmd)
		}
		v := toks[i].num
		i++
		return v, nil
	}
	pair := func() (vec.Vec2, error) {
		x, err := number()
		if err != nil {
			return vec.Vec2{}, err
		}
		y, err := number()
		if err != nil {
			return vec.Vec2{}, err
		}
		return vec.Vec2{X: x, Y: y}, nil
	}
	lineTo := func(p vec.Vec2) {
		if cur == nil {
			cur = []vec.Vec2{pen}
		}
		cur = append(cur, p)
		pen = p
	}

	for i < len(toks) {
		if toks[i].isCmd {
			cmd = toks[i].cmd
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path data must start with a command")
		}

		switch cmd {
		case 'M', 'm':
			p, err := pair()
			if err != nil {
				return nil, err
			}
			if cmd == 'm' {
				p = pen.Add(p)
			}
			flush()
			pen, start = p, p
			cur = []vec.Vec2{p}
			// Further pairs after a move are implicit line-tos.
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			p, err := pair()
			if err != nil {
				return nil, err
			}
			if cmd == 'l' {
				p = pen.Add(p)
			}
			lineTo(p)
		case 'H', 'h':
			x, err := number()
			if err != nil {
				return nil, err
			}
			if cmd == 'h' {
				x += pen.X
			}
			lineTo(vec.Vec2{X: x, Y: pen.Y})
		case 'V', 'v':
			y, err := number()
			if err != nil {
				return nil, err
			}
			if cmd == 'v' {
				y += pen.Y
			}
			lineTo(vec.Vec2{X: pen.X, Y: y})
		case 'Z', 'z':
			if len(cur) > 0 {
				lineTo(start)
			}
			flush()
			pen = start
			cmd = 0
		default:
			return nil, fmt.Errorf("unsupported path command %c", cmd)
		}
	}
	flush()
	return out, nil
}

type pathToken struct {
	isCmd bool
	cmd   byte
	num   float64
}

func lexPath(d string) ([]pathToken, error) {
	var toks []pathToken
	for i := 0; i < len(d); {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isCommand(c):
			toks = append(toks, pathToken{isCmd: true, cmd: c})
			i++
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			j := scanNumber(d, i)
			v, err := strconv.ParseFloat(d[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q at offset %d", d[i:j], i)
			}
			toks = append(toks, pathToken{num: v})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return toks, nil
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Z', 'z',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a':
		return true
	}
	return false
}

// scanNumber returns the end offset of the number starting at i.
func scanNumber(d string, i int) int {
	j := i
	if d[j] == '-' || d[j] == '+' {
		j++
	}
	dot := false
	for j < len(d) {
		c := d[j]
		switch {
		case c >= '0' && c <= '9':
			j++
		case c == '.' && !dot:
			dot = true
			j++
		case (c == 'e' || c == 'E') && j+1 < len(d):
			j++
			if d[j] == '-' || d[j] == '+' {
				j++
			}
			for j < len(d) && d[j] >= '0' && d[j] <= '9' {
				j++
			}
			return j
		default:
			return j
		}
	}
	return j
}
