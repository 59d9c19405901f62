// Package dataset holds the feature table: ordered, typed columns with NaN
// (numeric) or "" (text) as the missing marker.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	Numeric Kind = iota
	Text
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "float64"
	case Text:
		return "object"
	default:
		return "unknown"
	}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "float64":
		return Numeric, nil
	case "object":
		return Text, nil
	default:
		return Numeric, fmt.Errorf("unknown column kind %q", s)
	}
}

type Column struct {
	Name string
	Kind Kind
	Num  []float64
	Str  []string
}

func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Num)
	}
	return len(c.Str)
}

// IsMissing reports whether row i holds the missing marker.
func (c *Column) IsMissing(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Num[i])
	}
	return c.Str[i] == ""
}

// Format renders row i the way it is written to CSV.
func (c *Column) Format(i int) string {
	if c.Kind == Text {
		return c.Str[i]
	}
	return FormatFloat(c.Num[i])
}

// Present returns the non-missing numeric values.
func (c *Column) Present() []float64 {
	out := make([]float64, 0, len(c.Num))
	for _, v := range c.Num {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Frame is a column-oriented table. All columns have the same length.
type Frame struct {
	cols  []*Column
	index map[string]int
	rows  int
}

func NewFrame() *Frame {
	return &Frame{index: make(map[string]int)}
}

func (f *Frame) add(c *Column) error {
	if _, dup := f.index[c.Name]; dup {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(f.cols) > 0 && c.Len() != f.rows {
		return fmt.Errorf("column %q has %d rows, frame has %d", c.Name, c.Len(), f.rows)
	}
	f.rows = c.Len()
	f.index[c.Name] = len(f.cols)
	f.cols = append(f.cols, c)
	return nil
}

func (f *Frame) AddNumeric(name string, values []float64) error {
	return f.add(&Column{Name: name, Kind: Numeric, Num: values})
}

func (f *Frame) AddText(name string, values []string) error {
	return f.add(&Column{Name: name, Kind: Text, Str: values})
}

// AddInferred adds raw strings as a numeric column when every non-empty cell
// parses as a number, and as text otherwise.
func (f *Frame) AddInferred(name string, raw []string) error {
	nums := make([]float64, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "nan") {
			nums[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return f.AddText(name, raw)
		}
		nums[i] = v
	}
	return f.AddNumeric(name, nums)
}

func (f *Frame) Len() int { return f.rows }

func (f *Frame) Width() int { return len(f.cols) }

func (f *Frame) Columns() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name
	}
	return out
}

func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// NumericColumns lists numeric column names in frame order.
func (f *Frame) NumericColumns() []string {
	var out []string
	for _, c := range f.cols {
		if c.Kind == Numeric {
			out = append(out, c.Name)
		}
	}
	return out
}

// Select returns a frame with the named columns. Unknown names are an error.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := NewFrame()
	for _, n := range names {
		c, ok := f.Column(n)
		if !ok {
			return nil, fmt.Errorf("no column %q", n)
		}
		if err := out.add(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Where returns the rows for which keep returns true.
func (f *Frame) Where(keep func(row int) bool) *Frame {
	var rows []int
	for i := 0; i < f.rows; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return f.take(rows)
}

// Head returns the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n > f.rows {
		n = f.rows
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return f.take(rows)
}

func (f *Frame) take(rows []int) *Frame {
	out := NewFrame()
	out.rows = len(rows)
	for _, c := range f.cols {
		nc := &Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == Numeric {
			nc.Num = make([]float64, len(rows))
			for j, r := range rows {
				nc.Num[j] = c.Num[r]
			}
		} else {
			nc.Str = make([]string, len(rows))
			for j, r := range rows {
				nc.Str[j] = c.Str[r]
			}
		}
		out.index[nc.Name] = len(out.cols)
		out.cols = append(out.cols, nc)
	}
	return out
}
