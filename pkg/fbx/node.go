// Package fbx writes documents as ASCII FBX 7.4 files.
//
// A file is a tree of named nodes, each with an ordered list of typed
// properties. Format builds that tree from a document.Document and dumps it.
package fbx

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Token is a property written without quotes, such as the T in "Shading: T".
type Token string

// Node is one node of an FBX file.
//
// Props may hold string, Token, int, int32, int64, float64, []int32 and
// []float64 values. A node whose only property is a slice is written in
// array form. A node without properties is always written as a block.
type Node struct {
	Name     string
	Props    []any
	Children []*Node
	Comment  string // written on its own line before the node
}

// NewNode creates a node with the given properties.
func NewNode(name string, props ...any) *Node {
	return &Node{Name: name, Props: props}
}

// AddChild appends children and returns n.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the first child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Dump writes n and its children at the given indent depth.
func (n *Node) Dump(w io.Writer, depth int) error {
	d := &dumper{w: w}
	d.node(n, depth)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *dumper) node(n *Node, depth int) {
	indent := strings.Repeat("\t", depth)
	if n.Comment != "" {
		d.printf("%s;%s\n", indent, n.Comment)
	}

	if len(n.Props) == 1 && len(n.Children) == 0 {
		if values, count, ok := arrayValues(n.Props[0]); ok {
			d.printf("%s%s: *%d {\n%s\ta: %s\n%s}\n", indent, n.Name, count, indent, values, indent)
			return
		}
	}

	props := make([]string, len(n.Props))
	for i, p := range n.Props {
		props[i] = formatProp(p)
	}
	line := indent + n.Name + ": " + strings.Join(props, ", ")

	if len(n.Children) == 0 && len(n.Props) > 0 {
		d.printf("%s\n", line)
		return
	}

	d.printf("%s {\n", line)
	for _, c := range n.Children {
		d.node(c, depth+1)
	}
	d.printf("%s}\n", indent)
}

// Comment writes an FBX comment line.
func Comment(w io.Writer, depth int, text string) error {
	_, err := fmt.Fprintf(w, "%s;%s\n", strings.Repeat("\t", depth), text)
	return err
}

var quoteReplacer = strings.NewReplacer(`"`, "&quot;", "\n", " ", "\r", " ")

func formatProp(p any) string {
	switch v := p.(type) {
	case string:
		return `"` + quoteReplacer.Replace(v) + `"`
	case Token:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	default:
		if values, count, ok := arrayValues(p); ok {
			return fmt.Sprintf("*%d {a: %s}", count, values)
		}
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func arrayValues(p any) (string, int, bool) {
	var b strings.Builder
	switch v := p.(type) {
	case []int32:
		for i, x := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(int64(x), 10))
		}
		return b.String(), len(v), true
	case []float64:
		for i, x := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(formatFloat(x))
		}
		return b.String(), len(v), true
	}
	return "", 0, false
}
