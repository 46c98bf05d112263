package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/vpi"
)

// GraphNode is one object in a dump. Owned links are expanded as
// Children; links to objects owned elsewhere appear in Refs by full name.
type GraphNode struct {
	Kind     string            `json:"kind" yaml:"kind"`
	Name     string            `json:"name,omitempty" yaml:"name,omitempty"`
	Loc      string            `json:"loc,omitempty" yaml:"loc,omitempty"`
	Props    map[string]string `json:"props,omitempty" yaml:"props,omitempty"`
	Refs     map[string]string `json:"refs,omitempty" yaml:"refs,omitempty"`
	Children []GraphEdge       `json:"children,omitempty" yaml:"children,omitempty"`
}

// GraphEdge labels a child with the relation it was reached through.
type GraphEdge struct {
	Rel  string     `json:"rel" yaml:"rel"`
	Node *GraphNode `json:"node" yaml:"node"`
}

type graphBuilder struct {
	seen map[model.ObjID]bool
}

// BuildGraph converts the objects reachable from roots into a tree of
// GraphNodes using only the handle layer. Stale roots are skipped.
func BuildGraph(roots []*vpi.Handle) []*GraphNode {
	b := &graphBuilder{seen: make(map[model.ObjID]bool)}
	out := make([]*GraphNode, 0, len(roots))
	for _, h := range roots {
		if n := b.node(h); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (b *graphBuilder) node(h *vpi.Handle) *GraphNode {
	if _, err := vpi.Check(h); err != nil {
		return nil
	}
	b.seen[h.ID()] = true
	k := h.Type()
	n := &GraphNode{
		Kind: k.String(),
		Name: vpi.StringProperty(schema.PropName, h),
	}
	if line := vpi.Property(schema.PropLineNo, h); line != schema.Undefined {
		n.Loc = fmt.Sprintf("%s:%d:%d", vpi.StringProperty(schema.PropFile, h), line,
			vpi.Property(schema.PropColumnNo, h))
	}
	for _, f := range schema.DefOf(k).Fields {
		fd := f.Def()
		switch fd.Type {
		case schema.FieldInt, schema.FieldBool:
			n.setProp(fd.Name, strconv.FormatInt(vpi.Property(fd.Prop, h), 10))
		case schema.FieldString:
			if s := vpi.StringProperty(fd.Prop, h); s != "" {
				n.setProp(fd.Name, s)
			}
		case schema.FieldRef:
			b.link(n, h, fd.Name, vpi.Relate(fd.Rel, h))
		case schema.FieldColl:
			for _, child := range vpi.Collect(vpi.Iterate(fd.Rel, h)) {
				b.link(n, h, fd.Name, child)
			}
		}
	}
	return n
}

func (b *graphBuilder) link(n *GraphNode, owner *vpi.Handle, rel string, target *vpi.Handle) {
	if target == nil {
		return
	}
	parent := vpi.Relate(schema.RelParent, target)
	if parent != nil && parent.ID() == owner.ID() && !b.seen[target.ID()] {
		if child := b.node(target); child != nil {
			n.Children = append(n.Children, GraphEdge{Rel: rel, Node: child})
		}
		return
	}
	name := ""
	if vpi.StringProperty(schema.PropName, target) != "" {
		name = vpi.StringProperty(schema.PropFullName, target)
	}
	if name == "" {
		name = fmt.Sprintf("%s#%d", target.Type(), target.ID())
	}
	if n.Refs == nil {
		n.Refs = make(map[string]string)
	}
	if prev, ok := n.Refs[rel]; ok {
		name = prev + ", " + name
	}
	n.Refs[rel] = name
}

func (n *GraphNode) setProp(k, v string) {
	if n.Props == nil {
		n.Props = make(map[string]string)
	}
	n.Props[k] = v
}

func (n *GraphNode) label() string {
	var sb strings.Builder
	sb.WriteString(n.Kind)
	if n.Name != "" {
		sb.WriteString(" ")
		sb.WriteString(n.Name)
	}
	if n.Loc != "" {
		sb.WriteString(" @")
		sb.WriteString(n.Loc)
	}
	for _, k := range sortedKeys(n.Props) {
		fmt.Fprintf(&sb, " %s=%s", k, n.Props[k])
	}
	for _, k := range sortedKeys(n.Refs) {
		fmt.Fprintf(&sb, " %s->%s", k, n.Refs[k])
	}
	return sb.String()
}

// GraphPretty writes the dump as an indented tree.
func GraphPretty(w io.Writer, nodes []*GraphNode) error {
	for _, n := range nodes {
		if _, err := fmt.Fprintln(w, n.label()); err != nil {
			return err
		}
		if err := writeChildren(w, n, ""); err != nil {
			return err
		}
	}
	return nil
}

func writeChildren(w io.Writer, n *GraphNode, prefix string) error {
	for i, e := range n.Children {
		last := i == len(n.Children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, e.Rel, e.Node.label()); err != nil {
			return err
		}
		if err := writeChildren(w, e.Node, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// GraphJSON writes the dump as indented JSON.
func GraphJSON(w io.Writer, nodes []*GraphNode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nodes)
}

// GraphYAML writes the dump as YAML.
func GraphYAML(w io.Writer, nodes []*GraphNode) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nodes); err != nil {
		return err
	}
	return enc.Close()
}
