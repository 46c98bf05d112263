package serial

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/source"
	"hdlgraph/internal/trace"
)

// plan is the renumbering of the reachable part of an arena.
type plan struct {
	order  []model.ObjID
	objMap map[model.ObjID]uint32
	colls  []model.CollID
	colMap map[model.CollID]uint32
	strs   *source.Interner
	strMap map[source.StringID]source.StringID
	// owned holds the kept objects whose parent links to them through a
	// non-cross field; any other parent is written as 0.
	owned map[model.ObjID]bool
}

func newPlan(a *model.Arena) *plan {
	p := &plan{
		objMap: make(map[model.ObjID]uint32, a.NumObjects()),
		colMap: make(map[model.CollID]uint32, a.NumCollections()),
		strs:   source.NewInterner(),
		strMap: map[source.StringID]source.StringID{source.NoStringID: source.NoStringID},
		owned:  make(map[model.ObjID]bool),
	}
	adopt := func(parent, child model.ObjID, f schema.FieldID) {
		if !f.Def().Cross && a.Alive(child) && a.Parent(child) == parent {
			p.owned[child] = true
		}
	}
	push := func(id model.ObjID) {
		if _, ok := p.objMap[id]; ok || !a.Alive(id) {
			return
		}
		p.order = append(p.order, id)
		p.objMap[id] = uint32(len(p.order)) //nolint:gosec // bounded by arena size
	}
	for _, r := range a.Roots() {
		push(r)
	}
	for i := 0; i < len(p.order); i++ {
		id := p.order[i]
		o := a.Get(id)
		p.str(a, o.Name)
		p.str(a, o.Loc.File)
		p.str(a, o.Text)
		for si, f := range schema.DefOf(o.Kind).Fields {
			switch f.Def().Type {
			case schema.FieldString:
				p.str(a, source.StringID(o.Slots[si])) //nolint:gosec // interned id
			case schema.FieldRef:
				t := model.ObjID(o.Slots[si]) //nolint:gosec // slot holds an ObjID
				adopt(id, t, f)
				push(t)
			case schema.FieldColl:
				c := model.CollID(o.Slots[si]) //nolint:gosec // slot holds a CollID
				if c == model.NoCollID {
					continue
				}
				if _, ok := p.colMap[c]; !ok {
					p.colls = append(p.colls, c)
					p.colMap[c] = uint32(len(p.colls)) //nolint:gosec // bounded by arena size
				}
				for _, item := range a.Items(c) {
					adopt(id, item, f)
					push(item)
				}
			}
		}
	}
	return p
}

func (p *plan) str(a *model.Arena, id source.StringID) {
	if _, ok := p.strMap[id]; ok {
		return
	}
	p.strMap[id] = p.strs.Intern(a.Strings().MustLookup(id))
}

func (p *plan) obj(id model.ObjID) uint32 {
	return p.objMap[id] // 0 when not kept
}

// Save writes the graph reachable from a's roots to path. The file is
// written next to path and renamed over it only once complete, so a failed
// save leaves any previous file in place.
func Save(ctx context.Context, a *model.Arena, path string) (err error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "save")
	defer func() { span.EndErr(err) }()

	f, err := os.CreateTemp(filepath.Dir(path), ".hdlg-*")
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = f.Close()           //nolint:errcheck
			_ = os.Remove(f.Name()) //nolint:errcheck
		}
	}()

	bw := bufio.NewWriter(f)
	if err := SaveTo(ctx, a, bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	committed = true
	return nil
}

// SaveTo streams the graph to w. Records are encoded one at a time.
func SaveTo(ctx context.Context, a *model.Arena, w io.Writer) error {
	p := newPlan(a)
	trace.Point(ctx, trace.ScopeObject, "save.plan", strconv.Itoa(len(p.order))+" objects")

	nstr, err := safecast.Conv[uint32](p.strs.Len() - 1)
	if err != nil {
		return fmt.Errorf("%w: string table: %w", model.ErrFormat, err)
	}
	nobj, err := safecast.Conv[uint32](len(p.order))
	if err != nil {
		return fmt.Errorf("%w: object count: %w", model.ErrFormat, err)
	}
	ncoll, err := safecast.Conv[uint32](len(p.colls))
	if err != nil {
		return fmt.Errorf("%w: collection count: %w", model.ErrFormat, err)
	}

	enc := msgpack.NewEncoder(w)
	wrap := func(err error) error {
		return fmt.Errorf("%w: %w", model.ErrIO, err)
	}

	if err := enc.Encode(&header{
		Magic:   magic,
		Format:  FormatVersion,
		Schema:  schema.Version,
		Origin:  a.Origin().String(),
		Strings: nstr,
		Objects: nobj,
		Colls:   ncoll,
	}); err != nil {
		return wrap(err)
	}

	for _, s := range p.strs.Snapshot()[1:] {
		if err := enc.EncodeString(s); err != nil {
			return wrap(err)
		}
	}

	var rec objRecord
	for i, id := range p.order {
		if i%1024 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		o := a.Get(id)
		rec.Kind = uint8(o.Kind)
		rec.Name = uint32(p.strMap[o.Name])
		rec.Loc = [5]uint32{uint32(p.strMap[o.Loc.File]), o.Loc.Line, o.Loc.Col, o.Loc.EndLine, o.Loc.EndCol}
		rec.Parent = 0
		if p.owned[id] {
			rec.Parent = p.obj(o.Parent)
		}
		rec.Text = uint32(p.strMap[o.Text])
		rec.Slots = rec.Slots[:0]
		for si, f := range schema.DefOf(o.Kind).Fields {
			v := o.Slots[si]
			switch f.Def().Type {
			case schema.FieldString:
				v = int64(p.strMap[source.StringID(v)]) //nolint:gosec // interned id
			case schema.FieldRef:
				v = int64(p.obj(model.ObjID(v))) //nolint:gosec // slot holds an ObjID
			case schema.FieldColl:
				v = int64(p.colMap[model.CollID(v)]) //nolint:gosec // slot holds a CollID
			}
			rec.Slots = append(rec.Slots, v)
		}
		if err := enc.Encode(&rec); err != nil {
			return wrap(err)
		}
	}

	var crec collRecord
	for _, c := range p.colls {
		col := a.Collection(c)
		crec.Group = uint8(col.Group)
		crec.Items = crec.Items[:0]
		for _, item := range col.Items {
			// erased elements are dropped; order of the rest is kept
			if n := p.obj(item); n != 0 {
				crec.Items = append(crec.Items, n)
			}
		}
		if err := enc.Encode(&crec); err != nil {
			return wrap(err)
		}
	}

	tr := trailer{End: endMagic}
	for _, r := range a.Roots() {
		if n := p.obj(r); n != 0 {
			tr.Roots = append(tr.Roots, n)
		}
	}
	if err := enc.Encode(&tr); err != nil {
		return wrap(err)
	}
	return nil
}
