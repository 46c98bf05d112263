package serial

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"hdlgraph/internal/model"
	"hdlgraph/internal/schema"
	"hdlgraph/internal/source"
	"hdlgraph/internal/trace"
)

// errReader remembers the first read failure so decode errors caused by the
// medium are reported as I/O errors rather than as corrupt data.
type errReader struct {
	r   io.Reader
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && e.err == nil {
		e.err = err
	}
	return n, err
}

// Restore replaces the content of a with the graph stored at path and
// returns the roots in their saved order. On error a is unchanged.
func Restore(ctx context.Context, a *model.Arena, path string) (roots []model.ObjID, err error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "restore")
	defer func() { span.EndErr(err) }()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrIO, err)
	}
	defer f.Close() //nolint:errcheck // read only
	return RestoreFrom(ctx, a, f)
}

// RestoreFrom is Restore over a stream.
func RestoreFrom(ctx context.Context, a *model.Arena, r io.Reader) ([]model.ObjID, error) {
	er := &errReader{r: r}
	br := bufio.NewReader(er)
	dec := msgpack.NewDecoder(br)

	fail := func(what string, err error) error {
		if er.err != nil {
			return fmt.Errorf("%w: %s: %w", model.ErrIO, what, er.err)
		}
		return fmt.Errorf("%w: %s: %w", model.ErrFormat, what, err)
	}

	var hdr header
	if err := dec.Decode(&hdr); err != nil {
		return nil, fail("header", err)
	}
	if hdr.Magic != magic {
		return nil, fmt.Errorf("%w: not a graph file (magic %q)", model.ErrFormat, hdr.Magic)
	}
	if hdr.Format != FormatVersion {
		return nil, fmt.Errorf("%w: format version %d, want %d", model.ErrFormat, hdr.Format, FormatVersion)
	}
	if hdr.Schema != schema.Version {
		return nil, fmt.Errorf("%w: schema version %d, want %d", model.ErrFormat, hdr.Schema, schema.Version)
	}
	origin, err := uuid.Parse(hdr.Origin)
	if err != nil {
		return nil, fmt.Errorf("%w: origin: %w", model.ErrFormat, err)
	}

	st := model.NewStaging(model.Hints{
		Objects:     uint(min(hdr.Objects, hintCap)),
		Collections: uint(min(hdr.Colls, hintCap)),
	})

	for i := uint32(0); i < hdr.Strings; i++ {
		s, err := dec.DecodeString()
		if err != nil {
			return nil, fail(fmt.Sprintf("string %d", i+1), err)
		}
		if err := st.AddString(s); err != nil {
			return nil, err
		}
	}

	for i := uint32(0); i < hdr.Objects; i++ {
		if i%1024 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var rec objRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fail(fmt.Sprintf("object %d", i+1), err)
		}
		st.AddObject(model.Object{
			Kind: schema.Kind(rec.Kind),
			Name: source.StringID(rec.Name),
			Loc: source.Loc{
				File:    source.StringID(rec.Loc[0]),
				Line:    rec.Loc[1],
				Col:     rec.Loc[2],
				EndLine: rec.Loc[3],
				EndCol:  rec.Loc[4],
			},
			Parent: model.ObjID(rec.Parent),
			Text:   source.StringID(rec.Text),
			Slots:  rec.Slots,
		})
	}

	for i := uint32(0); i < hdr.Colls; i++ {
		var rec collRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fail(fmt.Sprintf("collection %d", i+1), err)
		}
		items := make([]model.ObjID, len(rec.Items))
		for j, it := range rec.Items {
			items[j] = model.ObjID(it)
		}
		st.AddCollection(model.Collection{Group: schema.Group(rec.Group), Items: items})
	}

	var tr trailer
	if err := dec.Decode(&tr); err != nil {
		return nil, fail("trailer", err)
	}
	if tr.End != endMagic {
		return nil, fmt.Errorf("%w: bad end marker %q", model.ErrFormat, tr.End)
	}
	if _, err := br.ReadByte(); err == nil {
		return nil, fmt.Errorf("%w: trailing data after end marker", model.ErrFormat)
	} else if er.err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrIO, er.err)
	}

	roots := make([]model.ObjID, len(tr.Roots))
	for i, r := range tr.Roots {
		roots[i] = model.ObjID(r)
	}
	st.SetRoots(roots)

	if err := a.Install(st, origin); err != nil {
		return nil, err
	}
	trace.Point(ctx, trace.ScopeObject, "restore.install", fmt.Sprintf("%d objects", hdr.Objects))
	return a.Roots(), nil
}
