package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// readFBX decodes an FBX 7.4 binary file into records. Property values
// come back with the Go types the writer accepts.
func readFBX(data []byte) ([]*fbxNode, error) {
	if !bytes.HasPrefix(data, fbxMagic) {
		return nil, fmt.Errorf("bad magic")
	}
	r := &fbxReader{data: data, pos: len(fbxMagic)}
	if v := r.u32(); v != fbxVersion {
		return nil, fmt.Errorf("version %d", v)
	}
	var roots []*fbxNode
	for {
		n, end, err := r.node()
		if err != nil {
			return nil, err
		}
		if end {
			break
		}
		roots = append(roots, n)
	}
	if !bytes.HasSuffix(data, fbxFooter) {
		return nil, fmt.Errorf("missing footer")
	}
	return roots, nil
}

type fbxReader struct {
	data []byte
	pos  int
}

func (r *fbxReader) take(n int) []byte {
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *fbxReader) u32() uint32 { return binary.LittleEndian.Uint32(r.take(4)) }

// node reads one record; end reports a null record.
func (r *fbxReader) node() (n *fbxNode, end bool, err error) {
	endOffset := int(r.u32())
	numProps := int(r.u32())
	r.u32() // property list length
	nameLen := int(r.take(1)[0])
	if endOffset == 0 {
		return nil, true, nil
	}
	n = &fbxNode{name: string(r.take(nameLen))}
	for i := 0; i < numProps; i++ {
		p, err := r.prop()
		if err != nil {
			return nil, false, err
		}
		n.props = append(n.props, p)
	}
	for r.pos < endOffset {
		c, end, err := r.node()
		if err != nil {
			return nil, false, err
		}
		if end {
			break
		}
		n.children = append(n.children, c)
	}
	if r.pos != endOffset {
		return nil, false, fmt.Errorf("node %s ends at %d, want %d", n.name, r.pos, endOffset)
	}
	return n, false, nil
}

func (r *fbxReader) prop() (any, error) {
	le := binary.LittleEndian
	code := r.take(1)[0]
	switch code {
	case 'C':
		return r.take(1)[0] != 0, nil
	case 'Y':
		return int16(le.Uint16(r.take(2))), nil
	case 'I':
		return int32(le.Uint32(r.take(4))), nil
	case 'L':
		return int64(le.Uint64(r.take(8))), nil
	case 'F':
		var v float32
		err := binary.Read(bytes.NewReader(r.take(4)), le, &v)
		return v, err
	case 'D':
		var v float64
		err := binary.Read(bytes.NewReader(r.take(8)), le, &v)
		return v, err
	case 'S':
		return string(r.take(int(r.u32()))), nil
	case 'R':
		return append([]byte(nil), r.take(int(r.u32()))...), nil
	case 'i', 'l', 'f', 'd':
		return r.array(code)
	}
	return nil, fmt.Errorf("unknown property type %q", code)
}

func (r *fbxReader) array(code byte) (any, error) {
	n := int(r.u32())
	encoding := r.u32()
	payload := r.take(int(r.u32()))
	if encoding == 1 {
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		if payload, err = io.ReadAll(zr); err != nil {
			return nil, err
		}
	}
	var out any
	switch code {
	case 'i':
		out = make([]int32, n)
	case 'l':
		out = make([]int64, n)
	case 'f':
		out = make([]float32, n)
	case 'd':
		out = make([]float64, n)
	}
	err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, out)
	return out, err
}

// child returns the first child called name.
func (n *fbxNode) child(name string) *fbxNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// childrenNamed returns every child called name.
func (n *fbxNode) childrenNamed(name string) []*fbxNode {
	var out []*fbxNode
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}
