package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/klauspost/compress/zlib"
)

// FBX 7.4 binary framing.
const (
	fbxVersion = 7400

	// fbxNullRecord is the size of the record ending a node list.
	fbxNullRecord = 13

	// fbxCompressMin is the smallest array payload worth deflating.
	fbxCompressMin = 128
)

var (
	fbxMagic    = []byte("Kaydara FBX Binary  \x00\x1a\x00")
	fbxFooterID = []byte{0xfa, 0xbc, 0xab, 0x09, 0xd0, 0xc8, 0xd4, 0x66, 0xb1, 0x76, 0xfb, 0x83, 0x1c, 0xf7, 0x26, 0x7e}
	fbxFooter   = []byte{0xf8, 0x5a, 0x8c, 0x6a, 0xde, 0xf5, 0xd9, 0x7e, 0xec, 0xe9, 0x0c, 0xe3, 0x75, 0x8f, 0x29, 0x0b}
)

// fbxNode is an FBX record: a name, typed properties and child records.
type fbxNode struct {
	name     string
	props    []any
	children []*fbxNode
}

func newFBXNode(name string, props ...any) *fbxNode {
	return &fbxNode{name: name, props: props}
}

// add appends children and returns n.
func (n *fbxNode) add(children ...*fbxNode) *fbxNode {
	n.children = append(n.children, children...)
	return n
}

// fbxWriter encodes records. Node end offsets are absolute, so records
// are written to one buffer and patched after their children.
type fbxWriter struct {
	buf bytes.Buffer
	err error
}

func encodeFBXBinary(roots []*fbxNode) ([]byte, error) {
	w := &fbxWriter{}
	w.buf.Write(fbxMagic)
	w.u32(fbxVersion)
	for _, n := range roots {
		w.node(n)
	}
	w.buf.Write(make([]byte, fbxNullRecord))
	w.footer()
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}

func (w *fbxWriter) u8(v uint8)   { w.buf.WriteByte(v) }
func (w *fbxWriter) u32(v uint32) { _ = binary.Write(&w.buf, binary.LittleEndian, v) }

func (w *fbxWriter) node(n *fbxNode) {
	if len(n.name) > math.MaxUint8 {
		w.fail(fmt.Errorf("fbx: node name %q too long", n.name))
		return
	}
	start := w.buf.Len()
	// End offset, property count and property list length are patched.
	w.buf.Write(make([]byte, 12))
	w.u8(uint8(len(n.name)))
	w.buf.WriteString(n.name)

	propStart := w.buf.Len()
	for _, p := range n.props {
		w.prop(p)
	}
	propLen := w.buf.Len() - propStart

	for _, c := range n.children {
		w.node(c)
	}
	if len(n.children) > 0 || len(n.props) == 0 {
		w.buf.Write(make([]byte, fbxNullRecord))
	}

	b := w.buf.Bytes()
	binary.LittleEndian.PutUint32(b[start:], uint32(w.buf.Len()))
	binary.LittleEndian.PutUint32(b[start+4:], uint32(len(n.props)))
	binary.LittleEndian.PutUint32(b[start+8:], uint32(propLen))
}

func (w *fbxWriter) prop(p any) {
	le := binary.LittleEndian
	switch v := p.(type) {
	case bool:
		w.u8('C')
		if v {
			w.u8(1)
		} else {
			w.u8(0)
		}
	case int16:
		w.u8('Y')
		_ = binary.Write(&w.buf, le, v)
	case int32:
		w.u8('I')
		_ = binary.Write(&w.buf, le, v)
	case int64:
		w.u8('L')
		_ = binary.Write(&w.buf, le, v)
	case float32:
		w.u8('F')
		_ = binary.Write(&w.buf, le, v)
	case float64:
		w.u8('D')
		_ = binary.Write(&w.buf, le, v)
	case string:
		w.u8('S')
		w.u32(uint32(len(v)))
		w.buf.WriteString(v)
	case []byte:
		w.u8('R')
		w.u32(uint32(len(v)))
		w.buf.Write(v)
	case []int32:
		w.array('i', len(v), v)
	case []int64:
		w.array('l', len(v), v)
	case []float32:
		w.array('f', len(v), v)
	case []float64:
		w.array('d', len(v), v)
	default:
		w.fail(fmt.Errorf("fbx: unsupported property type %T", p))
	}
}

// array writes a typed array, deflating payloads of fbxCompressMin bytes
// or more.
func (w *fbxWriter) array(code byte, n int, data any) {
	var raw bytes.Buffer
	_ = binary.Write(&raw, binary.LittleEndian, data)

	payload, encoding := raw.Bytes(), uint32(0)
	if raw.Len() >= fbxCompressMin {
		packed, err := deflate(raw.Bytes())
		if err != nil {
			w.fail(err)
			return
		}
		payload, encoding = packed, 1
	}

	w.u8(code)
	w.u32(uint32(n))
	w.u32(encoding)
	w.u32(uint32(len(payload)))
	w.buf.Write(payload)
}

func deflate(data []byte) ([]byte, error) {
	var out bytes.Buffer
	zw, err := zlib.NewWriterLevel(&out, zlib.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (w *fbxWriter) footer() {
	w.buf.Write(fbxFooterID)
	w.buf.Write(make([]byte, 4))
	pad := 16 - w.buf.Len()%16
	w.buf.Write(make([]byte, pad))
	w.u32(fbxVersion)
	w.buf.Write(make([]byte, 120))
	w.buf.Write(fbxFooter)
}

func (w *fbxWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}
