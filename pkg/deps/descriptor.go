package deps

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
)

// Dependency is an immutable request for a component kind plus an opaque
// config value. The config parametrizes which variant of the component is
// required (for example which named asset package). Descriptors are cheap to
// create and are never owned by the graph; only their structural hash and
// (kind, config) pair are captured into entries.
type Dependency struct {
	kind   *Kind
	config any
	hash   string
}

// New creates a dependency descriptor. Config must be nil, a bool, a string,
// a signed or unsigned integer, a float, or a flat []any of those; other
// types cannot be hashed structurally and cause Hash to panic.
func New(kind *Kind, config any) *Dependency {
	if kind == nil {
		panic("deps: nil kind in dependency descriptor")
	}
	return &Dependency{kind: kind, config: config}
}

// Kind returns the requested component kind.
func (d *Dependency) Kind() *Kind { return d.kind }

// Config returns the config value attached to the request.
func (d *Dependency) Config() any { return d.config }

// Hash returns the structural hash identifying the (kind, config) pair.
// It is computed once and memoized. Two descriptors carrying an equal kind
// and an equal-by-value config always hash identically, regardless of where
// they were built.
func (d *Dependency) Hash() string {
	if d.hash == "" {
		h := sha256.New()
		h.Write([]byte(d.kind.Name))
		h.Write([]byte{0})
		writeConfigValue(h, d.config)
		d.hash = hex.EncodeToString(h.Sum(nil))
	}
	return d.hash
}

// String returns a human-readable kind(config) form for logs and errors.
func (d *Dependency) String() string {
	return fmt.Sprintf("%s(%v)", d.kind.Name, d.config)
}

// writeConfigValue writes a canonical, type-tagged encoding of a config value
// so that values equal by value encode identically. Integer widths are
// normalized before encoding.
func writeConfigValue(w io.Writer, v any) {
	switch c := v.(type) {
	case nil:
		w.Write([]byte{'n'})
	case bool:
		if c {
			w.Write([]byte{'b', 1})
		} else {
			w.Write([]byte{'b', 0})
		}
	case string:
		w.Write([]byte{'s'})
		binary.Write(w, binary.BigEndian, uint32(len(c)))
		io.WriteString(w, c)
	case int:
		writeConfigInt(w, int64(c))
	case int8:
		writeConfigInt(w, int64(c))
	case int16:
		writeConfigInt(w, int64(c))
	case int32:
		writeConfigInt(w, int64(c))
	case int64:
		writeConfigInt(w, c)
	case uint:
		writeConfigUint(w, uint64(c))
	case uint8:
		writeConfigUint(w, uint64(c))
	case uint16:
		writeConfigUint(w, uint64(c))
	case uint32:
		writeConfigUint(w, uint64(c))
	case uint64:
		writeConfigUint(w, c)
	case float32:
		writeConfigFloat(w, float64(c))
	case float64:
		writeConfigFloat(w, c)
	case []any:
		w.Write([]byte{'l'})
		binary.Write(w, binary.BigEndian, uint32(len(c)))
		for _, item := range c {
			writeConfigValue(w, item)
		}
	default:
		panic(fmt.Sprintf("deps: unsupported config type %T", v))
	}
}

func writeConfigInt(w io.Writer, v int64) {
	w.Write([]byte{'i'})
	binary.Write(w, binary.BigEndian, v)
}

func writeConfigUint(w io.Writer, v uint64) {
	w.Write([]byte{'u'})
	binary.Write(w, binary.BigEndian, v)
}

func writeConfigFloat(w io.Writer, v float64) {
	w.Write([]byte{'f'})
	binary.Write(w, binary.BigEndian, v)
}
