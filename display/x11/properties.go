package x11

import (
	"encoding/binary"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/window"
)

// SetProperty writes prop to id under atom, picking the X property type
// and format from prop.Kind.
func (c *Conn) SetProperty(id window.ID, atom display.Atom, prop display.Property) error {
	propAtom, err := c.Atom(atom)
	if err != nil {
		return err
	}

	var typeName string
	var format byte
	var data []byte

	switch prop.Kind {
	case display.PropAtom:
		typeName, format = "ATOM", 32
		for _, name := range prop.Atoms {
			a, err := c.Atom(display.Atom(name))
			if err != nil {
				return err
			}
			data = appendU32(data, a)
		}
	case display.PropCardinal:
		typeName, format = "CARDINAL", 32
		data = appendU32(data, prop.Cardinal)
	case display.PropString:
		typeName, format = "STRING", 8
		for i, s := range prop.Strings {
			if i > 0 {
				data = append(data, 0)
			}
			data = append(data, []byte(s)...)
		}
	case display.PropUTF8String:
		typeName, format = "UTF8_STRING", 8
		for i, s := range prop.Strings {
			if i > 0 {
				data = append(data, 0)
			}
			data = append(data, []byte(s)...)
		}
	case display.PropWindow:
		typeName, format = "WINDOW", 32
		for _, w := range prop.Windows {
			data = appendU32(data, uint32(w))
		}
	case display.PropU8List:
		typeName, format = "CARDINAL", 8
		data = prop.U8List
	case display.PropU16List:
		typeName, format = "CARDINAL", 16
		for _, v := range prop.U16List {
			data = binary.LittleEndian.AppendUint16(data, v)
		}
	default: // PropU32List, PropWMHints, PropWMSizeHints
		typeName, format = "CARDINAL", 32
		for _, v := range prop.U32List {
			data = appendU32(data, v)
		}
	}

	typeAtom, err := c.Atom(display.Atom(typeName))
	if err != nil {
		return err
	}

	return xproto.ChangePropertyChecked(
		c.xc, xproto.PropModeReplace, xproto.Window(id),
		xproto.Atom(propAtom), xproto.Atom(typeAtom), format,
		uint32(len(data))/uint32(format/8), data,
	).Check()
}

// GetProperty reads atom off id, classifying the result by its reported X
// type and format since the Connector interface doesn't ask the caller to
// pre-declare a kind.
func (c *Conn) GetProperty(id window.ID, atom display.Atom) (display.Property, bool, error) {
	propAtom, err := c.Atom(atom)
	if err != nil {
		return display.Property{}, false, err
	}

	// A type atom of 0 (AnyPropertyType in the X11 protocol) matches any
	// property type.
	reply, err := xproto.GetProperty(
		c.xc, false, xproto.Window(id), xproto.Atom(propAtom),
		xproto.Atom(0), 0, (1<<32)-1,
	).Reply()
	if err != nil {
		return display.Property{}, false, fmt.Errorf("x11: get property %s: %w", atom, err)
	}
	if reply.Type == 0 || reply.Format == 0 {
		return display.Property{}, false, nil
	}

	typeName, err := c.LookupAtom(uint32(reply.Type))
	if err != nil {
		return display.Property{}, false, err
	}

	switch typeName {
	case "ATOM":
		var names []string
		for _, a := range decodeU32(reply.Value) {
			name, err := c.LookupAtom(a)
			if err != nil {
				return display.Property{}, false, err
			}
			names = append(names, string(name))
		}
		return display.Property{Kind: display.PropAtom, Atoms: names}, true, nil
	case "CARDINAL":
		words := decodeU32(reply.Value)
		if atom == display.AtomWMHints {
			return display.Property{Kind: display.PropWMHints, WMHints: display.WMHints{
				Flags: display.WMHintsFlags(firstOrZero(words)),
			}}, true, nil
		}
		if len(words) <= 1 {
			return display.Property{Kind: display.PropCardinal, Cardinal: firstOrZero(words)}, true, nil
		}
		return display.Property{Kind: display.PropU32List, U32List: words}, true, nil
	case "STRING", "UTF8_STRING":
		kind := display.PropString
		if typeName == "UTF8_STRING" {
			kind = display.PropUTF8String
		}
		return display.Property{Kind: kind, Strings: splitNUL(reply.Value)}, true, nil
	case "WINDOW":
		words := decodeU32(reply.Value)
		ids := make([]window.ID, len(words))
		for i, w := range words {
			ids[i] = window.ID(w)
		}
		return display.Property{Kind: display.PropWindow, Windows: ids}, true, nil
	default:
		switch reply.Format {
		case 8:
			return display.Property{Kind: display.PropU8List, U8List: reply.Value}, true, nil
		case 16:
			return display.Property{Kind: display.PropU16List, U16List: decodeU16(reply.Value)}, true, nil
		default:
			return display.Property{Kind: display.PropU32List, U32List: decodeU32(reply.Value)}, true, nil
		}
	}
}

func appendU32(data []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(data, v)
}

func decodeU32(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out
}

func decodeU16(b []byte) []uint16 {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return out
}

func firstOrZero(words []uint32) uint32 {
	if len(words) == 0 {
		return 0
	}
	return words[0]
}

func splitNUL(b []byte) []string {
	var out []string
	start := 0
	for i, c := range b {
		if c == 0 {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	if start < len(b) {
		out = append(out, string(b[start:]))
	}
	return out
}
