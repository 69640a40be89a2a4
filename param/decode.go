package param

import (
	"fmt"

	"github.com/Drolfothesgnir/hintstack/wire"
)

// Decode reads one parameter, type byte included.
func Decode(r *wire.Reader) (Parameter, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	switch Type(b) {
	case TypeText:
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return String{Value: s}, nil

	case TypeItem:
		it, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		return Item{ItemType: it}, nil

	case TypeKeybind:
		id, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		format, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return Keybind{ID: id, Format: format}, nil

	case TypeAnimationCurve:
		var p Animated
		if p.Offset, err = r.ReadFloat64(); err != nil {
			return nil, err
		}
		if p.Format, err = r.ReadNullableString(); err != nil {
			return nil, err
		}
		if p.RoundToInt, err = r.ReadBool(); err != nil {
			return nil, err
		}
		if p.Value, err = DecodeAnimatedValue(r); err != nil {
			return nil, err
		}
		return &p, nil
	}

	return nil, fmt.Errorf("unknown parameter type %d at offset %d", b, r.Pos()-1)
}
