package listing

import (
	"encoding/binary"
	"fmt"

	"github.com/rickgao/boundless-data/internal/model"
)

// Record is the wire form of a listing, including the activity field that
// decoding drops.
type Record struct {
	ShopName   string
	GuildTag   string
	Quantity   uint32
	Activity   uint32
	PriceUnits int64
	X          int16
	Z          int16
	Y          uint8
}

// RecordFromListing builds a wire record from a decoded listing.
func RecordFromListing(l model.ShopListing, activity uint32) Record {
	return Record{
		ShopName:   l.ShopName,
		GuildTag:   l.GuildTag,
		Quantity:   l.Quantity,
		Activity:   activity,
		PriceUnits: l.PriceUnits,
		X:          l.Position.X,
		Z:          l.Position.Z,
		Y:          l.Position.Y,
	}
}

// AppendRecord appends the encoding of r to dst.
func AppendRecord(dst []byte, r Record) ([]byte, error) {
	name, err := toLatin1(r.ShopName)
	if err != nil {
		return dst, fmt.Errorf("shop name: %w", err)
	}
	tag, err := toLatin1(r.GuildTag)
	if err != nil {
		return dst, fmt.Errorf("guild tag: %w", err)
	}
	if len(name) > 255 {
		return dst, fmt.Errorf("shop name too long: %d bytes", len(name))
	}
	if len(tag) > 255 {
		return dst, fmt.Errorf("guild tag too long: %d bytes", len(tag))
	}

	le := binary.LittleEndian
	dst = append(dst, byte(len(name)), byte(len(tag)))
	dst = append(dst, name...)
	dst = append(dst, tag...)
	dst = le.AppendUint32(dst, r.Quantity)
	dst = le.AppendUint32(dst, r.Activity)
	dst = le.AppendUint64(dst, uint64(r.PriceUnits))
	dst = le.AppendUint16(dst, uint16(r.X))
	dst = le.AppendUint16(dst, uint16(r.Z))
	dst = append(dst, r.Y)
	return dst, nil
}

// Encode concatenates the encodings of records.
func Encode(records ...Record) ([]byte, error) {
	var buf []byte
	for i, r := range records {
		var err error
		buf, err = AppendRecord(buf, r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return buf, nil
}

func toLatin1(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, fmt.Errorf("rune %q outside latin-1", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}
