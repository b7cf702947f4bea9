package listing

import (
	"encoding/binary"

	"github.com/rickgao/boundless-data/internal/model"
)

// fixedTail is the size of the fixed fields following the two strings.
const fixedTail = 4 + 4 + 8 + 2 + 2 + 1

// Decoder walks a buffer one record at a time. It is single pass.
//
//	d := listing.NewDecoder(buf, itemID, worldID)
//	for d.Next() {
//		use(d.Listing())
//	}
//	if err := d.Err(); err != nil { ... }
type Decoder struct {
	buf     []byte
	off     int
	itemID  model.ItemID
	worldID int

	cur model.ShopListing
	err error
}

// NewDecoder returns a decoder stamping itemID and worldID onto every record.
func NewDecoder(buf []byte, itemID model.ItemID, worldID int) *Decoder {
	return &Decoder{
		buf:     buf,
		itemID:  itemID,
		worldID: worldID,
	}
}

// Next decodes the next record. It returns false at the end of the buffer or
// on the first error.
func (d *Decoder) Next() bool {
	if d.err != nil || d.off >= len(d.buf) {
		return false
	}

	rec, n, err := d.decodeRecord(d.buf[d.off:])
	if err != nil {
		if te, ok := err.(*TruncatedRecordError); ok {
			te.Offset = d.off
		}
		d.err = err
		return false
	}

	d.cur = rec
	d.off += n
	return true
}

// Listing returns the record decoded by the last successful Next.
func (d *Decoder) Listing() model.ShopListing {
	return d.cur
}

// Err returns the first decode error, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.off
}

// decodeRecord decodes one record from the front of b and returns the number
// of bytes it occupied.
func (d *Decoder) decodeRecord(b []byte) (model.ShopListing, int, error) {
	if len(b) < 2 {
		return model.ShopListing{}, 0, &TruncatedRecordError{Field: "header", Need: 2, Have: len(b)}
	}
	nameLen := int(b[0])
	tagLen := int(b[1])
	pos := 2

	if len(b)-pos < nameLen {
		return model.ShopListing{}, 0, &TruncatedRecordError{Field: "shop name", Need: nameLen, Have: len(b) - pos}
	}
	name := latin1(b[pos : pos+nameLen])
	pos += nameLen

	if len(b)-pos < tagLen {
		return model.ShopListing{}, 0, &TruncatedRecordError{Field: "guild tag", Need: tagLen, Have: len(b) - pos}
	}
	tag := latin1(b[pos : pos+tagLen])
	pos += tagLen

	if len(b)-pos < fixedTail {
		return model.ShopListing{}, 0, &TruncatedRecordError{Field: "fixed fields", Need: fixedTail, Have: len(b) - pos}
	}
	le := binary.LittleEndian
	quantity := le.Uint32(b[pos:])
	// activity at b[pos+4:] is not surfaced
	price := int64(le.Uint64(b[pos+8:]))
	x := int16(le.Uint16(b[pos+16:]))
	z := int16(le.Uint16(b[pos+18:]))
	y := b[pos+20]
	pos += fixedTail

	return model.ShopListing{
		GuildTag:   tag,
		ShopName:   name,
		ItemID:     d.itemID,
		Quantity:   quantity,
		PriceUnits: price,
		Price:      model.PriceFromUnits(price),
		Position:   model.Position{X: x, Y: y, Z: z},
		WorldID:    d.worldID,
	}, pos, nil
}

// Decode decodes every record in buf. On error no listings are returned.
func Decode(buf []byte, itemID model.ItemID, worldID int) ([]model.ShopListing, error) {
	d := NewDecoder(buf, itemID, worldID)
	listings := make([]model.ShopListing, 0)
	for d.Next() {
		listings = append(listings, d.Listing())
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

// latin1 maps each byte to the rune of the same value.
func latin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
