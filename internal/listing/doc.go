// Package listing decodes the binary shop listing format served by the
// per-world shopping endpoints.
//
// Each record is little-endian with no padding:
//
//	shopNameLen  uint8
//	guildTagLen  uint8
//	shopName     [shopNameLen]byte (Latin-1)
//	guildTag     [guildTagLen]byte (Latin-1)
//	quantity     uint32
//	activity     uint32 (not surfaced)
//	price        int64  (two implied decimals)
//	x            int16
//	z            int16
//	y            uint8
//
// Records are concatenated until the buffer ends. A buffer that ends inside a
// record is rejected.
package listing
