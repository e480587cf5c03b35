// Package tlv encodes and decodes the type-length-value records carried
// inside protocol data messages.
//
// Wire format, repeated with no terminator:
//
//	2 bytes: type   (big endian)
//	2 bytes: length (big endian)
//	N bytes: payload
//
// Parse is best-effort: a header or payload cut short by the end of the
// buffer ends decoding and the complete records before it are returned.
package tlv
