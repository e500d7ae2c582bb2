package hpack

const huffmanFlag = 1 << 7

// encodeString emits a length-prefixed octet string (spec.md §4.2),
// choosing Huffman encoding only when it is strictly shorter than the
// literal form; on equal length the literal form is used.
func encodeString(codec HuffmanCodec, s string) []byte {
	raw := []byte(s)
	huffman := codec.Encode(raw)

	if len(huffman) < len(raw) {
		lengthPrefix := encodeInteger(len(huffman), 7)
		lengthPrefix[0] |= huffmanFlag
		return append(lengthPrefix, huffman...)
	}

	lengthPrefix := encodeInteger(len(raw), 7)
	return append(lengthPrefix, raw...)
}

// decodeString reads a length-prefixed octet string from the front of buf.
func decodeString(codec HuffmanCodec, buf []byte, maxValue, maxEncodedLength, maxStringLength int) (rest []byte, s string, err error) {
	rest, leading, length, err := decodeInteger(buf, 7, maxValue, maxEncodedLength)
	if err != nil {
		return buf, "", err
	}
	if length > maxStringLength {
		return buf, "", ErrMalformedString
	}
	if length > len(rest) {
		return buf, "", ErrMalformedString
	}

	raw := rest[:length]
	rest = rest[length:]

	if leading&huffmanFlag == huffmanFlag {
		decoded, err := codec.Decode(raw)
		if err != nil {
			return rest, "", err
		}
		return rest, string(decoded), nil
	}
	return rest, string(raw), nil
}
