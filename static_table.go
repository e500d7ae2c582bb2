package hpack

// staticTable is the 61-entry static table defined by RFC 7541 Appendix A,
// indexed 1..len(staticTable). Contents grounded on
// other_examples/be573819_perbu-GTest2__pkg-hpack-table.go.go.
var staticTable = [...][2]string{
	{":authority", ""},
	{":method", "GET"},
	{":method", "POST"},
	{":path", "/"},
	{":path", "/index.html"},
	{":scheme", "http"},
	{":scheme", "https"},
	{":status", "200"},
	{":status", "204"},
	{":status", "206"},
	{":status", "304"},
	{":status", "400"},
	{":status", "404"},
	{":status", "500"},
	{"accept-charset", ""},
	{"accept-encoding", "gzip, deflate"},
	{"accept-language", ""},
	{"accept-ranges", ""},
	{"accept", ""},
	{"access-control-allow-origin", ""},
	{"age", ""},
	{"allow", ""},
	{"authorization", ""},
	{"cache-control", ""},
	{"content-disposition", ""},
	{"content-encoding", ""},
	{"content-language", ""},
	{"content-length", ""},
	{"content-location", ""},
	{"content-range", ""},
	{"content-type", ""},
	{"cookie", ""},
	{"date", ""},
	{"etag", ""},
	{"expect", ""},
	{"expires", ""},
	{"from", ""},
	{"host", ""},
	{"if-match", ""},
	{"if-modified-since", ""},
	{"if-none-match", ""},
	{"if-range", ""},
	{"if-unmodified-since", ""},
	{"last-modified", ""},
	{"link", ""},
	{"location", ""},
	{"max-forwards", ""},
	{"proxy-authenticate", ""},
	{"proxy-authorization", ""},
	{"range", ""},
	{"referer", ""},
	{"refresh", ""},
	{"retry-after", ""},
	{"server", ""},
	{"set-cookie", ""},
	{"strict-transport-security", ""},
	{"transfer-encoding", ""},
	{"user-agent", ""},
	{"vary", ""},
	{"via", ""},
	{"www-authenticate", ""},
}

// staticTableByNameValue maps "name\x00value" to its 1-based static index,
// for exact-match lookup during encoding.
var staticTableByNameValue = func() map[string]int {
	m := make(map[string]int, len(staticTable))
	for i, e := range staticTable {
		key := e[0] + "\x00" + e[1]
		if _, exists := m[key]; !exists {
			m[key] = i + 1
		}
	}
	return m
}()

// staticTableByName maps a header name to the first static index carrying
// that name, for name-only matches during encoding.
var staticTableByName = func() map[string]int {
	m := make(map[string]int, len(staticTable))
	for i, e := range staticTable {
		if _, exists := m[e[0]]; !exists {
			m[e[0]] = i + 1
		}
	}
	return m
}()

func staticLookup(index int) (name, value string, ok bool) {
	if index < 1 || index > len(staticTable) {
		return "", "", false
	}
	e := staticTable[index-1]
	return e[0], e[1], true
}
