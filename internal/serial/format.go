package serial

const (
	magic    = "HDLG"
	endMagic = "GLDH"

	// FormatVersion is bumped on any change to the record layout.
	FormatVersion uint32 = 1

	// hintCap bounds preallocation driven by header counts, which restore
	// has not validated yet.
	hintCap = 1 << 16
)

type header struct {
	_msgpack struct{} `msgpack:",as_array"` //nolint:unused
	Magic    string
	Format   uint32
	Schema   uint32
	Origin   string
	Strings  uint32
	Objects  uint32
	Colls    uint32
}

type objRecord struct {
	_msgpack struct{} `msgpack:",as_array"` //nolint:unused
	Kind     uint8
	Name     uint32
	Loc      [5]uint32
	Parent   uint32
	Text     uint32
	Slots    []int64
}

type collRecord struct {
	_msgpack struct{} `msgpack:",as_array"` //nolint:unused
	Group    uint8
	Items    []uint32
}

type trailer struct {
	_msgpack struct{} `msgpack:",as_array"` //nolint:unused
	Roots    []uint32
	End      string
}
