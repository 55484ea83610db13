package smbios

// Info is a typed, read-only view over the formatted area of a structure.
// The set of implementations is closed: BIOSInfo, SystemInfo, BaseBoardInfo,
// ChassisInfo, ProcessorInfo, MemoryDevice and Unknown.
//
// Views borrow the Data slice of the table they were created from, they are
// only valid as long as the table is.
type Info interface {
	// Type the view was projected from
	Type() Type

	info()
}

// Unknown is the projection of any structure that has no known layout, or
// whose formatted area is too short for its layout.
type Unknown struct {
	Table *Table
}

// Type implements Info
func (u Unknown) Type() Type {
	return u.Table.Header.Type
}

func (Unknown) info() {}

// Project decodes the header type first and builds the matching view. The
// view is only built when the formatted area is at least as long as the
// fixed layout of the view, otherwise Unknown is returned.
func Project(t *Table) Info {
	f := fields(t.Data)
	switch t.Header.Type {
	case TypeBIOS:
		if len(f) >= BIOSInfoSize {
			return BIOSInfo{f}
		}
	case TypeSystem:
		if len(f) >= SystemInfoSize {
			return SystemInfo{f}
		}
	case TypeBaseboard:
		if len(f) >= BaseBoardInfoSize {
			return BaseBoardInfo{f}
		}
	case TypeChassis:
		if len(f) >= ChassisInfoSize {
			return ChassisInfo{f}
		}
	case TypeProcessor:
		if len(f) >= ProcessorInfoSize {
			return ProcessorInfo{f}
		}
	case TypeMemoryDevice:
		if len(f) >= MemoryDeviceSize {
			return MemoryDevice{f}
		}
	}

	return Unknown{Table: t}
}

// Get projects t as T. It returns false if the table type does not match T
// or if the formatted area is too short for T.
//
//	if bios, ok := smbios.Get[smbios.BIOSInfo](&table); ok {
//		vendor, _ := table.String(bios.Vendor())
//	}
func Get[T Info](t *Table) (T, bool) {
	v, ok := Project(t).(T)
	return v, ok
}
