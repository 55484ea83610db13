package capacity

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/host"
	"github.com/threefoldtech/dmi/pkg/capacity/dmi"
	"github.com/threefoldtech/dmi/pkg/smbios"
)

const (
	snapshotKey = "snapshot"

	// DefaultSnapshotTTL is how long a decoded table is served before it is
	// read again from the source
	DefaultSnapshotTTL = 10 * time.Minute
)

// Source loads the entry point and the raw structure table
type Source func() (smbios.EntryPoint, []byte, error)

// SysfsSource reads the tables exposed by the kernel under root
func SysfsSource(root string) Source {
	return func() (smbios.EntryPoint, []byte, error) {
		return smbios.ReadSysfs(root)
	}
}

// DumpSource reads a `dmidecode --dump-bin` file
func DumpSource(path string) Source {
	return func() (smbios.EntryPoint, []byte, error) {
		return smbios.ReadDump(path)
	}
}

// SourceFor returns a DumpSource if dump is set, a SysfsSource otherwise
func SourceFor(root, dump string) Source {
	if dump != "" {
		return DumpSource(dump)
	}

	return SysfsSource(root)
}

// Snapshot is a decoded structure table
type Snapshot struct {
	EntryPoint smbios.EntryPoint
	Tables     []smbios.Table
	Time       time.Time
}

// Capacity hold the amount of resource unit of a node
type Capacity struct {
	CRU uint64 `json:"cru"`
	MRU uint64 `json:"mru"`
}

// ResourceOracle is the structure responsible for capacity tracking
type ResourceOracle struct {
	source Source
	cache  *cache.Cache
}

// NewResourceOracle creates a new ResourceOracle. Decoded tables are kept for
// ttl before the source is read again.
func NewResourceOracle(source Source, ttl time.Duration) *ResourceOracle {
	return &ResourceOracle{
		source: source,
		cache:  cache.New(ttl, ttl),
	}
}

// Snapshot returns the decoded tables, reading the source if the cached
// snapshot expired
func (r *ResourceOracle) Snapshot() (*Snapshot, error) {
	if s, ok := r.cache.Get(snapshotKey); ok {
		return s.(*Snapshot), nil
	}

	return r.Refresh()
}

// Refresh reads the source again and replaces the cached snapshot
func (r *ResourceOracle) Refresh() (*Snapshot, error) {
	ep, raw, err := r.source()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load smbios tables")
	}

	s := &Snapshot{
		EntryPoint: ep,
		Tables:     smbios.Decode(raw),
		Time:       time.Now(),
	}

	log.Debug().Int("tables", len(s.Tables)).Int("bytes", len(raw)).Msg("smbios tables decoded")
	r.cache.Set(snapshotKey, s, cache.DefaultExpiration)

	return s, nil
}

// Total returns the total amount of resource units of the node
func (r *ResourceOracle) Total() (c Capacity, err error) {
	c.CRU, err = r.cru()
	if err != nil {
		return c, err
	}
	c.MRU, err = r.mru()
	if err != nil {
		return c, err
	}

	return c, nil
}

// DMI renders the decoded tables
func (r *ResourceOracle) DMI() (*dmi.DMI, error) {
	s, err := r.Snapshot()
	if err != nil {
		return nil, err
	}

	return dmi.FromTables(s.EntryPoint, s.Tables), nil
}

// Inventory summarizes the decoded tables
func (r *ResourceOracle) Inventory() (Inventory, error) {
	s, err := r.Snapshot()
	if err != nil {
		return Inventory{}, err
	}

	inv := NewInventory(s.EntryPoint, s.Tables)
	if mru, err := r.mru(); err == nil && mru > inv.InstalledMemory && inv.InstalledMemory != 0 {
		log.Warn().
			Uint64("installed", inv.InstalledMemory).
			Uint64("visible", mru).
			Msg("visible memory is larger than installed memory modules")
	}

	return inv, nil
}

// Uptime returns the uptime of the node
func (r *ResourceOracle) Uptime() (uint64, error) {
	info, err := host.Info()
	if err != nil {
		return 0, err
	}
	return info.Uptime, nil
}
