package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/threefoldtech/dmi/pkg/capacity"
	"github.com/threefoldtech/dmi/pkg/capacity/dmi"
	"github.com/threefoldtech/dmi/pkg/environment"
	"github.com/threefoldtech/dmi/pkg/smbios"
	"github.com/urfave/cli/v2"
)

var dumpFlag = &cli.StringFlag{
	Name:  "dump",
	Usage: "read a dmidecode --dump-bin `FILE` (optionally .xz) instead of sysfs",
}

var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "print json instead of text",
}

var tablesCmd = cli.Command{
	Name:  "tables",
	Usage: "print the decoded structures",
	Flags: []cli.Flag{
		dumpFlag,
		jsonFlag,
		&cli.StringFlag{
			Name:  "type",
			Usage: "only print structures of `TYPE` (name or number)",
		},
	},
	Action: func(c *cli.Context) error {
		snapshot, err := load(c)
		if err != nil {
			return err
		}

		tables := snapshot.Tables
		if name := c.String("type"); name != "" {
			typ, err := smbios.ParseType(name)
			if err != nil {
				return err
			}
			tables = filter(tables, typ)
		}

		if c.Bool("json") {
			return printJSON(os.Stdout, tables)
		}

		return printTables(os.Stdout, tables)
	},
}

var entryPointCmd = cli.Command{
	Name:  "entrypoint",
	Usage: "print the smbios entry point",
	Flags: []cli.Flag{dumpFlag},
	Action: func(c *cli.Context) error {
		snapshot, err := load(c)
		if err != nil {
			return err
		}

		ep := snapshot.EntryPoint
		if ep == nil {
			return errors.New("entry point is not known")
		}

		addr, size := ep.Table()
		fmt.Printf("SMBIOS %s present.\n", ep.Version())
		fmt.Printf("Valid: %t\n", ep.IsValid())
		fmt.Printf("Table at 0x%08X, %d bytes.\n", addr, size)
		if ep32, ok := ep.(*smbios.EntryPoint32); ok {
			fmt.Printf("%d structures occupying %d bytes.\n", ep32.StructureCount, ep32.TableLength)
		}
		fmt.Printf("%d structures decoded.\n", len(snapshot.Tables))

		return nil
	},
}

var inventoryCmd = cli.Command{
	Name:  "inventory",
	Usage: "print a summary of the hardware",
	Flags: []cli.Flag{dumpFlag, jsonFlag},
	Action: func(c *cli.Context) error {
		snapshot, err := load(c)
		if err != nil {
			return err
		}

		inv := capacity.NewInventory(snapshot.EntryPoint, snapshot.Tables)
		if c.Bool("json") {
			return printJSON(os.Stdout, inv)
		}

		return inv.Print(os.Stdout)
	},
}

func load(c *cli.Context) (*capacity.Snapshot, error) {
	cfg, err := environment.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	dump := cfg.Source.Dump
	if c.IsSet("dump") {
		dump = c.String("dump")
	}

	oracle := capacity.NewResourceOracle(capacity.SourceFor(cfg.Source.Root, dump), cfg.Source.TTL)
	return oracle.Snapshot()
}

func filter(tables []smbios.Table, typ smbios.Type) []smbios.Table {
	var out []smbios.Table
	for _, t := range tables {
		if t.Header.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "failed to encode output")
}

// printTables prints the known structures with their properties, unknown
// ones only with their type
func printTables(w io.Writer, tables []smbios.Table) error {
	d := dmi.FromTables(nil, tables)
	for i, sec := range d.Sections {
		t := &tables[i]
		if _, ok := smbios.Project(t).(smbios.Unknown); ok {
			fmt.Fprintf(w, "Unknown table: %d\n", uint8(t.Header.Type))
			continue
		}

		fmt.Fprintln(w, sec.HandleLine)
		for _, sub := range sec.SubSections {
			fmt.Fprintln(w, sub.Title)
			keys := make([]string, 0, len(sub.Properties))
			for k := range sub.Properties {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				prop := sub.Properties[k]
				fmt.Fprintf(w, "\t%s: %s\n", k, prop.Val)
				for _, item := range prop.Items {
					fmt.Fprintf(w, "\t\t%s\n", item)
				}
			}
		}

		quoted := make([]string, len(t.Strings))
		for i, s := range t.Strings {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		if _, err := fmt.Fprintf(w, "    strings: [%s]\n\n", strings.Join(quoted, ", ")); err != nil {
			return err
		}
	}

	return nil
}
