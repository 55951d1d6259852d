/*bravais identifies the point-group symmetry of a periodic lattice, builds
the smallest supercell commensurate with a symmetry-closed k-point mesh, and
partitions real space into the weighted cell map used to interpolate between
the unit cell and the supercell.*/
package main

import (
	"fmt"
	"log"

	"github.com/phil-mansfield/bravais/lib"
	"github.com/phil-mansfield/bravais/lib/cellmap"
	g_error "github.com/phil-mansfield/bravais/lib/error"
	"github.com/phil-mansfield/bravais/lib/lattice"
	"github.com/phil-mansfield/bravais/lib/supercell"
)

func main() {
	mode, configFile, overrides := lib.ParseCommandLine()
	if mode == "help" {
		PrintHelp()
		return
	}

	cfg := lib.ParseConfigFile(configFile)
	cfg.Overwrite(overrides)
	args := cfg.Process()
	lib.SetThreads(args.Threads)

	switch mode {
	case "check":
		if lib.Check(args) {
			fmt.Println("No errors detected.")
		}
	case "symmetry":
		Symmetry(args)
	case "supercell":
		Supercell(args)
	case "cellmap":
		CellMap(args)
	default:
		g_error.External("You attempted to run bravais in the mode '%s', " +
			"but the only valid modes are 'help', 'check', 'symmetry', " +
			"'supercell', and 'cellmap'.", mode)
	}
}

// PrintHelp prints usage information.
func PrintHelp() {
	fmt.Print(`bravais <mode> <config file> [--<Var> <Value>]...

Modes:
  help       Print this message.
  check      Validate a config file without running anything expensive.
  symmetry   Print the point-group operations of the lattice.
  supercell  Build the supercell commensurate with the k-point mesh.
  cellmap    Build the supercell and its real-space cell map, and write the
             cell map files named in the config.

Only the [options] config variables (Tolerance, Threads, CellMapFile,
CellMapCache) can be overridden on the command line.
`)
}

// Symmetry runs the "symmetry" mode: it reduces the lattice and prints the
// discovered point-group operations in original-lattice coordinates.
func Symmetry(args *lib.Args) {
	sym := lattice.FindSymmetries(args.R, args.Truncated, args.Tolerance)
	log.Printf("Found %d point-group operations.", len(sym.Ops))
	for _, op := range sym.Ops {
		for i := 0; i < 3; i++ {
			fmt.Printf(" %2d %2d %2d\n", op[i][0], op[i][1], op[i][2])
		}
		fmt.Println()
	}
}

// Supercell runs the "supercell" mode and returns the built supercell so
// that CellMap can reuse it.
func Supercell(args *lib.Args) *supercell.Supercell {
	sym := lattice.FindSymmetries(args.R, args.Truncated, args.Tolerance)
	log.Printf("Found %d point-group operations.", len(sym.Ops))

	cell, err := supercell.Build(
		args.R, args.KPoints, sym.Ops, args.InvertList, args.Tolerance,
	)
	if err != nil { g_error.External(err.Error()) }

	log.Printf("Closed k-point mesh contains %d points.", len(cell.Mesh))
	log.Println("Lattice vector linear combinations in supercell:")
	for i := 0; i < 3; i++ {
		fmt.Printf(" %2d %2d %2d\n",
			cell.Super[i][0], cell.Super[i][1], cell.Super[i][2])
	}
	log.Println("Supercell lattice vectors:")
	for i := 0; i < 3; i++ {
		fmt.Printf(" %g %g %g\n",
			cell.RSuper[i][0], cell.RSuper[i][1], cell.RSuper[i][2])
	}
	return cell
}

// CellMap runs the "cellmap" mode: supercell construction followed by the
// real-space cell map, with optional dumps. In a multi-process deployment
// this mode's file writes must be done by a single designated process.
func CellMap(args *lib.Args) {
	cell := Supercell(args)

	m, err := cellmap.Build(args.R, cell.RSuper, args.Tolerance)
	if err != nil { g_error.Internal(err.Error()) }
	log.Printf("Cell map contains %d cells.", len(m))

	if args.CellMapFile != "" {
		log.Printf("Dumping '%s' ...", args.CellMapFile)
		if err := m.Write(args.CellMapFile, args.R); err != nil {
			g_error.External("The cell map dump could not be written: %s",
				err.Error())
		}
	}
	if args.CellMapCache != "" {
		log.Printf("Dumping '%s' ...", args.CellMapCache)
		if err := m.WriteCache(args.CellMapCache, args.R); err != nil {
			g_error.External("The cell map cache could not be written: %s",
				err.Error())
		}
	}
}
