package lib

/* parse.go reads bravais config files and command line overrides. Config
files are gcfg/INI-style:

    [lattice]
    vector = 1.0 0.0 0.0
    vector = 0.0 1.0 0.0
    vector = 0.0 0.0 1.0
    truncatez = true

    [kmesh]
    point = 0.0 0.0 0.0
    point = 0.5 0.0 0.0
    invert = true

    [options]
    tolerance = 1e-4
    threads = -1
    cellmapfile = cellmap.dat
    cellmapcache = cellmap.gup

Each "vector" line is one lattice vector (a column of the lattice matrix), in
order. Each "point" line is one irreducible k-point in fractional reciprocal
coordinates. */

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	g_error "github.com/phil-mansfield/bravais/lib/error"
	"github.com/phil-mansfield/bravais/lib/geom"
	"github.com/phil-mansfield/bravais/lib/lattice"
)

// Config stores the unprocessed values which the user assigned to each
// config variable.
type Config struct {
	Lattice struct {
		Vector []string
		TruncateX, TruncateY, TruncateZ bool
	}
	KMesh struct {
		Point []string
		Invert bool
	}
	Options struct {
		Tolerance float64
		Threads int
		CellMapFile string
		CellMapCache string
	}
}

// ParseCommandLine parses the command line arguments and returns the mode
// bravais is being run in, the name of the config file, and any variables
// which were overridden. Expects the arguments in the order:
// $ bravais <mode> <config file> [--<Var1> <Value1>] [--<Var2> <Value2>]
func ParseCommandLine() (mode, configFile string, overrides map[string]string) {
	if len(os.Args) < 2 {
		g_error.External("bravais must be run as " +
			"'bravais <mode> <config file> [--<Var> <Value>]...', where " +
			"<mode> is one of 'help', 'check', 'symmetry', 'supercell', " +
			"or 'cellmap'.")
	}
	mode = os.Args[1]
	if mode == "help" { return mode, "", map[string]string{ } }

	if len(os.Args) < 3 {
		g_error.External("The mode '%s' requires a config file: " +
			"'bravais %s <config file>'.", mode, mode)
	}
	configFile = os.Args[2]

	overrides = map[string]string{ }
	rest := os.Args[3:]
	for i := 0; i < len(rest); i += 2 {
		if !strings.HasPrefix(rest[i], "--") {
			g_error.External("The argument '%s' should be a variable " +
				"override of the form '--<Var> <Value>'.", rest[i])
		}
		if i+1 >= len(rest) {
			g_error.External("The override '%s' has no value.", rest[i])
		}
		overrides[strings.TrimPrefix(rest[i], "--")] = rest[i+1]
	}
	return mode, configFile, overrides
}

// ParseConfigFile parses a config file into a Config, exiting with a
// descriptive error if the file is missing or malformed.
func ParseConfigFile(fileName string) *Config {
	cfg := &Config{ }
	if err := gcfg.ReadFileInto(cfg, fileName); err != nil {
		g_error.External("The config file '%s' could not be read: %s",
			fileName, err.Error())
	}
	return cfg
}

// Overwrite replaces config values with the ones set on the command line.
// Only the [options] variables can be overridden.
func (cfg *Config) Overwrite(overrides map[string]string) {
	for name, value := range overrides {
		var err error
		switch strings.ToLower(name) {
		case "tolerance":
			cfg.Options.Tolerance, err = strconv.ParseFloat(value, 64)
		case "threads":
			cfg.Options.Threads, err = strconv.Atoi(value)
		case "cellmapfile":
			cfg.Options.CellMapFile = value
		case "cellmapcache":
			cfg.Options.CellMapCache = value
		default:
			g_error.External("'%s' is not an overridable config variable. " +
				"Only Tolerance, Threads, CellMapFile, and CellMapCache " +
				"can be set on the command line.", name)
		}
		if err != nil {
			g_error.External("The value '%s' given for '%s' could not be " +
				"parsed: %s", value, name, err.Error())
		}
	}
}

// Process converts the raw user input to a format which is more useful for
// internal functions, validating it along the way.
func (cfg *Config) Process() *Args {
	args := &Args{ }

	if len(cfg.Lattice.Vector) != 3 {
		g_error.External("The [lattice] section must contain exactly 3 " +
			"'vector' lines, but contains %d.", len(cfg.Lattice.Vector))
	}
	cols := [3]geom.Vec{ }
	for i := range cfg.Lattice.Vector {
		v, err := parseVec(cfg.Lattice.Vector[i])
		if err != nil {
			g_error.External("Lattice vector %d, '%s', could not be " +
				"parsed: %s", i+1, cfg.Lattice.Vector[i], err.Error())
		}
		cols[i] = v
	}
	args.R = geom.FromCols(cols[0], cols[1], cols[2])

	args.Tolerance = cfg.Options.Tolerance
	if args.Tolerance == 0 { args.Tolerance = lattice.DefaultTolerance }
	if args.Tolerance < 0 {
		g_error.External("Tolerance must be positive, but is %g.",
			args.Tolerance)
	}

	if det := args.R.Det(); det == 0 {
		g_error.External("The three lattice vectors are linearly " +
			"dependent: they do not span a 3D lattice.")
	}

	args.Truncated = [3]bool{
		cfg.Lattice.TruncateX, cfg.Lattice.TruncateY, cfg.Lattice.TruncateZ,
	}

	for i := range cfg.KMesh.Point {
		k, err := parseVec(cfg.KMesh.Point[i])
		if err != nil {
			g_error.External("k-point %d, '%s', could not be parsed: %s",
				i+1, cfg.KMesh.Point[i], err.Error())
		}
		args.KPoints = append(args.KPoints, k)
	}

	args.InvertList = []int{ 1 }
	if cfg.KMesh.Invert { args.InvertList = []int{ 1, -1 } }

	args.Threads = cfg.Options.Threads
	args.CellMapFile = cfg.Options.CellMapFile
	args.CellMapCache = cfg.Options.CellMapCache

	return args
}

// parseVec parses a whitespace-separated 3-vector like "1.0 0.0 0.0".
func parseVec(s string) (geom.Vec, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return geom.Vec{ }, fmt.Errorf("it has %d components instead of 3",
			len(fields))
	}
	v := geom.Vec{ }
	for i := range fields {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geom.Vec{ }, fmt.Errorf("'%s' is not a number", fields[i])
		}
		v[i] = x
	}
	return v, nil
}
