package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"retypegen/ir"
)

type (
	Args struct {
		Dump *DumpCmd `arg:"subcommand:dump"`
		List *ListCmd `arg:"subcommand:list"`
	}
	DumpCmd struct {
		Schema string `arg:"positional,required" help:"path to compiled schema" placeholder:"schema.bfbs"`
		Out    string `help:"write JSON here instead of stdout" placeholder:"objects.json"`
		Kind   string `help:"datatype, component, or archetype" placeholder:"kind"`
	}
	ListCmd struct {
		Schema string `arg:"positional,required" help:"path to compiled schema" placeholder:"schema.bfbs"`
		Kind   string `help:"datatype, component, or archetype" placeholder:"kind"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"The semantic pass of a schema-driven code generator.\n",
			"Loads a compiled FlatBuffers schema (.bfbs), resolves it into the object",
			"model the per-language generators consume, and prints that model.",
		},
		"\n",
	)
	des += "\n"
	return des
}

var kindColors = map[ir.ObjectKind]*color.Color{
	ir.ObjectKindDatatype:  color.New(color.FgCyan),
	ir.ObjectKindComponent: color.New(color.FgGreen),
	ir.ObjectKindArchetype: color.New(color.FgMagenta),
}

func parseKind(value string) (ir.ObjectKind, error) {
	switch value {
	case "":
		return ir.ObjectKindAny, nil
	case "datatype":
		return ir.ObjectKindDatatype, nil
	case "component":
		return ir.ObjectKindComponent, nil
	case "archetype":
		return ir.ObjectKindArchetype, nil
	default:
		return ir.ObjectKindAny, fmt.Errorf("unknown kind `%s`: want datatype, component, or archetype", value)
	}
}

func loadObjects(path string) (*ir.Objects, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		err := errors.Wrapf(err, `cli.loadObjects error reading "%v"`, path)
		return nil, err
	}
	objects, err := ir.FromBuf(bs)
	if err != nil {
		err := errors.Wrapf(err, `cli.loadObjects error resolving "%v"`, path)
		return nil, err
	}
	return objects, nil
}

// StartDump resolves a schema and prints the ordered JSON rendering of its
// registry, optionally restricted to one kind.
func StartDump(schemaPath string, outPath string, kindValue string) error {
	kind, err := parseKind(kindValue)
	if err != nil {
		return err
	}
	objects, err := loadObjects(schemaPath)
	if err != nil {
		return err
	}
	dumpBytes, err := json.MarshalIndent(objects.ToOrderedMap(kind), "", "  ")
	if err != nil {
		return errors.Wrap(err, "cli.StartDump error")
	}
	if outPath == "" {
		fmt.Println(string(dumpBytes))
		return nil
	}
	if err := os.WriteFile(outPath, dumpBytes, 0644); err != nil {
		return errors.Wrapf(err, `cli.StartDump error writing "%v"`, outPath)
	}
	return nil
}

// StartList resolves a schema and prints one line per definition, in
// registry order.
func StartList(schemaPath string, kindValue string) error {
	kind, err := parseKind(kindValue)
	if err != nil {
		return err
	}
	objects, err := loadObjects(schemaPath)
	if err != nil {
		return err
	}
	lines := lo.Map(
		objects.OrderedObjects(kind),
		func(object *ir.Object, _ int) string {
			return fmt.Sprintf(
				"%4d  %s  %-40s  %d fields",
				object.Order(),
				kindColors[object.Kind].Sprintf("%-9s", object.Kind),
				object.FQName,
				len(object.Fields),
			)
		},
	)
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)

	err := error(nil)
	switch {
	case args.Dump != nil:
		err = StartDump(args.Dump.Schema, args.Dump.Out, args.Dump.Kind)
	case args.List != nil:
		err = StartList(args.List.Schema, args.List.Kind)
	default:
		parser.WriteHelp(os.Stdout)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
