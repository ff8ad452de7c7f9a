// Command codecheck validates treecodec descriptor documents. It loads each
// YAML file, compiles every declared type's metadata, and reports the
// resulting field and hint configuration.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/treecodec/descriptor"
	"github.com/wippyai/treecodec/meta"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	quiet := pflag.BoolP("quiet", "q", false, "suppress per-type detail, report failures only")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: codecheck [flags] <descriptor.yaml> [...]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	files := pflag.Args()
	if len(files) == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		meta.SetLogger(logger.Named("meta"))
	}

	failed := false
	for _, path := range files {
		if err := check(path, *quiet); err != nil {
			fmt.Printf("%s %s: %v\n", failStyle.Render("FAIL"), path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func check(path string, quiet bool) error {
	f, err := descriptor.Load(path)
	if err != nil {
		return err
	}

	for _, name := range f.TypeNames() {
		desc := f.Types[name]
		// Load already validated; compile again here for the report detail.
		tm, err := meta.Compile(name, desc)
		if err != nil {
			return err
		}
		if quiet {
			continue
		}
		fmt.Printf("%s %s %s\n", okStyle.Render("OK"), nameStyle.Render(name), summarize(tm))
		for _, fm := range tm.Fields {
			fmt.Printf("    %s\n", dimStyle.Render(describeField(fm)))
		}
	}
	if !quiet {
		fmt.Printf("%s %s: %d types\n", okStyle.Render("PASS"), path, len(f.Types))
	}
	return nil
}

func summarize(tm *meta.TypeMeta) string {
	if tm.Hint == nil {
		return fmt.Sprintf("(%d fields)", len(tm.Fields))
	}
	return fmt.Sprintf("(%d fields, hint %s=%q)", len(tm.Fields), tm.Hint.Field, tm.Hint.Value)
}

func describeField(fm meta.FieldMeta) string {
	switch {
	case fm.Embedded:
		return "<embedded>"
	case fm.Ignored:
		return fmt.Sprintf("%s (ignored, default %v)", fm.Name, fm.Default)
	case fm.HasDefault:
		return fmt.Sprintf("%s (default %v)", fm.Name, fm.Default)
	default:
		return fm.Name
	}
}
