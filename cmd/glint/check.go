package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zoobzio/glint"
	"github.com/zoobzio/glint/dom"
	"go.uber.org/zap"
)

var errInvalidFields = errors.New("one or more fields are invalid")

var checkValues []string

var checkCmd = &cobra.Command{
	Use:   "check PAGE",
	Short: "Validate every form control on a page",
	Long: `Parse PAGE, optionally fill controls with --set name=value, and run the
live field validation over every .form-control. Exits non-zero when any
field is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringArrayVar(&checkValues, "set", nil, "Set a control value (name=value, matched by name or id)")
}

// checkResult is one row of the check report.
type checkResult struct {
	Name    string
	Kind    glint.Kind
	Value   string
	Verdict glint.Verdict
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	doc, err := readPage(args[0])
	if err != nil {
		return err
	}

	values, err := parseAssignments(checkValues)
	if err != nil {
		return err
	}

	page := glint.NewPage(doc, glint.WithConfig(cfg))
	defer page.Close()

	results, err := checkPage(page, doc, values)
	if err != nil {
		return err
	}
	logger.Debug("Checked page",
		zap.String("page", args[0]),
		zap.Int("fields", len(results)),
	)

	if err := writeReport(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	for _, r := range results {
		if r.Verdict == glint.Invalid {
			return errInvalidFields
		}
	}
	return nil
}

// checkPage applies values and validates each form control in document
// order. Every assignment must match a control.
func checkPage(page *glint.Page, doc dom.Document, values map[string]string) ([]checkResult, error) {
	controls := doc.QueryAll(".form-control")
	used := make(map[string]bool, len(values))

	results := make([]checkResult, 0, len(controls))
	for i, n := range controls {
		name := controlName(n)
		if v, ok := values[name]; ok {
			n.SetValue(v)
			used[name] = true
		}
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		field := glint.FieldFrom(n)
		results = append(results, checkResult{
			Name:    name,
			Kind:    field.Kind,
			Value:   field.Value,
			Verdict: page.ValidateField(n),
		})
	}

	for name := range values {
		if !used[name] {
			return nil, fmt.Errorf("no form control named %q", name)
		}
	}
	return results, nil
}

func controlName(n dom.Node) string {
	if name, ok := n.Attr("name"); ok && name != "" {
		return name
	}
	if id, ok := n.Attr("id"); ok {
		return id
	}
	return ""
}

func parseAssignments(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want name=value", kv)
		}
		out[name] = value
	}
	return out, nil
}

func writeReport(w io.Writer, results []checkResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tKIND\tVALUE\tVERDICT")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%q\t%s\n", r.Name, r.Kind, r.Value, r.Verdict)
	}
	return tw.Flush()
}

func readPage(path string) (*dom.HTMLDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()
	return dom.Parse(f)
}
