// Package validate checks corpus integrity: schema compliance, duplicate
// keys, cross-references, and per-field null coverage. Unlike the store,
// which refuses a broken corpus outright, the validator reads everything
// it can and collects findings, so one bad file does not hide the rest.
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/periodica-labs/periodica/pkg/chem"
)

// Severity classifies a finding. Errors fail the run, warnings do not.
type Severity string

// Finding severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem discovered in the corpus.
type Finding struct {
	Severity Severity `json:"severity"`
	// File is the corpus-relative path of the offending file.
	File string `json:"file,omitempty"`
	// Record identifies the record inside the file: an element symbol
	// or a reaction ID.
	Record  string `json:"record,omitempty"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	var b strings.Builder
	b.WriteString(string(f.Severity))
	if f.File != "" {
		b.WriteString(" " + f.File)
	}
	if f.Record != "" {
		b.WriteString(" [" + f.Record + "]")
	}
	b.WriteString(": " + f.Message)
	return b.String()
}

// NullStat reports how many element records leave one field null.
type NullStat struct {
	// Field is the dotted JSON path, e.g. "physical_properties.density_kg_m3".
	Field string `json:"field"`
	Count int    `json:"count"`
	Total int    `json:"total"`
}

// Percent is the share of records missing the field, 0 to 100.
func (n NullStat) Percent() float64 {
	if n.Total == 0 {
		return 0
	}
	return float64(n.Count) / float64(n.Total) * 100
}

// Report is the outcome of one validation run.
type Report struct {
	// Elements and Reactions count the records that decoded, whether or
	// not they validated.
	Elements  int       `json:"elements"`
	Reactions int       `json:"reactions"`
	Findings  []Finding `json:"findings,omitempty"`
	// NullCoverage lists element fields recorded as null somewhere in
	// the corpus, most frequent first. Informational, never a finding.
	NullCoverage []NullStat `json:"null_coverage,omitempty"`
}

// ErrorCount returns the number of error findings.
func (r *Report) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning findings.
func (r *Report) WarningCount() int { return r.count(SeverityWarning) }

func (r *Report) count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Passed reports whether the run produced no errors. Warnings pass.
func (r *Report) Passed() bool { return r.ErrorCount() == 0 }

// Summary is the one-line verdict.
func (r *Report) Summary() string {
	if r.Passed() {
		return "VALIDATION PASSED"
	}
	return fmt.Sprintf("VALIDATION FAILED: %d error(s)", r.ErrorCount())
}

func (r *Report) errorf(file, record, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Severity: SeverityError, File: file, Record: record,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *Report) warnf(file, record, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Severity: SeverityWarning, File: file, Record: record,
		Message: fmt.Sprintf(format, args...),
	})
}

var (
	symbolRe = regexp.MustCompile(`^[A-Z][a-z]?[a-z]?$`)
	// reactionIDRe captures the three parts of <Symbol>-<category>-<NNN>.
	reactionIDRe = regexp.MustCompile(`^([A-Z][a-z]?[a-z]?)-([a-z]+)-(\d{3})$`)
)

// Validator checks the corpus rooted at dataRoot.
type Validator struct {
	dataRoot string
	logger   *slog.Logger
	check    *validator.Validate
}

// New returns a Validator for the corpus under dataRoot.
func New(dataRoot string, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	check := validator.New()
	// Findings should name fields the way the files spell them.
	check.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = check.RegisterValidation("elemsymbol", func(fl validator.FieldLevel) bool {
		return symbolRe.MatchString(fl.Field().String())
	})
	_ = check.RegisterValidation("elemcategory", func(fl validator.FieldLevel) bool {
		for _, c := range chem.Categories {
			if fl.Field().String() == string(c) {
				return true
			}
		}
		return false
	})
	_ = check.RegisterValidation("phase", func(fl validator.FieldLevel) bool {
		switch chem.Phase(fl.Field().String()) {
		case chem.PhaseSolid, chem.PhaseLiquid, chem.PhaseGas, chem.PhaseUnknown:
			return true
		}
		return false
	})
	_ = check.RegisterValidation("rxncategory", func(fl validator.FieldLevel) bool {
		for _, c := range chem.ReactionCategories {
			if fl.Field().String() == string(c) {
				return true
			}
		}
		return false
	})

	return &Validator{dataRoot: dataRoot, logger: logger, check: check}
}

// Run validates the whole corpus. The error return is reserved for I/O
// and cancellation; data problems land in the report as findings.
func (v *Validator) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	elements, err := v.checkElements(ctx, report)
	if err != nil {
		return nil, err
	}

	symbols := make(map[string]struct{}, len(elements))
	for _, de := range elements {
		if de.element.Symbol != "" {
			symbols[de.element.Symbol] = struct{}{}
		}
	}

	ids, err := v.checkReactions(ctx, report, symbols)
	if err != nil {
		return nil, err
	}
	v.checkBackReferences(report, elements, ids)

	v.logger.Info("validation finished",
		"elements", report.Elements,
		"reactions", report.Reactions,
		"errors", report.ErrorCount(),
		"warnings", report.WarningCount())
	return report, nil
}

type decodedElement struct {
	file    string
	element chem.Element
}

func (v *Validator) checkElements(ctx context.Context, report *Report) ([]decodedElement, error) {
	paths, err := listJSON(filepath.Join(v.dataRoot, "elements"))
	if err != nil {
		if os.IsNotExist(err) {
			report.errorf("elements", "", "elements directory missing")
			return nil, nil
		}
		return nil, err
	}

	var decoded []decodedElement
	nulls := map[string]int{}
	seenNumber := map[int]string{}
	seenSymbol := map[string]string{}
	seenName := map[string]string{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := filepath.Join("elements", filepath.Base(path))

		data, err := os.ReadFile(path)
		if err != nil {
			report.errorf(rel, "", "unreadable: %v", err)
			continue
		}
		var e chem.Element
		if err := json.Unmarshal(data, &e); err != nil {
			report.errorf(rel, "", "invalid JSON: %v", err)
			continue
		}
		decoded = append(decoded, decodedElement{file: rel, element: e})

		// Null coverage runs over the raw document so it sees exactly
		// what is on disk, dotted paths included.
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err == nil {
			countNulls(raw, "", nulls)
		}

		if err := v.check.Struct(&e); err != nil {
			v.reportStructErrors(report, rel, e.Symbol, err)
		}

		if e.AtomicNumber > 0 {
			if first, dup := seenNumber[e.AtomicNumber]; dup {
				report.errorf(rel, e.Symbol, "duplicate atomic number %d (also in %s)", e.AtomicNumber, first)
			} else {
				seenNumber[e.AtomicNumber] = rel
			}
		}
		if e.Symbol != "" {
			key := strings.ToUpper(e.Symbol)
			if first, dup := seenSymbol[key]; dup {
				report.errorf(rel, e.Symbol, "duplicate symbol %q (also in %s)", e.Symbol, first)
			} else {
				seenSymbol[key] = rel
			}
		}
		if e.Name != "" {
			key := strings.ToLower(e.Name)
			if first, dup := seenName[key]; dup {
				report.errorf(rel, e.Symbol, "duplicate name %q (also in %s)", e.Name, first)
			} else {
				seenName[key] = rel
			}
		}
	}

	report.Elements = len(decoded)
	report.NullCoverage = coverageStats(nulls, len(decoded))
	return decoded, nil
}

func (v *Validator) checkReactions(ctx context.Context, report *Report, symbols map[string]struct{}) (map[string]struct{}, error) {
	paths, err := listJSON(filepath.Join(v.dataRoot, "reactions"))
	if err != nil {
		if os.IsNotExist(err) {
			report.warnf("reactions", "", "no reaction files found")
			return map[string]struct{}{}, nil
		}
		return nil, err
	}

	ids := map[string]struct{}{}
	seenID := map[string]string{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		base := filepath.Base(path)
		// index.json is the derived master index, not reaction data.
		if base == "index.json" {
			continue
		}
		rel := filepath.Join("reactions", base)

		data, err := os.ReadFile(path)
		if err != nil {
			report.errorf(rel, "", "unreadable: %v", err)
			continue
		}
		rxns, err := chem.DecodeReactions(data)
		if err != nil {
			report.errorf(rel, "", "invalid JSON: %v", err)
			continue
		}

		// Reaction files are conventionally named after their category.
		fileCat, fileCatKnown := chem.ParseReactionCategory(strings.TrimSuffix(base, ".json"))

		for i := range rxns {
			r := &rxns[i]
			report.Reactions++

			record := r.ID
			if record == "" {
				record = fmt.Sprintf("#%d", i)
			}

			if err := v.check.Struct(r); err != nil {
				v.reportStructErrors(report, rel, record, err)
			}

			if r.ID != "" {
				if first, dup := seenID[r.ID]; dup {
					report.errorf(rel, r.ID, "duplicate reaction ID (also in %s)", first)
				} else {
					seenID[r.ID] = rel
					ids[r.ID] = struct{}{}
				}
				v.checkReactionID(report, rel, r, symbols)
			}

			if fileCatKnown && r.Category != "" && r.Category != fileCat {
				report.warnf(rel, record, "category %q in a %s file", r.Category, fileCat)
			}

			for _, sym := range r.ElementsInvolved {
				if _, ok := symbols[sym]; !ok {
					report.errorf(rel, record, "references unknown element %q", sym)
				}
			}
		}
	}
	return ids, nil
}

// checkReactionID enforces the <Symbol>-<category>-<NNN> shape and the
// agreement between the embedded category and the record's own.
func (v *Validator) checkReactionID(report *Report, file string, r *chem.Reaction, symbols map[string]struct{}) {
	m := reactionIDRe.FindStringSubmatch(r.ID)
	if m == nil {
		report.errorf(file, r.ID, "ID must have the form Symbol-category-NNN")
		return
	}
	if m[2] != string(r.Category) {
		report.errorf(file, r.ID, "ID category %q does not match category %q", m[2], r.Category)
	}
	if _, ok := symbols[m[1]]; !ok {
		report.warnf(file, r.ID, "ID symbol %q is not in the element corpus", m[1])
	}
}

// checkBackReferences verifies that every reaction reference embedded in
// an element record points at a reaction that exists.
func (v *Validator) checkBackReferences(report *Report, elements []decodedElement, ids map[string]struct{}) {
	for _, de := range elements {
		for _, ref := range de.element.Reactions {
			if ref.ID == "" {
				// Struct validation already flagged the missing ID.
				continue
			}
			if _, ok := ids[ref.ID]; !ok {
				report.errorf(de.file, de.element.Symbol, "back-reference to unknown reaction %q", ref.ID)
			}
		}
	}
}

func (v *Validator) reportStructErrors(report *Report, file, record string, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		report.errorf(file, record, "validation: %v", err)
		return
	}
	for _, fe := range verrs {
		report.errorf(file, record, "%s", describeFieldError(fe))
	}
}

// describeFieldError renders one struct-tag violation with the JSON
// field path, the offending value, and the failed constraint.
func describeFieldError(fe validator.FieldError) string {
	path := fe.Namespace()
	// Drop the root struct name; files know nothing about Go types.
	if _, rest, found := strings.Cut(path, "."); found {
		path = rest
	}
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s: required field is missing", path)
	}
	constraint := fe.Tag()
	if p := fe.Param(); p != "" {
		constraint += "=" + p
	}
	return fmt.Sprintf("%s: value %v fails %s", path, fe.Value(), constraint)
}

// countNulls tallies null-valued keys under dotted paths. Nested objects
// are descended, values inside arrays are not.
func countNulls(obj map[string]any, prefix string, counts map[string]int) {
	for k, val := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch nested := val.(type) {
		case nil:
			counts[key]++
		case map[string]any:
			countNulls(nested, key, counts)
		}
	}
}

func coverageStats(counts map[string]int, total int) []NullStat {
	if len(counts) == 0 {
		return nil
	}
	stats := make([]NullStat, 0, len(counts))
	for field, count := range counts {
		stats = append(stats, NullStat{Field: field, Count: count, Total: total})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Field < stats[j].Field
	})
	return stats
}

// listJSON returns the sorted .json files directly under dir.
func listJSON(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}
