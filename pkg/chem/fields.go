package chem

// FieldKind is the value type of a query field.
type FieldKind int

// Field kinds.
const (
	// FieldNumeric fields support equals, greaterThan, and lessThan.
	FieldNumeric FieldKind = iota
	// FieldString fields support equals and contains.
	FieldString
	// FieldBool fields support equals.
	FieldBool
	// FieldStringList fields support contains against any member.
	FieldStringList
)

// Field maps a public query field name to a typed accessor on Element.
// The zero Field is invalid; obtain fields through FieldByName or Fields.
type Field struct {
	// Name is the public query name (e.g. "melting_point").
	Name string
	Kind FieldKind
	// Unit is the display unit, empty for dimensionless fields.
	Unit string

	number func(*Element) (float64, bool)
	text   func(*Element) string
	flag   func(*Element) bool
	list   func(*Element) []string
}

// Number returns the numeric value of the field. ok is false when the
// element does not record the property, which callers must treat as
// "excluded from comparisons", never as zero.
func (f Field) Number(e *Element) (value float64, ok bool) {
	if f.number == nil {
		return 0, false
	}
	return f.number(e)
}

// Text returns the string value of the field, empty when unset.
func (f Field) Text(e *Element) string {
	if f.text == nil {
		return ""
	}
	return f.text(e)
}

// Flag returns the boolean value of the field.
func (f Field) Flag(e *Element) bool {
	if f.flag == nil {
		return false
	}
	return f.flag(e)
}

// List returns the string-list value of the field.
func (f Field) List(e *Element) []string {
	if f.list == nil {
		return nil
	}
	return f.list(e)
}

func fromPtr(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func fromIntPtr(p *int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}

// fields is the query field registry, in display order.
var fields = []Field{
	{Name: "atomic_number", Kind: FieldNumeric,
		number: func(e *Element) (float64, bool) { return float64(e.AtomicNumber), true }},
	{Name: "symbol", Kind: FieldString,
		text: func(e *Element) string { return e.Symbol }},
	{Name: "name", Kind: FieldString,
		text: func(e *Element) string { return e.Name }},
	{Name: "atomic_mass", Kind: FieldNumeric, Unit: "u",
		number: func(e *Element) (float64, bool) { return e.AtomicMassU, true }},
	{Name: "category", Kind: FieldString,
		text: func(e *Element) string { return string(e.Classification.Category) }},
	{Name: "group", Kind: FieldNumeric,
		number: func(e *Element) (float64, bool) { return fromIntPtr(e.Classification.Group) }},
	{Name: "period", Kind: FieldNumeric,
		number: func(e *Element) (float64, bool) { return float64(e.Classification.Period), true }},
	{Name: "block", Kind: FieldString,
		text: func(e *Element) string { return e.Classification.Block }},
	{Name: "phase", Kind: FieldString,
		text: func(e *Element) string { return string(e.Physical.PhaseAtSTP) }},
	{Name: "melting_point", Kind: FieldNumeric, Unit: "K",
		number: func(e *Element) (float64, bool) { return fromPtr(e.Physical.MeltingPointK) }},
	{Name: "boiling_point", Kind: FieldNumeric, Unit: "K",
		number: func(e *Element) (float64, bool) { return fromPtr(e.Physical.BoilingPointK) }},
	{Name: "density", Kind: FieldNumeric, Unit: "kg/m³",
		number: func(e *Element) (float64, bool) { return fromPtr(e.Physical.DensityKgM3) }},
	{Name: "thermal_conductivity", Kind: FieldNumeric, Unit: "W/(m·K)",
		number: func(e *Element) (float64, bool) { return fromPtr(e.Physical.ThermalConductivity) }},
	{Name: "electronegativity", Kind: FieldNumeric,
		number: func(e *Element) (float64, bool) { return fromPtr(e.Structure.Electronegativity) }},
	{Name: "atomic_radius", Kind: FieldNumeric, Unit: "pm",
		number: func(e *Element) (float64, bool) { return fromPtr(e.Structure.AtomicRadiusPM) }},
	{Name: "covalent_radius", Kind: FieldNumeric, Unit: "pm",
		number: func(e *Element) (float64, bool) { return fromPtr(e.Structure.CovalentRadiusPM) }},
	{Name: "electron_affinity", Kind: FieldNumeric, Unit: "kJ/mol",
		number: func(e *Element) (float64, bool) { return fromPtr(e.Structure.ElectronAffinity) }},
	{Name: "valence_electrons", Kind: FieldNumeric,
		number: func(e *Element) (float64, bool) { return fromIntPtr(e.Structure.ValenceElectrons) }},
	{Name: "radioactive", Kind: FieldBool,
		flag: func(e *Element) bool { return e.Nuclear.Radioactive }},
	{Name: "discovery_year", Kind: FieldNumeric,
		number: func(e *Element) (float64, bool) { return fromIntPtr(e.Discovery.Year) }},
	{Name: "applications", Kind: FieldStringList,
		list: func(e *Element) []string { return e.Applications }},
}

var fieldIndex = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}()

// FieldByName looks up a query field by its public name.
func FieldByName(name string) (Field, bool) {
	f, ok := fieldIndex[name]
	return f, ok
}

// Fields returns all query fields in registry order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// NumericFields returns the numeric query fields in registry order.
func NumericFields() []Field {
	var out []Field
	for _, f := range fields {
		if f.Kind == FieldNumeric {
			out = append(out, f)
		}
	}
	return out
}

// FieldNames returns the public names of all query fields in registry order.
func FieldNames() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}
