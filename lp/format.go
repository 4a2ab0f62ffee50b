package lp

import (
	"fmt"
	"math"
	"strings"
)

// String renders the live model in an LP-file like layout, for logs and tests.
func (m *Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\ %s\n", m.name)
	if m.sense == Maximize {
		b.WriteString("Maximize\n obj:")
	} else {
		b.WriteString("Minimize\n obj:")
	}
	for _, c := range m.Columns() {
		writeTerm(&b, m.cols[c].cost, m.cols[c].name)
	}
	if m.fixedObjective != 0 {
		fmt.Fprintf(&b, " %+g", m.fixedObjective)
	}
	b.WriteString("\nSubject To\n")
	for _, r := range m.Rows() {
		rw := &m.rows[r]
		fmt.Fprintf(&b, " %s:", rw.name)
		for _, c := range m.RowColumns(r) {
			writeTerm(&b, rw.coefs[c], m.cols[c].name)
		}
		b.WriteString(boundSuffix(rw.kind, rw.lb, rw.ub))
		b.WriteByte('\n')
	}
	b.WriteString("Bounds\n")
	for _, c := range m.Columns() {
		cl := &m.cols[c]
		switch cl.kind {
		case Free:
			fmt.Fprintf(&b, " %s free\n", cl.name)
		case Fixed:
			fmt.Fprintf(&b, " %s = %g\n", cl.name, cl.lb)
		default:
			fmt.Fprintf(&b, " %s <= %s <= %s\n", fmtBound(cl.lb), cl.name, fmtBound(cl.ub))
		}
	}
	b.WriteString("End\n")

	return b.String()
}

func writeTerm(b *strings.Builder, coef float64, name string) {
	switch coef {
	case 0:
	case 1:
		fmt.Fprintf(b, " + %s", name)
	case -1:
		fmt.Fprintf(b, " - %s", name)
	default:
		if coef < 0 {
			fmt.Fprintf(b, " - %g %s", -coef, name)
		} else {
			fmt.Fprintf(b, " + %g %s", coef, name)
		}
	}
}

func boundSuffix(kind BoundKind, lb, ub float64) string {
	switch kind {
	case Lower:
		return fmt.Sprintf(" >= %g", lb)
	case Upper:
		return fmt.Sprintf(" <= %g", ub)
	case Fixed:
		return fmt.Sprintf(" = %g", lb)
	case Double:
		return fmt.Sprintf(" in [%g, %g]", lb, ub)
	default:
		return " free"
	}
}

func fmtBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return fmt.Sprintf("%g", v)
	}
}
