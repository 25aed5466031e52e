// seed_employees genera un script SQL para dar de alta empleados en m_employee
// a partir de una exportación CSV del ERP (codificación Windows-1252).
//
// Uso: go run ./cmd/seed_employees [-company DTT] [-lang en-US] [-sep ';'] [ruta/empleados.csv]
// Columnas esperadas: código, nombre, ámbito de acceso (prefijo de inchargecode o ALL).
// Escribe: internal/infrastructure/postgres/migrations/002_seed_employees.sql
//
// Los empleados se crean sin contraseña: cada uno la establece en su primer acceso.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/sales"
)

type seedEmployee struct {
	code, name, scope string
}

func main() {
	company := flag.String("company", "DTT", "empresa dueña de los registros")
	lang := flag.String("lang", "en-US", "idioma de los maestros")
	sep := flag.String("sep", ";", "separador de columnas")
	flag.Parse()

	csvPath := "empleados.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	comma := []rune(*sep)
	if len(comma) != 1 {
		fmt.Fprintf(os.Stderr, "Separador inválido: %q\n", *sep)
		os.Exit(1)
	}

	emps, err := parseEmployees(transform.NewReader(f, charmap.Windows1252.NewDecoder()), comma[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_employees.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, *company, *lang, emps); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d empleados\n", outPath, len(emps))
}

// parseEmployees lee filas código;nombre;ámbito. Omite la cabecera si la primera celda es "code"
// o "codigo", descarta filas vacías y rechaza ámbitos con comodines LIKE o códigos repetidos.
func parseEmployees(r io.Reader, comma rune) ([]seedEmployee, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	seen := make(map[string]int)
	var out []seedEmployee
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		if len(rec) == 0 || strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperaban 3 columnas, hay %d", line, len(rec))
		}
		e := seedEmployee{
			code:  strings.TrimSpace(rec[0]),
			name:  strings.TrimSpace(rec[1]),
			scope: strings.TrimSpace(rec[2]),
		}
		if strings.EqualFold(e.scope, entity.AccessScopeAll) {
			e.scope = entity.AccessScopeAll
		}
		switch {
		case e.code == "":
			return nil, fmt.Errorf("línea %d: código vacío", line)
		case e.scope == "":
			return nil, fmt.Errorf("línea %d: empleado %s sin ámbito de acceso", line, e.code)
		case sales.ContainsLikeWildcard(e.scope):
			return nil, fmt.Errorf("línea %d: el ámbito %q de %s contiene comodines (%% o _)", line, e.scope, e.code)
		}
		if prev, ok := seen[e.code]; ok {
			return nil, fmt.Errorf("línea %d: código %s repetido (línea %d)", line, e.code, prev)
		}
		seen[e.code] = line
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].code < out[j].code })
	return out, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	h := strings.ToLower(strings.TrimSpace(rec[0]))
	return h == "code" || h == "codigo" || h == "código"
}

// writeSQL emite un upsert por empleado. Un re-seed actualiza nombre y ámbito pero
// nunca toca flextext3 (el hash de contraseña).
func writeSQL(w io.Writer, company, lang string, emps []seedEmployee) error {
	var b strings.Builder
	b.WriteString("-- Empleados del servicio de consulta de ventas\n")
	b.WriteString("-- Generado por cmd/seed_employees\n\n")
	if len(emps) == 0 {
		b.WriteString("-- (sin empleados)\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("INSERT INTO m_employee (company, lang, code, name, flexmaster1, flexmaster3, flextext3) VALUES\n")
	for i, e := range emps {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '1', '%s', NULL)",
			escapeSQL(company), escapeSQL(lang), escapeSQL(e.code), escapeSQL(e.name), escapeSQL(e.scope))
		if i < len(emps)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString("ON CONFLICT (company, lang, code) DO UPDATE\n")
	b.WriteString("  SET name = EXCLUDED.name, flexmaster1 = EXCLUDED.flexmaster1, flexmaster3 = EXCLUDED.flexmaster3;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
