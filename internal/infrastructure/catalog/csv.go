// Package catalog lee el catálogo de repuestos desde CSV (part_no;description;cost).
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// PartID deriva un UUID estable del part_no: el mismo CSV produce los mismos ids en cada carga.
func PartID(partNo string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("part:"+partNo)).String()
}

// ReadParts parsea el CSV separado por ';'. La cabecera es opcional.
// latin1=true decodifica ISO-8859-1 (exportaciones de planillas antiguas).
func ReadParts(r io.Reader, latin1 bool) ([]entity.Part, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var parts []entity.Part
	seen := map[string]int{}
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "part_no") {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperaban 3 columnas, hay %d", line, len(rec))
		}
		partNo := strings.TrimSpace(rec[0])
		if partNo == "" {
			return nil, fmt.Errorf("línea %d: part_no vacío", line)
		}
		// Acepta coma decimal (1234,50)
		cost, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: costo %q: %w", line, rec[2], err)
		}
		if cost.IsNegative() {
			return nil, fmt.Errorf("línea %d: costo negativo", line)
		}
		p := entity.Part{
			ID:          PartID(partNo),
			PartNo:      partNo,
			Description: strings.TrimSpace(rec[1]),
			Cost:        cost,
		}
		// Un part_no repetido reemplaza al anterior, igual que el ON CONFLICT del seed SQL
		if i, ok := seen[partNo]; ok {
			parts[i] = p
			continue
		}
		seen[partNo] = len(parts)
		parts = append(parts, p)
	}
	return parts, nil
}

// WriteSeedSQL escribe un script idempotente con un upsert por repuesto.
func WriteSeedSQL(w io.Writer, parts []entity.Part) error {
	if _, err := io.WriteString(w, "-- Catálogo de repuestos (generado por cmd/seed_parts)\n\n"); err != nil {
		return err
	}
	for _, p := range parts {
		_, err := fmt.Fprintf(w,
			"INSERT INTO parts (id, part_no, description, cost) VALUES ('%s', '%s', '%s', %s)\n"+
				"ON CONFLICT (part_no) DO UPDATE SET description = EXCLUDED.description, cost = EXCLUDED.cost, updated_at = now();\n",
			p.ID, escapeSQL(p.PartNo), escapeSQL(p.Description), p.Cost.String())
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
