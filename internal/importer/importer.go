package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"iyan-ordering/internal/domain"

	"github.com/shopspring/decimal"
)

// MenuWriter receives catalog rows.
type MenuWriter interface {
	SetBasePrice(ctx context.Context, price int64) error
	UpsertSoup(ctx context.Context, soup domain.Soup) error
	UpsertProtein(ctx context.Context, protein domain.Protein) error
	UpsertTier(ctx context.Context, kind domain.TierKind, tier domain.Tier) error
	UpsertCombo(ctx context.Context, combo domain.Combo) error
}

// Row kinds understood by the importer.
const (
	KindBase    = "base"
	KindSoup    = "soup"
	KindProtein = "protein"
	KindCombo   = "combo"
)

// CSVImporter reads a catalog CSV with the columns
// kind,id,name,description,price,multiplier,discount,tags,soups and upserts
// each entry. Tier rows use the tier kinds (iyan, protein_tier, portion).
// A row with empty kind and id continues the previous entry, adding its tags
// and soups.
type CSVImporter struct {
	reader *csv.Reader
	menu   MenuWriter
}

func NewCSVImporter(r io.Reader, menu MenuWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.Comment = '#'
	return &CSVImporter{reader: csvr, menu: menu}
}

type csvRow struct {
	Line       int
	Kind       string
	ID         string
	Name       string
	Desc       string
	Price      string
	Multiplier string
	Discount   string
	Tags       []string
	Soups      []string
}

// Run parses CSV rows and upserts catalog entries in file order.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["kind"]; !ok {
		return 0, errors.New("read headers: missing kind column")
	}

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		row := parseRow(record, index, line)
		if row == nil {
			continue
		}

		if row.Kind != "" || row.ID != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil {
			current.Tags = append(current.Tags, row.Tags...)
			current.Soups = append(current.Soups, row.Soups...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Kind == KindBase {
		price, err := parseAmount(row.Price)
		if err != nil {
			return rowError(row, "price", err)
		}
		return wrapWrite(row, i.menu.SetBasePrice(ctx, price))
	}

	if row.ID == "" || row.Name == "" {
		return fmt.Errorf("line %d: invalid %s row (missing id or name)", row.Line, row.Kind)
	}

	switch row.Kind {
	case KindSoup, KindProtein:
		price, err := parseAmount(row.Price)
		if err != nil {
			return rowError(row, "price", err)
		}
		if row.Kind == KindSoup {
			soup := domain.Soup{ID: row.ID, Name: row.Name, Price: price, Description: row.Desc, Tags: row.Tags}
			return wrapWrite(row, i.menu.UpsertSoup(ctx, soup))
		}
		protein := domain.Protein{ID: row.ID, Name: row.Name, Price: price, Description: row.Desc, Tags: row.Tags}
		return wrapWrite(row, i.menu.UpsertProtein(ctx, protein))
	case KindCombo:
		discount, err := parseAmount(row.Discount)
		if err != nil {
			return rowError(row, "discount", err)
		}
		soups := domain.Unique(row.Soups)
		if len(soups) < 2 {
			return fmt.Errorf("line %d: combo %q needs at least two soups", row.Line, row.ID)
		}
		combo := domain.Combo{ID: row.ID, Name: row.Name, Description: row.Desc, Soups: soups, Discount: discount}
		return wrapWrite(row, i.menu.UpsertCombo(ctx, combo))
	}

	kind, ok := tierKind(row.Kind)
	if !ok {
		return fmt.Errorf("line %d: unknown kind %q", row.Line, row.Kind)
	}
	mult, err := decimal.NewFromString(row.Multiplier)
	if err != nil || !mult.IsPositive() {
		return fmt.Errorf("line %d: invalid multiplier %q for tier %q", row.Line, row.Multiplier, row.ID)
	}
	return wrapWrite(row, i.menu.UpsertTier(ctx, kind, domain.Tier{ID: row.ID, Name: row.Name, Multiplier: mult}))
}

func tierKind(kind string) (domain.TierKind, bool) {
	switch kind {
	case "iyan", "iyan_tier":
		return domain.TierIyan, true
	case "protein_tier":
		return domain.TierProtein, true
	case "portion":
		return domain.TierPortion, true
	}
	return "", false
}

func parseAmount(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

func rowError(row *csvRow, field string, err error) error {
	return fmt.Errorf("line %d: invalid %s for %s %q: %w", row.Line, field, row.Kind, row.ID, err)
}

func wrapWrite(row *csvRow, err error) error {
	if err != nil {
		return fmt.Errorf("line %d: upsert %s %q: %w", row.Line, row.Kind, row.ID, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) *csvRow {
	row := &csvRow{
		Line:       line,
		Kind:       strings.ToLower(pick(record, index, "kind")),
		ID:         pick(record, index, "id"),
		Name:       pick(record, index, "name"),
		Desc:       pick(record, index, "description"),
		Price:      pick(record, index, "price"),
		Multiplier: pick(record, index, "multiplier"),
		Discount:   pick(record, index, "discount"),
		Tags:       splitList(pick(record, index, "tags")),
		Soups:      splitList(pick(record, index, "soups")),
	}
	if row.Kind == "" && row.ID == "" && len(row.Tags) == 0 && len(row.Soups) == 0 {
		return nil
	}
	return row
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
