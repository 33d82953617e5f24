package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"magazine-crm/internal/domain"
	customersvc "magazine-crm/internal/service/customer"
)

type CustomerAdder interface {
	Add(ctx context.Context, in customersvc.AddInput) (*domain.Customer, error)
}

// CSVImporter reads customer rows and adds each one through the customer
// service, so ids, types and change events match API-created customers.
type CSVImporter struct {
	reader    *csv.Reader
	customers CustomerAdder
}

func NewCSVImporter(r io.Reader, customers CustomerAdder) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:    csvr,
		customers: customers,
	}
}

// Run imports rows in file order and stops at the first rejected row.
// Blank rows are skipped.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"name", "email", "phone"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("missing %q column", required)
		}
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		in, ok := parseRow(record, index)
		if !ok {
			continue
		}
		line, _ := i.reader.FieldPos(0)
		if _, err := i.customers.Add(ctx, in); err != nil {
			return imported, fmt.Errorf("line %d (%s): %w", line, in.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (customersvc.AddInput, bool) {
	in := customersvc.AddInput{
		Name:  pick(record, index, "name"),
		Email: pick(record, index, "email"),
		Phone: pick(record, index, "phone"),
	}
	if in.Name == "" && in.Email == "" && in.Phone == "" {
		return in, false
	}
	if magazine := pick(record, index, "magazineName"); magazine != "" {
		in.Magazine = &domain.Magazine{
			MagazineName:          magazine,
			SubscriptionStartDate: pick(record, index, "subscriptionStartDate"),
		}
	}
	return in, true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
