// Package csvio implements the registry CSV contract. Column order is
// Item_name, Link, Total, Contributor, Amount, Timestamp; a Contributor of the
// literal "0" marks an item declaration, any other value marks a contribution.
package csvio

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anafaris/wedding-api/internal/models"
)

var Header = []string{"Item_name", "Link", "Total", "Contributor", "Amount", "Timestamp"}

// DeclarationSentinel in the Contributor column separates the two row kinds.
const DeclarationSentinel = "0"

type ItemDeclaration struct {
	Name  string
	Link  string
	Total decimal.Decimal
}

// ContributionRecord keeps the row's Link and Total columns as well: the first
// row naming an item fixes its link and funding goal, whichever kind it is.
type ContributionRecord struct {
	ItemName    string
	Link        string
	Total       decimal.Decimal
	Contributor string
	Amount      decimal.Decimal
	Timestamp   time.Time
}

// Row is the tagged variant a parsed line dispatches into: exactly one of the
// two pointers is set.
type Row struct {
	Declaration  *ItemDeclaration
	Contribution *ContributionRecord
}

// Parse reads the whole file and either returns every row or the first
// *models.ParseError encountered; it never returns a partial result. Row
// numbers in errors are 1-indexed with the header excluded.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &models.ParseError{Row: 0, Reason: "missing CSV header"}
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []Row
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &models.ParseError{Row: line, Reason: err.Error()}
		}

		row, perr := parseRecord(line, record)
		if perr != nil {
			return nil, perr
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func checkHeader(header []string) error {
	if len(header) != len(Header) {
		return &models.ParseError{Row: 0, Reason: "expected 6 columns: " + strings.Join(Header, ", ")}
	}
	for i, want := range Header {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return &models.ParseError{Row: 0, Reason: "expected column " + want}
		}
	}
	return nil
}

func parseRecord(line int, record []string) (Row, *models.ParseError) {
	if len(record) != len(Header) {
		return Row{}, &models.ParseError{Row: line, Reason: "expected 6 fields"}
	}

	name := strings.TrimSpace(record[0])
	link := strings.TrimSpace(record[1])
	contributor := strings.TrimSpace(record[3])

	if name == "" {
		return Row{}, &models.ParseError{Row: line, Reason: "Item_name must not be empty"}
	}
	if contributor == "" {
		return Row{}, &models.ParseError{Row: line, Reason: "Contributor must not be empty (use \"0\" for item rows)"}
	}

	total, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return Row{}, &models.ParseError{Row: line, Reason: "Total is not a valid amount: " + record[2]}
	}
	if total.Sign() <= 0 {
		return Row{}, &models.ParseError{Row: line, Reason: "Total must be greater than 0"}
	}

	rawAmount := strings.TrimSpace(record[4])

	if contributor == DeclarationSentinel {
		// Blank is tolerated like the timestamp column, anything else must be 0.
		if rawAmount != "" {
			amount, err := decimal.NewFromString(rawAmount)
			if err != nil {
				return Row{}, &models.ParseError{Row: line, Reason: "Amount is not a valid amount: " + record[4]}
			}
			if !amount.IsZero() {
				return Row{}, &models.ParseError{Row: line, Reason: "Amount must be 0 on item rows"}
			}
		}
		return Row{Declaration: &ItemDeclaration{Name: name, Link: link, Total: total}}, nil
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return Row{}, &models.ParseError{Row: line, Reason: "Amount is not a valid amount: " + record[4]}
	}
	if amount.Sign() <= 0 {
		return Row{}, &models.ParseError{Row: line, Reason: "Amount must be greater than 0"}
	}

	var ts time.Time
	if raw := strings.TrimSpace(record[5]); raw != "" {
		ts, err = parseTimestamp(raw)
		if err != nil {
			return Row{}, &models.ParseError{Row: line, Reason: "Timestamp is not a valid time: " + raw}
		}
	}

	return Row{Contribution: &ContributionRecord{
		ItemName:    name,
		Link:        link,
		Total:       total,
		Contributor: contributor,
		Amount:      amount,
		Timestamp:   ts,
	}}, nil
}

// Spreadsheet exports often drop the zone suffix, so both forms are accepted.
func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02T15:04:05", raw)
}

// Serialize renders the current registry state back into the same row shape:
// one declaration row per item, then one row per contribution. Re-importing the
// output reproduces items and contribution totals; it is not idempotent, since
// a second import appends every contribution again.
func Serialize(items []models.RegistryItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := w.Write([]string{item.Name, item.Link, item.Total.String(), DeclarationSentinel, "0", ""}); err != nil {
			return nil, err
		}
		for _, c := range item.Contributions {
			record := []string{
				item.Name,
				item.Link,
				item.Total.String(),
				c.ContributorName,
				c.Amount.String(),
				c.Timestamp.UTC().Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// SerializeRSVPs renders the guest list for the admin export.
func SerializeRSVPs(rsvps []models.RSVP) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Name", "Pax", "Wishes", "Timestamp"}); err != nil {
		return nil, err
	}
	for _, rsvp := range rsvps {
		record := []string{
			rsvp.Name,
			strconv.Itoa(rsvp.Pax),
			rsvp.Wishes,
			rsvp.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// Template returns the sample file served by the admin dashboard.
func Template() []byte {
	items := []models.RegistryItem{
		{
			Name:  "Plates",
			Link:  "https://shopee.com.my",
			Total: decimal.NewFromInt(100),
		},
		{
			Name:  "Carpet",
			Link:  "https://shopee.com.my",
			Total: decimal.NewFromInt(200),
			Contributions: []models.Contribution{
				{ContributorName: "John Doe", Amount: decimal.NewFromInt(50), Timestamp: time.Now().UTC()},
				{ContributorName: "Jane Smith", Amount: decimal.NewFromInt(30), Timestamp: time.Now().UTC()},
			},
		},
	}
	out, _ := Serialize(items)
	return out
}
