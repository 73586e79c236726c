package fraud

import "strings"

// Transaction is one input record for fraud analysis. Records arrive
// semi-structured (CSV rows, provider payloads), so Amount is kept as the raw
// string received at the boundary; numeric coercion happens during feature
// extraction, where a malformed amount drops only that row. Columns that are
// not promoted to a named field are preserved in Fields and passed through to
// the final report untouched.
type Transaction struct {
	Description string
	Category    string
	Amount      string
	Fields      map[string]string
}

// TransactionFromRecord builds a Transaction from a raw column->value record,
// promoting the known columns and keeping the rest in Fields. Column names
// are matched case-insensitively.
func TransactionFromRecord(record map[string]string) Transaction {
	t := Transaction{Fields: make(map[string]string)}
	for name, value := range record {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "description":
			t.Description = value
		case "category":
			t.Category = value
		case "amount":
			t.Amount = value
		default:
			t.Fields[strings.ToLower(strings.TrimSpace(name))] = value
		}
	}
	return t
}

// Field looks up a passthrough column by its lower-cased name.
func (t Transaction) Field(name string) (string, bool) {
	v, ok := t.Fields[name]
	return v, ok
}

// AsMap flattens the transaction back into a column->value record, the shape
// used when embedding the original fields in a report.
func (t Transaction) AsMap() map[string]string {
	m := make(map[string]string, len(t.Fields)+3)
	for k, v := range t.Fields {
		m[k] = v
	}
	if t.Description != "" {
		m["description"] = t.Description
	}
	if t.Category != "" {
		m["category"] = t.Category
	}
	m["amount"] = t.Amount
	return m
}
