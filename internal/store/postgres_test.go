package store

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestTextValue(t *testing.T) {
	var num pgtype.Numeric
	if err := num.Scan("12.5"); err != nil {
		t.Fatalf("scan numeric: %v", err)
	}

	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"nil", nil, "", false},
		{"string", "Pune", "Pune", true},
		{"int64", int64(120000), "120000", true},
		{"int32", int32(7), "7", true},
		{"float64", 7.25, "7.25", true},
		{"numeric", num, "12.5", true},
		{"null numeric", pgtype.Numeric{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := textValue(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("textValue(%v) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCopyValue(t *testing.T) {
	rec := Record{"district": "Pune", "population_affected": "1200", "severity_score": "8"}

	v, err := copyValue(rec, ColDistrict)
	if err != nil || v != "Pune" {
		t.Errorf("district: got %v, %v", v, err)
	}
	v, err = copyValue(rec, ColPopulation)
	if err != nil || v != int64(1200) {
		t.Errorf("population: got %v, %v", v, err)
	}
	v, err = copyValue(rec, ColSeverity)
	if err != nil || v != 8.0 {
		t.Errorf("severity: got %v, %v", v, err)
	}
	v, err = copyValue(rec, ColTaluka)
	if err != nil || v != nil {
		t.Errorf("absent taluka: got %v, %v", v, err)
	}
}

func TestCopyValueRejectsFractionalPopulation(t *testing.T) {
	for _, text := range []string{"1200.9", "0.5"} {
		_, err := copyValue(Record{"population_affected": text}, ColPopulation)
		if err == nil {
			t.Errorf("expected error for population %q", text)
		}
	}

	v, err := copyValue(Record{"population_affected": "1200.0"}, ColPopulation)
	if err != nil || v != int64(1200) {
		t.Errorf("whole float population: got %v, %v", v, err)
	}
}

func TestLoadQuery(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    string
	}{
		{"migrated table", []string{"id", "district", "taluka"}, `SELECT * FROM "village_problems" ORDER BY id`},
		{"table without id", []string{"district", "severity_score"}, `SELECT * FROM "village_problems"`},
		{"id-like column", []string{"district_id", "district"}, `SELECT * FROM "village_problems"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loadQuery(`"village_problems"`, tt.columns); got != tt.want {
				t.Errorf("loadQuery() = %s, want %s", got, tt.want)
			}
		})
	}
}
