package csv

import (
	"strings"
	"testing"
)

func TestReadClassifWithHeader(t *testing.T) {
	data := "label,x1,x2\nfoo,1.0,2.0\nbar,3.0,4.0\nfoo,1.5,2.5\n"
	res, err := ReadClassif(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(res.Rows))
	}
	if len(res.VarNames) != 2 || res.VarNames[0] != "x1" || res.VarNames[1] != "x2" {
		t.Errorf("expected header-derived var names [x1 x2], got %v", res.VarNames)
	}
	if len(res.Classes) != 2 {
		t.Fatalf("expected 2 distinct classes, got %d", len(res.Classes))
	}
	if res.Rows[0].Class != res.Rows[2].Class {
		t.Errorf("expected first and third row (both %q) to share a class index", "foo")
	}
	if res.Rows[0].Class == res.Rows[1].Class {
		t.Errorf("expected foo and bar rows to have different class indices")
	}
	if res.Rows[0].X[0] != 1.0 || res.Rows[0].X[1] != 2.0 {
		t.Errorf("expected first row features [1.0 2.0], got %v", res.Rows[0].X)
	}
}

func TestReadClassifWithoutHeader(t *testing.T) {
	data := "foo,1.0,2.0\nbar,3.0,4.0\n"
	res, err := ReadClassif(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows (no header consumed), got %d", len(res.Rows))
	}
	if len(res.VarNames) != 2 || res.VarNames[0] != "X1" || res.VarNames[1] != "X2" {
		t.Errorf("expected synthesized var names [X1 X2], got %v", res.VarNames)
	}
}

func TestReadRegress(t *testing.T) {
	data := "y,x1,x2\n5.0,1.0,2.0\n2.0,3.0,4.0\n"
	res, err := ReadRegress(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(res.Rows))
	}
	if res.Rows[0].Y != 5.0 || res.Rows[1].Y != 2.0 {
		t.Errorf("expected targets [5.0 2.0], got [%f %f]", res.Rows[0].Y, res.Rows[1].Y)
	}
}

func TestReadRegressBadTarget(t *testing.T) {
	data := "notanumber,1.0,2.0\n"
	if _, err := ReadRegress(strings.NewReader(data)); err == nil {
		t.Error("expected an error parsing a non-numeric regression target")
	}
}
