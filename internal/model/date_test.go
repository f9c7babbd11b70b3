package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2026-08-30", true},
		{"2024-02-29", true},
		{"2024-02-30", false},
		{"2026-8-30", false},
		{"2026/08/30", false},
		{"not-a-date", false},
		{"", false},
	}
	for _, c := range cases {
		d, err := ParseDate(c.in)
		if c.ok && err != nil {
			t.Fatalf("ParseDate(%q): %v", c.in, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("ParseDate(%q): expected error, got %v", c.in, d)
		}
		if c.ok && d.String() != c.in {
			t.Fatalf("ParseDate(%q).String() = %q", c.in, d.String())
		}
	}
}

func TestDateBefore(t *testing.T) {
	a, _ := ParseDate("2026-08-29")
	b, _ := ParseDate("2026-08-30")
	if !a.Before(b) {
		t.Fatalf("expected %v before %v", a, b)
	}
	if b.Before(a) {
		t.Fatalf("did not expect %v before %v", b, a)
	}
	if a.Before(a) {
		t.Fatalf("a date is not before itself")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, _ := ParseDate("2026-08-30")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-08-30"` {
		t.Fatalf("marshal = %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.String() != "2026-08-30" {
		t.Fatalf("round trip = %s", back)
	}
	if err := json.Unmarshal([]byte(`12345`), &back); err == nil {
		t.Fatalf("expected error for non-string date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2026, 8, 30, 13, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time.Time: %v", err)
	}
	if d.String() != "2026-08-30" {
		t.Fatalf("scan time.Time = %s", d)
	}
	if err := d.Scan("2026-01-02"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2026-01-02" {
		t.Fatalf("scan string = %s", d)
	}
	if err := d.Scan([]byte("2026-03-04")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
	v, err := d.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "2026-03-04" {
		t.Fatalf("value = %v", v)
	}
}
