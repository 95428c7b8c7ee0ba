package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexDateJSONShapes(t *testing.T) {
	cases := []struct {
		in       string
		kind     DateKind
		wantMs   int64
		wantSt   DateState
	}{
		{`{"seconds":1700000000}`, DateSeconds, 1700000000000, DateKnown},
		{`"2024-03-15T12:00:00Z"`, DateString, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC).UnixMilli(), DateKnown},
		{`"2024-03-15"`, DateString, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli(), DateKnown},
		{`"next tuesday"`, DateString, 0, DateMalformed},
		{`null`, DateNone, 0, DateAbsent},
	}
	for _, c := range cases {
		var d FlexDate
		if err := json.Unmarshal([]byte(c.in), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", c.in, err)
		}
		if d.Kind != c.kind {
			t.Errorf("%s: kind = %v, want %v", c.in, d.Kind, c.kind)
		}
		ms, st := d.Millis()
		if st != c.wantSt {
			t.Errorf("%s: state = %v, want %v", c.in, st, c.wantSt)
		}
		if st == DateKnown && ms != c.wantMs {
			t.Errorf("%s: ms = %d, want %d", c.in, ms, c.wantMs)
		}
	}
}

func TestFlexDateJSONRoundTrip(t *testing.T) {
	for _, d := range []FlexDate{
		FlexDateFromSeconds(1700000000),
		NewFlexDate("2024-03-15T12:00:00Z"),
		{},
	} {
		raw, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back FlexDate
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if back != d {
			t.Errorf("round trip changed %+v to %+v", d, back)
		}
	}
}

func TestFlexDateEmptyStringIsAbsent(t *testing.T) {
	d := NewFlexDate("")
	if !d.IsZero() {
		t.Fatal("empty string should be zero")
	}
	if _, st := d.Millis(); st != DateAbsent {
		t.Fatalf("state = %v, want DateAbsent", st)
	}
}
