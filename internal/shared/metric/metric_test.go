package metric

import (
	"encoding/json"
	"testing"
)

func TestZeroValueAbsent(t *testing.T) {
	var m Value
	if m.Present() {
		t.Fatalf("zero value should be absent")
	}
	if _, ok := m.Get(); ok {
		t.Fatalf("absent value should not report ok")
	}
	if m.Ptr() != nil {
		t.Fatalf("absent value should have nil ptr")
	}
}

func TestOfDistinguishesZero(t *testing.T) {
	m := Of(0)
	if !m.Present() {
		t.Fatalf("explicit zero should be present")
	}
	v, ok := m.Get()
	if !ok || v != 0 {
		t.Fatalf("expected present zero, got %v %v", v, ok)
	}
}

func TestFromPtr(t *testing.T) {
	if FromPtr(nil).Present() {
		t.Fatalf("nil ptr should be absent")
	}
	v := 42.5
	m := FromPtr(&v)
	if got, ok := m.Get(); !ok || got != 42.5 {
		t.Fatalf("expected 42.5, got %v %v", got, ok)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Score Value `json:"score"`
	}

	out, err := json.Marshal(payload{Score: Of(92)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"score":92}` {
		t.Fatalf("unexpected json: %s", out)
	}

	out, err = json.Marshal(payload{})
	if err != nil {
		t.Fatalf("marshal absent: %v", err)
	}
	if string(out) != `{"score":null}` {
		t.Fatalf("unexpected absent json: %s", out)
	}

	var in payload
	if err := json.Unmarshal([]byte(`{"score":null}`), &in); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if in.Score.Present() {
		t.Fatalf("null should decode as absent")
	}

	if err := json.Unmarshal([]byte(`{"score":69.5}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := in.Score.Get(); !ok || v != 69.5 {
		t.Fatalf("expected 69.5, got %v %v", v, ok)
	}
}

func TestAverage(t *testing.T) {
	if Average(nil).Present() {
		t.Fatalf("empty average should be absent")
	}
	avg := Average([]float64{65, 67, 69, 71, 73})
	v, ok := avg.Get()
	if !ok || v != 69 {
		t.Fatalf("expected average 69, got %v", v)
	}
}

func TestTrunc2(t *testing.T) {
	cases := map[float64]float64{
		92.0:    92.0,
		7.999:   7.99,
		14.555:  14.55,
		-3.999:  -3.99,
		0.009:   0,
		69.1234: 69.12,
	}
	for in, want := range cases {
		if got := Trunc2(in); got != want {
			t.Fatalf("Trunc2(%v) = %v, want %v", in, got, want)
		}
	}
}
