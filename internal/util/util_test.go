package util_test

import (
	"encoding/json"
	"errors"
	"gamedex/internal/util"
	"testing"
	"time"
)

func TestUUIDAsBlobScan(t *testing.T) {
	id := util.NewUUIDAsBlob()
	v, err := id.Value()
	if err != nil {
		t.Fatal(err)
	}

	var scanned util.UUIDAsBlob
	if err := scanned.Scan(v); err != nil {
		t.Fatal(err)
	}
	if scanned != id {
		t.Errorf("expected %s, got %s", id, scanned)
	}

	if err := scanned.Scan("not bytes"); err == nil {
		t.Error("expected an error when scanning a string")
	}
	if err := scanned.Scan([]byte{1, 2, 3}); err == nil {
		t.Error("expected an error when scanning a short blob")
	}
}

func TestUUIDAsBlobJSON(t *testing.T) {
	id := util.NewUUIDAsBlob()
	b, err := json.Marshal(id)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"`+id.String()+`"` {
		t.Errorf("unexpected JSON %s", b)
	}

	var decoded util.UUIDAsBlob
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != id {
		t.Errorf("expected %s, got %s", id, decoded)
	}
}

func TestParseUUIDAsBlob(t *testing.T) {
	tests := []struct {
		str   string
		valid bool
	}{
		{"2f1b5a7e-4a3c-4d34-9e0b-6c1f0e7f4a11", true},
		{"42", false},
		{"", false},
		{"2f1b5a7e-4a3c-4d34-9e0b-6c1f0e7f4a1", false},
	}

	for _, v := range tests {
		_, err := util.ParseUUIDAsBlob(v.str)
		if (err == nil) != v.valid {
			t.Errorf("%q: expected valid=%t, got error %v", v.str, v.valid, err)
		}
	}
}

func TestTimeAsTimestamp(t *testing.T) {
	now := time.Date(2014, 10, 6, 17, 57, 44, 123, time.UTC)
	ts := util.NewTimeAsTimestamp(now)

	v, err := ts.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v.(int64) != now.Unix() {
		t.Errorf("expected %d, got %v", now.Unix(), v)
	}

	var scanned util.TimeAsTimestamp
	if err := scanned.Scan([]byte("1412618264")); err != nil {
		t.Fatal(err)
	}
	if !scanned.Time().Equal(ts.Time()) {
		t.Errorf("expected %s, got %s", ts.Time(), scanned.Time())
	}

	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2014-10-06T17:57:44Z"` {
		t.Errorf("unexpected JSON %s", b)
	}

	var decoded util.TimeAsTimestamp
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.Time().Equal(ts.Time()) {
		t.Errorf("expected %s, got %s", ts.Time(), decoded.Time())
	}
}

func TestConcatErrors(t *testing.T) {
	if err := util.ConcatErrors(nil); err != nil {
		t.Errorf("expected nil, got %s", err)
	}
	if err := util.ConcatErrors([]error{nil, nil}); err != nil {
		t.Errorf("expected nil, got %s", err)
	}

	err := util.ConcatErrors([]error{errors.New("a"), nil, errors.New("b")})
	if err == nil || err.Error() != "a; b" {
		t.Errorf("expected 'a; b', got %v", err)
	}
}

func TestNullString(t *testing.T) {
	if util.NullString("").Valid {
		t.Error("empty string should be NULL")
	}
	if s := util.NullString("Test"); !s.Valid || s.String != "Test" {
		t.Errorf("unexpected %#v", s)
	}
}
