package prompt_test

import (
	"errors"
	"reflect"
	"testing"

	"bakmodel/src/errdefs"
	"bakmodel/src/prompt"
)

func TestParseSelection(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		n       int
		want    []int
		wantErr error
	}{
		{"first of two", "1", 2, []int{0}, nil},
		{"last of two", "2", 2, []int{1}, nil},
		{"multi", "1,3", 3, []int{0, 2}, nil},
		{"multi with spaces", " 1 , 2 ", 3, []int{0, 1}, nil},
		{"duplicates collapse", "2,2,1", 3, []int{1, 0}, nil},
		{"all", "a", 3, []int{0, 1, 2}, nil},
		{"all uppercase", "A", 2, []int{0, 1}, nil},
		{"quit", "q", 3, nil, errdefs.ErrAborted},
		{"empty", "", 3, nil, errdefs.ErrInvalidSelection},
		{"zero is out of range", "0", 2, nil, errdefs.ErrInvalidSelection},
		{"beyond range", "3", 2, nil, errdefs.ErrInvalidSelection},
		{"negative", "-1", 2, nil, errdefs.ErrInvalidSelection},
		{"not a number", "x", 2, nil, errdefs.ErrInvalidSelection},
		{"trailing comma", "1,", 2, nil, errdefs.ErrInvalidSelection},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := prompt.ParseSelection(c.raw, c.n)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("err = %v, want %v", err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("indices = %v, want %v", got, c.want)
			}
		})
	}
}

func TestParseSingle(t *testing.T) {
	idx, err := prompt.ParseSingle("2", 3)
	if err != nil {
		t.Fatalf("ParseSingle: %v", err)
	}
	if idx != 1 {
		t.Fatalf("idx = %d, want 1", idx)
	}

	if _, err := prompt.ParseSingle("1,2", 3); !errors.Is(err, errdefs.ErrInvalidSelection) {
		t.Fatalf("multi input: want ErrInvalidSelection, got %v", err)
	}
	if _, err := prompt.ParseSingle("a", 3); !errors.Is(err, errdefs.ErrInvalidSelection) {
		t.Fatalf("all input: want ErrInvalidSelection, got %v", err)
	}
	if _, err := prompt.ParseSingle("q", 3); !errors.Is(err, errdefs.ErrAborted) {
		t.Fatalf("quit input: want ErrAborted, got %v", err)
	}
}
