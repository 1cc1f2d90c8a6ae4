package utils

import "testing"

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := CalculateTotalPages(tt.total, tt.perPage); got != tt.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestCalculateOffset(t *testing.T) {
	tests := []struct {
		page    int
		perPage int
		want    int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
		{0, 10, 0},
	}

	for _, tt := range tests {
		if got := CalculateOffset(tt.page, tt.perPage); got != tt.want {
			t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.perPage, got, tt.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		value string
		def   int
		want  int
	}{
		{"", 5, 5},
		{"7", 5, 7},
		{"abc", 5, 5},
		{"0", 5, 5},
		{"-3", 5, 5},
	}

	for _, tt := range tests {
		if got := ParseInt(tt.value, tt.def); got != tt.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tt.value, tt.def, got, tt.want)
		}
	}
}

func TestValidateStructReservedUsername(t *testing.T) {
	type signupShape struct {
		Username string `validate:"required,not_me"`
	}

	if errs := ValidateStruct(signupShape{Username: "me"}); len(errs) == 0 {
		t.Error("reserved username passed validation")
	}
	if errs := ValidateStruct(signupShape{Username: "alice"}); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}
