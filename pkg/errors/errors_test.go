package errors

import (
	"errors"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("no such file or directory")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "new",
			err:  New(ErrCodeGeometry, "image is %dx%d, want square", 640, 480),
			want: "GEOMETRY: image is 640x480, want square",
		},
		{
			name: "wrapped",
			err:  Wrap(ErrCodeMissingFile, cause, "labels for %s", "r1.png"),
			want: "MISSING_FILE: labels for r1.png: no such file or directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeInvalidPath, cause, "write %s", "out.asc")

	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Errorf("Wrap() lost its cause: %v", err)
	}
	if UserMessage(err) != "write out.asc" {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeGeometry, "test"),
			code:     ErrCodeGeometry,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeGeometry, "test"),
			code:     ErrCodeCapability,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeCapability, New(ErrCodeGeometry, "inner"), "outer"),
			code:     ErrCodeCapability,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeEncodingConflict, "test"), ErrCodeEncodingConflict},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeCapability, "set already rotated")); got != "set already rotated" {
		t.Errorf("UserMessage(*Error) = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestConflict(t *testing.T) {
	err := Conflict(3, 7)

	if !Is(err, ErrCodeEncodingConflict) {
		t.Errorf("Is(ENCODING_CONFLICT) = false for %v", err)
	}

	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatal("errors.As(*ConflictError) = false")
	}
	if ce.CellX != 3 || ce.CellY != 7 {
		t.Errorf("cell = (%d,%d), want (3,7)", ce.CellX, ce.CellY)
	}
	if ce.Code() != ErrCodeEncodingConflict {
		t.Errorf("Code() = %v, want %v", ce.Code(), ErrCodeEncodingConflict)
	}

	want := "ENCODING_CONFLICT: encode aborted: grid cell (3,7) already holds a detection"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeGeometry,
		ErrCodeCapability,
		ErrCodeEncodingConflict,
		ErrCodeNotFound,
		ErrCodeMissingFile,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool, len(codes))
	for _, code := range codes {
		if seen[code] {
			t.Errorf("code %s is declared twice", code)
		}
		seen[code] = true
	}
}
