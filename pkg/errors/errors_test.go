package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCode  = MustNewCode("test.code")
	testCode2 = MustNewCode("test.code2")
)

type fakeInternal struct {
	message string
}

func (f *fakeInternal) Error() string {
	return f.message
}

func (f *fakeInternal) Transform() *Error {
	return New(testCode2, f.message, nil).AddContext("fake", "true")
}

func TestNewCode(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"protocol.not_enough_data", true},
		{"dispatch.frame_too_large", true},
		{"a.b", true},
		{"Protocol.tag", false},
		{"protocol", false},
		{"protocol.", false},
		{"protocol.decode_error", false},
		{"protocol.bad-tag", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code, err := NewCode(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.input, code.String())
				assert.True(t, code.IsValid())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMustNewCodePanics(t *testing.T) {
	assert.Panics(t, func() { MustNewCode("BAD") })
	assert.NotPanics(t, func() { MustNewCode("good.code") })
}

func TestCodePackageAndName(t *testing.T) {
	code := MustNewCode("protocol.invalid_tag")
	assert.Equal(t, "protocol", code.Package())
	assert.Equal(t, "invalid_tag", code.Name())
	assert.True(t, code.Equals(MustNewCode("protocol.invalid_tag")))
	assert.False(t, code.Equals(testCode))
}

func TestNewAndWrap(t *testing.T) {
	err := New(testCode, "plain", nil)
	assert.Equal(t, "plain", err.Error())
	assert.Nil(t, err.Unwrap())
	assert.False(t, err.Timestamp.IsZero())
	assert.NotEmpty(t, err.Stack)

	cause := stderrors.New("boom")
	wrapped := Wrapf(testCode, cause, "doing %s", "work")
	assert.Equal(t, "doing work: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)

	formatted := Newf(testCode, "n=%d", 3)
	assert.Equal(t, "n=3", formatted.Message)
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(testCode, "inner", nil))
	assert.ErrorIs(t, err, New(testCode, "", nil))
	assert.NotErrorIs(t, err, New(testCode2, "", nil))
}

func TestAddContextChaining(t *testing.T) {
	err := New(testCode, "ctx", nil).
		AddContext("location", "GlobalReqAddKey").
		AddContext("given", "3")

	assert.Equal(t, map[string]string{"location": "GlobalReqAddKey", "given": "3"}, GetContext(err))
	assert.Equal(t, "test.code", GetCode(err))
}

func TestAsError(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.Nil(t, AsError(nil))
	})

	t.Run("InternalError", func(t *testing.T) {
		result := AsError(&fakeInternal{message: "fake"})
		require.NotNil(t, result)
		assert.Equal(t, "test.code2", result.Code.String())
		assert.Equal(t, "true", result.Context["fake"])
	})

	t.Run("Coded", func(t *testing.T) {
		original := New(testCode, "coded", nil)
		assert.Same(t, original, AsError(original))
	})

	t.Run("Standard", func(t *testing.T) {
		result := AsError(fmt.Errorf("standard"))
		assert.Equal(t, CommonInternal.String(), result.Code.String())
		assert.Equal(t, "standard", result.Message)
	})
}

func TestHasCode(t *testing.T) {
	inner := &fakeInternal{message: "fake"}
	chain := fmt.Errorf("outer: %w", Wrap(testCode, inner, "middle"))

	assert.True(t, HasCode(chain, testCode))
	assert.True(t, HasCode(chain, testCode2))
	assert.False(t, HasCode(chain, CommonTimeout))
	assert.False(t, HasCode(nil, testCode))
}

func TestFormatError(t *testing.T) {
	err := New(testCode, "formatted", stderrors.New("cause")).
		AddContext("b", "2").
		AddContext("a", "1")

	expected := "Code: test.code\nMessage: formatted\nContext:\n  a: 1\n  b: 2\nCause: cause"
	assert.Equal(t, expected, FormatError(err))
	assert.Equal(t, "plain", FormatError(stderrors.New("plain")))
	assert.Contains(t, FormatError(&fakeInternal{message: "fake"}), "Code: test.code2")
	assert.True(t, IsLendqError(err))
	assert.False(t, IsLendqError(stderrors.New("x")))
}
