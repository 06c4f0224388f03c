package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("dial unix /cloudsql/proj:region:db: no such file")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with cause",
			err:  Wrap(ErrKindPoolConstruction, "cannot open pool", cause),
			want: "[pool_construction] cannot open pool: dial unix /cloudsql/proj:region:db: no such file",
		},
		{
			name: "without cause",
			err:  New(ErrKindQueryFailed, "select failed"),
			want: "[query_failed] select failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		kind ErrKind
		pred func(error) bool
	}{
		{ErrKindSecretAccess, IsSecretAccess},
		{ErrKindPoolConstruction, IsPoolConstruction},
		{ErrKindConnectionFailed, IsConnectionFailed},
		{ErrKindTimeout, IsTimeout},
		{ErrKindQueryFailed, IsQueryFailed},
		{ErrKindNotFound, IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := New(tt.kind, "boom")
			assert.True(t, tt.pred(err))

			// Predicates must see through fmt.Errorf wrapping.
			wrapped := fmt.Errorf("handler: %w", err)
			assert.True(t, tt.pred(wrapped))
		})
	}
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, ErrKindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, ErrKindUnknown, KindOf(nil))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrKindSecretAccess, "access failed", cause)

	require.ErrorIs(t, err, cause)
}
